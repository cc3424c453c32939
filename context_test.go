package txlin

import (
	"errors"
	"testing"

	"github.com/gogpu/txlin/backend"
	"github.com/gogpu/txlin/backend/headless"
)

// onWorker runs fn on a registered worker goroutine and waits for it.
func onWorker(t *testing.T, win *Window, fn func()) {
	t.Helper()
	h := win.Threads().Spawn(func(bool) { fn() })
	if !win.Threads().Join(h) {
		t.Fatal("worker did not run")
	}
}

func TestOwnerDrawsImmediately(t *testing.T) {
	m, win := newHeadlessManager(t, DefaultConfig(), headless.New())
	defer m.Close()
	dc := win.Context()

	if err := dc.SetColor(Red); err != nil {
		t.Fatalf("SetColor() error = %v", err)
	}
	if err := dc.Line(0, 0, 3, 0); err != nil {
		t.Fatalf("Line() error = %v", err)
	}
	if got := dc.GetPixel(2, 0); got != Red {
		t.Errorf("pixel after owner Line = %v, want red", got)
	}
	if win.queue.size() != 0 {
		t.Error("owner call was queued instead of applied")
	}
}

func TestWorkerRestrictedSubsetIsQueued(t *testing.T) {
	m, win := newHeadlessManager(t, DefaultConfig(), headless.New())
	defer m.Close()
	dc := win.Context()

	onWorker(t, win, func() {
		if err := dc.SetColor(Red); err != nil {
			t.Errorf("worker SetColor() error = %v", err)
		}
		if err := dc.Line(0, 0, 10, 10); err != nil {
			t.Errorf("worker Line() error = %v", err)
		}
		if err := dc.TextOut(5, 5, "hi"); err != nil {
			t.Errorf("worker TextOut() error = %v", err)
		}
		if err := dc.Beep(); err != nil {
			t.Errorf("worker Beep() error = %v", err)
		}
		if !dc.SelectMouseCursor(backend.CursorWait) {
			t.Error("worker SelectMouseCursor() = false")
		}
	})

	if got := win.queue.size(); got != 5 {
		t.Errorf("queue size = %d, want 5", got)
	}
	// Nothing applied yet: the canvas is untouched until the loop drains.
	if got := dc.GetPixel(5, 5); got != White {
		t.Errorf("pixel before drain = %v, want background", got)
	}
}

func TestWorkerUnrestrictedPrimitiveFailsLoudly(t *testing.T) {
	m, win := newHeadlessManager(t, DefaultConfig(), headless.New())
	defer m.Close()
	dc := win.Context()

	onWorker(t, win, func() {
		calls := map[string]error{
			"Clear":       dc.Clear(),
			"Rectangle":   dc.Rectangle(1, 1, 5, 5),
			"Circle":      dc.Circle(5, 5, 3),
			"SetPixel":    dc.SetPixel(1, 1),
			"SetPenWidth": dc.SetPenWidth(3),
		}
		for name, err := range calls {
			if !errors.Is(err, ErrUnsupportedFromThread) {
				t.Errorf("worker %s() error = %v, want ErrUnsupportedFromThread", name, err)
			}
		}
	})

	if win.queue.size() != 0 {
		t.Error("rejected primitives were queued")
	}
	if got := dc.GetPixel(1, 1); got != White {
		t.Errorf("pixel after rejected calls = %v, want background", got)
	}
	if dc.PenWidth() != 1 {
		t.Errorf("pen width after rejected call = %d, want 1", dc.PenWidth())
	}
}

func TestSelectMouseCursor(t *testing.T) {
	hb := headless.New()
	m, win := newHeadlessManager(t, DefaultConfig(), hb)
	defer m.Close()
	dc := win.Context()

	if !dc.SelectMouseCursor(backend.CursorNone) {
		t.Fatal("SelectMouseCursor(None) = false")
	}
	if hb.Cursor() != backend.CursorNone {
		t.Errorf("backend cursor = %v, want none", hb.Cursor())
	}

	// An invalid value fails without altering the previously set cursor.
	if dc.SelectMouseCursor(backend.Cursor(999)) {
		t.Error("SelectMouseCursor(999) = true, want false")
	}
	if hb.Cursor() != backend.CursorNone {
		t.Errorf("invalid cursor altered state: backend cursor = %v", hb.Cursor())
	}
	if dc.MouseCursor() != backend.CursorNone {
		t.Errorf("MouseCursor() = %v, want none", dc.MouseCursor())
	}
}

func TestBeepOwner(t *testing.T) {
	hb := headless.New()
	m, win := newHeadlessManager(t, DefaultConfig(), hb)
	defer m.Close()

	if err := win.Context().Beep(); err != nil {
		t.Fatalf("Beep() error = %v", err)
	}
	if hb.Bells() != 1 {
		t.Errorf("bells = %d, want 1", hb.Bells())
	}
}

func TestSelectFontHasNoEffect(t *testing.T) {
	m, win := newHeadlessManager(t, DefaultConfig(), headless.New())
	defer m.Close()
	dc := win.Context()

	before := dc.Font()
	if err := dc.SelectFont("Comic Sans"); err != nil {
		t.Errorf("SelectFont() error = %v", err)
	}
	if dc.Font() != before {
		t.Error("SelectFont replaced the rasterizer")
	}
}

func TestSetGlyphCellRejected(t *testing.T) {
	m, win := newHeadlessManager(t, DefaultConfig(), headless.New())
	defer m.Close()

	if err := win.Context().SetGlyphCell(20, 20); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("SetGlyphCell() error = %v, want ErrUnsupportedOperation", err)
	}
	w, h := win.Context().Font().CellSize()
	if w != DefaultCellWidth || h != DefaultCellHeight {
		t.Errorf("cell geometry changed to %dx%d", w, h)
	}
}

// Glyph cells configured at 12x12 render exactly one cell per rune.
func TestTextOutUsesConfiguredCells(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CellWidth, cfg.CellHeight = 12, 12
	m, win := newHeadlessManager(t, cfg, headless.New())
	defer m.Close()
	dc := win.Context()

	dc.SetColor(Black)
	if err := dc.TextOut(60, 60, "Hi"); err != nil {
		t.Fatalf("TextOut() error = %v", err)
	}

	minX, minY, maxX, maxY, found := inkBounds(dc.canvas, White)
	if !found {
		t.Fatal("TextOut rendered nothing")
	}
	if minX < 60 || minY < 60 || maxX >= 84 || maxY >= 72 {
		t.Errorf("ink bounds (%d,%d)-(%d,%d) escape the two 12x12 cells", minX, minY, maxX, maxY)
	}
}

func TestSetPenWidthValidation(t *testing.T) {
	m, win := newHeadlessManager(t, DefaultConfig(), headless.New())
	defer m.Close()
	dc := win.Context()

	if err := dc.SetPenWidth(0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetPenWidth(0) error = %v, want ErrInvalidArgument", err)
	}
	if err := dc.SetPenWidth(4); err != nil {
		t.Errorf("SetPenWidth(4) error = %v", err)
	}
	if dc.PenWidth() != 4 {
		t.Errorf("PenWidth() = %d, want 4", dc.PenWidth())
	}
}

func TestWorkerEnqueueAfterCloseFails(t *testing.T) {
	m, win := newHeadlessManager(t, DefaultConfig(), headless.New())
	dc := win.Context()

	ready := make(chan struct{})
	release := make(chan struct{})
	var gotErr error
	h := win.Threads().Spawn(func(bool) {
		close(ready)
		<-release
		gotErr = dc.Line(0, 0, 1, 1)
	})
	<-ready
	m.Close()
	close(release)
	win.Threads().Join(h)

	if !errors.Is(gotErr, ErrNoWindow) {
		t.Errorf("worker Line() after Close error = %v, want ErrNoWindow", gotErr)
	}
}

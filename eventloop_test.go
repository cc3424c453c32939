package txlin

import (
	"testing"

	"github.com/gogpu/txlin/backend"
	"github.com/gogpu/txlin/backend/headless"
)

// Commands submitted by one worker must be applied in submission order, so a
// color change takes effect for the lines queued after it and not before.
func TestEventLoopAppliesWorkerCommandsInOrder(t *testing.T) {
	hb := headless.NewAutoClose(1)
	m, win := newHeadlessManager(t, DefaultConfig(), hb)
	dc := win.Context()

	h := win.Threads().Spawn(func(bool) {
		dc.SetColor(Red)
		dc.Line(0, 0, 0, 0)
		dc.SetColor(Blue)
		dc.Line(1, 0, 1, 0)
		dc.SetColor(Green)
		dc.Line(2, 0, 2, 0)
	})
	if !win.Threads().Join(h) {
		t.Fatal("worker did not run")
	}

	m.KeepOpen()

	if got := dc.GetPixel(0, 0); got != Red {
		t.Errorf("pixel (0,0) = %v, want red", got)
	}
	if got := dc.GetPixel(1, 0); got != Blue {
		t.Errorf("pixel (1,0) = %v, want blue", got)
	}
	if got := dc.GetPixel(2, 0); got != Green {
		t.Errorf("pixel (2,0) = %v, want green", got)
	}
	if hb.Presents() < 1 {
		t.Errorf("presents = %d, want at least 1", hb.Presents())
	}
}

// A close event observed before the drain ends the loop immediately: commands
// racing the close are dropped, never half-applied.
func TestEventLoopCloseDropsPendingCommands(t *testing.T) {
	hb := headless.New()
	hb.Inject(backend.Event{Kind: backend.EventClose})
	m, win := newHeadlessManager(t, DefaultConfig(), hb)
	dc := win.Context()

	h := win.Threads().Spawn(func(bool) {
		dc.SetColor(Red)
		dc.Line(0, 0, 0, 0)
	})
	if !win.Threads().Join(h) {
		t.Fatal("worker did not run")
	}

	m.KeepOpen()

	if win.State() != StateClosed {
		t.Fatalf("state after KeepOpen = %v, want closed", win.State())
	}
	if got := hb.Presents(); got != 0 {
		t.Errorf("presents = %d, want 0", got)
	}
	if got := dc.GetPixel(0, 0); got != White {
		t.Errorf("pixel (0,0) = %v, want background: a dropped command was applied", got)
	}
}

// An expose event after the first frame forces a re-present even though the
// canvas did not change.
func TestEventLoopExposeRepresents(t *testing.T) {
	hb := headless.New()
	m, win := newHeadlessManager(t, DefaultConfig(), hb)

	h := win.Threads().Spawn(func(bool) {
		for hb.Presents() < 1 {
			if win.Threads().Sleep(2) != 0 {
				return
			}
		}
		hb.Inject(backend.Event{Kind: backend.EventExpose})
		for hb.Presents() < 2 {
			if win.Threads().Sleep(2) != 0 {
				return
			}
		}
		hb.Inject(backend.Event{Kind: backend.EventClose})
	})

	m.KeepOpen()
	win.Threads().Join(h)

	if got := hb.Presents(); got < 2 {
		t.Errorf("presents = %d, want at least 2 (initial frame plus expose)", got)
	}
}

// Key events without a close translation are consumed without effect.
func TestEventLoopIgnoresPlainKeys(t *testing.T) {
	hb := headless.NewAutoClose(1)
	hb.Inject(backend.Event{Kind: backend.EventKey, Rune: 'a'})
	m, win := newHeadlessManager(t, DefaultConfig(), hb)

	m.KeepOpen()

	if win.State() != StateClosed {
		t.Errorf("state = %v, want closed", win.State())
	}
	if hb.Presents() < 1 {
		t.Errorf("presents = %d, want at least 1", hb.Presents())
	}
}

package txlin

import (
	"sync"

	"github.com/gogpu/txlin/backend"
	"github.com/gogpu/txlin/internal/goid"
)

// Context is the drawing context of a window. It holds the mutable drawing
// state (current color, pen width) and the target canvas, and dispatches
// every primitive by caller capability:
//
//   - On the owning goroutine, primitives apply immediately to the canvas.
//   - On any other goroutine, the restricted subset — Line, TextOut,
//     SetColor, SelectMouseCursor, Beep — is wrapped into a command and
//     queued for the event loop; everything else returns
//     ErrUnsupportedFromThread without touching any state.
//
// The mutable state is guarded by one mutex acquired once per applied
// primitive and never held across a blocking call.
type Context struct {
	win  *Window
	font *FontRasterizer

	mu       sync.Mutex
	canvas   *Canvas
	color    Color
	penWidth int
	cursor   backend.Cursor
}

func newContext(win *Window, canvas *Canvas, font *FontRasterizer, background Color) *Context {
	dc := &Context{
		win:      win,
		font:     font,
		canvas:   canvas,
		color:    Black,
		penWidth: 1,
	}
	dc.canvas.Clear(background)
	return dc
}

// onOwner reports whether the calling goroutine owns the native window.
func (dc *Context) onOwner() bool {
	return goid.ID() == dc.win.ownerGID
}

// enqueue places a command on the window's queue for the event loop.
func (dc *Context) enqueue(cmd drawCommand) error {
	if dc.win.State() != StateOpen {
		return ErrNoWindow
	}
	dc.win.queue.push(cmd)
	return nil
}

// Font returns the window's font rasterizer.
func (dc *Context) Font() *FontRasterizer { return dc.font }

// Color returns the current drawing color.
func (dc *Context) Color() Color {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.color
}

// SetColor changes the current drawing color. Allowed from workers: the
// change is queued and applied in submission order relative to the worker's
// other commands.
func (dc *Context) SetColor(c Color) error {
	if !dc.onOwner() {
		return dc.enqueue(drawCommand{kind: cmdSetColor, color: c})
	}
	dc.mu.Lock()
	dc.color = c
	dc.mu.Unlock()
	return nil
}

// PenWidth returns the current pen width.
func (dc *Context) PenWidth() int {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.penWidth
}

// SetPenWidth changes the pen width. Owner only.
func (dc *Context) SetPenWidth(w int) error {
	if !dc.onOwner() {
		return ErrUnsupportedFromThread
	}
	if w < 1 {
		return ErrInvalidArgument
	}
	dc.mu.Lock()
	dc.penWidth = w
	dc.mu.Unlock()
	return nil
}

// Line draws a line between two points. Queued when called from a worker.
func (dc *Context) Line(x1, y1, x2, y2 int) error {
	if !dc.onOwner() {
		return dc.enqueue(drawCommand{kind: cmdLine, x1: x1, y1: y1, x2: x2, y2: y2})
	}
	dc.mu.Lock()
	dc.canvas.Line(x1, y1, x2, y2, dc.color, dc.penWidth)
	dc.mu.Unlock()
	dc.win.markDirty()
	return nil
}

// TextOut renders text in fixed glyph cells with the top-left corner of the
// first cell at (x, y). Queued when called from a worker.
func (dc *Context) TextOut(x, y int, text string) error {
	if !dc.onOwner() {
		return dc.enqueue(drawCommand{kind: cmdTextOut, x1: x, y1: y, text: text})
	}
	dc.mu.Lock()
	dc.font.Render(dc.canvas, x, y, text, dc.color)
	dc.mu.Unlock()
	dc.win.markDirty()
	return nil
}

// Clear fills the whole canvas with the current color. Owner only.
func (dc *Context) Clear() error {
	if !dc.onOwner() {
		return ErrUnsupportedFromThread
	}
	dc.mu.Lock()
	dc.canvas.Clear(dc.color)
	dc.mu.Unlock()
	dc.win.markDirty()
	return nil
}

// Rectangle draws an axis-aligned rectangle outline. Owner only.
func (dc *Context) Rectangle(x1, y1, x2, y2 int) error {
	if !dc.onOwner() {
		return ErrUnsupportedFromThread
	}
	dc.mu.Lock()
	dc.canvas.Rectangle(x1, y1, x2, y2, dc.color, dc.penWidth)
	dc.mu.Unlock()
	dc.win.markDirty()
	return nil
}

// Circle draws a circle outline. Owner only.
func (dc *Context) Circle(x, y, r int) error {
	if !dc.onOwner() {
		return ErrUnsupportedFromThread
	}
	dc.mu.Lock()
	dc.canvas.Circle(x, y, r, dc.color, dc.penWidth)
	dc.mu.Unlock()
	dc.win.markDirty()
	return nil
}

// SetPixel sets a single pixel to the current color. Owner only.
func (dc *Context) SetPixel(x, y int) error {
	if !dc.onOwner() {
		return ErrUnsupportedFromThread
	}
	dc.mu.Lock()
	dc.canvas.SetPixel(x, y, dc.color)
	dc.mu.Unlock()
	dc.win.markDirty()
	return nil
}

// GetPixel reads a single canvas pixel.
func (dc *Context) GetPixel(x, y int) Color {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.canvas.At(x, y)
}

// SelectMouseCursor changes the window's mouse cursor. The value is checked
// against the fixed cursor set first; an unrecognized value returns false
// without altering the previously set cursor, as does a backend failure.
// Allowed from workers (queued).
func (dc *Context) SelectMouseCursor(c backend.Cursor) bool {
	if !c.Valid() {
		return false
	}
	if !dc.onOwner() {
		return dc.enqueue(drawCommand{kind: cmdCursor, cursor: c}) == nil
	}
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.applyCursorLocked(c)
}

// MouseCursor returns the last successfully selected cursor.
func (dc *Context) MouseCursor() backend.Cursor {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.cursor
}

// Beep triggers the platform sound signal. Allowed from workers (queued).
func (dc *Context) Beep() error {
	if !dc.onOwner() {
		return dc.enqueue(drawCommand{kind: cmdSound})
	}
	return dc.win.backend.Bell()
}

// SelectFont is accepted for source compatibility with the legacy API and
// has no observable effect: the glyph table is monolithic and fixed.
func (dc *Context) SelectFont(name string) error {
	Logger().Debug("txlin: SelectFont has no effect", "font", name)
	return nil
}

// SetGlyphCell rejects any attempt to change the glyph cell geometry after
// window creation. The geometry is build-time configuration only.
func (dc *Context) SetGlyphCell(w, h int) error {
	return ErrUnsupportedOperation
}

// applyCursorLocked performs the native cursor change; dc.mu must be held.
func (dc *Context) applyCursorLocked(c backend.Cursor) bool {
	if err := dc.win.backend.SetCursor(c); err != nil {
		Logger().Warn("txlin: set cursor failed", "cursor", c.String(), "error", err)
		return false
	}
	dc.cursor = c
	return true
}

// applyCommand applies one drained command on the owning goroutine. Each
// command is atomic with respect to every other command and to direct
// owner calls: the context mutex is held exactly for the application.
func (dc *Context) applyCommand(cmd drawCommand) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	switch cmd.kind {
	case cmdLine:
		dc.canvas.Line(cmd.x1, cmd.y1, cmd.x2, cmd.y2, dc.color, dc.penWidth)
		dc.win.markDirty()
	case cmdTextOut:
		dc.font.Render(dc.canvas, cmd.x1, cmd.y1, cmd.text, dc.color)
		dc.win.markDirty()
	case cmdClear:
		dc.canvas.Clear(dc.color)
		dc.win.markDirty()
	case cmdSetColor:
		dc.color = cmd.color
	case cmdCursor:
		dc.applyCursorLocked(cmd.cursor)
	case cmdSound:
		if err := dc.win.backend.Bell(); err != nil {
			Logger().Warn("txlin: bell failed", "error", err)
		}
	}
}

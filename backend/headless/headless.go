// Package headless provides an offscreen backend with no native dependency.
//
// It is selected only explicitly (config or dependency injection), never by
// registry priority: a missing display server must fail window creation, not
// silently degrade to an invisible window. Tests use it to observe present,
// cursor and bell activity.
package headless

import (
	"image"
	"sync"

	"github.com/gogpu/txlin/backend"
)

func init() {
	backend.Register(backend.BackendHeadless, func() backend.Backend {
		return New()
	})
}

// Headless is an offscreen backend. The zero value is not usable; call New.
type Headless struct {
	mu sync.Mutex

	initialized bool
	closed      bool
	width       int
	height      int
	title       string

	frame  *image.RGBA
	events []backend.Event

	presents int
	bells    int
	cursor   backend.Cursor

	// closeAfterPresents, when > 0, makes PollEvent report EventClose
	// once at least that many frames were presented. This gives tests a
	// deterministic way to end a KeepOpen loop.
	closeAfterPresents int
	closeSent          bool
}

// New creates an uninitialized headless backend.
func New() *Headless {
	return &Headless{}
}

// NewAutoClose creates a headless backend that delivers a close event after
// n frames have been presented.
func NewAutoClose(n int) *Headless {
	return &Headless{closeAfterPresents: n}
}

// Name returns the backend identifier.
func (h *Headless) Name() string { return backend.BackendHeadless }

// Init allocates the offscreen frame.
func (h *Headless) Init(width, height int, title string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.initialized = true
	h.closed = false
	h.width, h.height, h.title = width, height, title
	h.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

// Present copies the canvas into the offscreen frame.
func (h *Headless) Present(img *image.RGBA) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.initialized || h.closed {
		return backend.ErrNotInitialized
	}
	copy(h.frame.Pix, img.Pix)
	h.presents++
	return nil
}

// PollEvent returns injected events, plus the auto-close event once the
// configured number of presents was reached.
func (h *Headless) PollEvent() (backend.Event, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.events) > 0 {
		ev := h.events[0]
		h.events = h.events[1:]
		return ev, true
	}
	if h.closeAfterPresents > 0 && h.presents >= h.closeAfterPresents && !h.closeSent {
		h.closeSent = true
		return backend.Event{Kind: backend.EventClose}, true
	}
	return backend.Event{}, false
}

// SetCursor records the cursor; unknown values are rejected.
func (h *Headless) SetCursor(c backend.Cursor) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !c.Valid() {
		return backend.ErrUnknownCursor
	}
	if !h.initialized || h.closed {
		return backend.ErrNotInitialized
	}
	h.cursor = c
	return nil
}

// Bell counts sound triggers.
func (h *Headless) Bell() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.initialized || h.closed {
		return backend.ErrNotInitialized
	}
	h.bells++
	return nil
}

// Close releases the offscreen frame.
func (h *Headless) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.frame = nil
}

// Inject appends an event to the pending queue.
func (h *Headless) Inject(ev backend.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, ev)
}

// Presents returns the number of presented frames.
func (h *Headless) Presents() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.presents
}

// Bells returns the number of sound triggers.
func (h *Headless) Bells() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.bells
}

// Cursor returns the last successfully set cursor.
func (h *Headless) Cursor() backend.Cursor {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}

// Closed reports whether Close was called.
func (h *Headless) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// Frame returns the last presented frame, or nil before the first present
// or after Close.
func (h *Headless) Frame() *image.RGBA {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frame
}

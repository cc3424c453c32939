package txlin

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/txlin/backend"
	"github.com/gogpu/txlin/internal/goid"

	// Default backends register themselves; headless never wins priority
	// selection but is available by name and for tests.
	_ "github.com/gogpu/txlin/backend/headless"
	_ "github.com/gogpu/txlin/backend/x11"
)

// WindowState is the lifecycle state of the window. Transitions are
// monotonic: Uninitialized → Open → Closing → Closed.
type WindowState int32

const (
	StateUninitialized WindowState = iota
	StateOpen
	StateClosing
	StateClosed
)

func (s WindowState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Window is the native window plus everything scoped to it: the drawing
// context, the command queue and the worker registry. It is owned
// exclusively by the goroutine that created it; only that goroutine may
// drive the event loop or touch the backend.
type Window struct {
	cfg      Config
	backend  backend.Backend
	ownerGID int64
	width    int
	height   int

	state atomic.Int32
	dirty atomic.Bool

	ctx     *Context
	queue   *commandQueue
	threads *ThreadRegistry
}

// Context returns the window's drawing context.
func (w *Window) Context() *Context { return w.ctx }

// Threads returns the window's worker registry.
func (w *Window) Threads() *ThreadRegistry { return w.threads }

// Size returns the window dimensions.
func (w *Window) Size() (width, height int) { return w.width, w.height }

// State returns the current lifecycle state.
func (w *Window) State() WindowState {
	return WindowState(w.state.Load())
}

func (w *Window) transition(from, to WindowState) bool {
	return w.state.CompareAndSwap(int32(from), int32(to))
}

// markDirty flags the canvas as needing a present.
func (w *Window) markDirty() { w.dirty.Store(true) }

// teardown releases the native backend. Must run on the owning goroutine.
func (w *Window) teardown() {
	if !w.transition(StateClosing, StateClosed) {
		return
	}
	w.backend.Close()
	Logger().Info("txlin: window closed")
}

// WindowManager owns the single window of the library. A manager creates
// its window at most once per lifetime; the legacy API it replaces allows
// one window per process, and re-creation is an error, not a reset.
type WindowManager struct {
	mu      sync.Mutex
	cfg     Config
	opts    managerOptions
	win     *Window
	created bool
}

// NewWindowManager creates a manager with an immutable configuration.
// The configuration — including the glyph cell geometry — is fixed here;
// nothing changes it after Create.
func NewWindowManager(cfg Config, opts ...Option) *WindowManager {
	var mo managerOptions
	for _, opt := range opts {
		opt(&mo)
	}
	return &WindowManager{cfg: cfg, opts: mo}
}

// Create opens the native window and constructs the drawing context with
// the configured glyph cell geometry and an empty command queue.
//
// It fails with ErrAlreadyInitialized if this manager ever created a
// window, and with an error wrapping ErrBackendInit if the native backend
// cannot be initialized (missing display, driver failure). The calling
// goroutine becomes the owning goroutine.
func (m *WindowManager) Create(width, height int) (*Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.created {
		return nil, ErrAlreadyInitialized
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: window size %dx%d", ErrInvalidArgument, width, height)
	}
	if err := m.cfg.validate(); err != nil {
		return nil, err
	}

	b := m.opts.backend
	if b == nil {
		if m.cfg.Backend != "" {
			b = backend.Get(m.cfg.Backend)
		} else {
			b = backend.Default()
		}
	}
	if b == nil {
		return nil, fmt.Errorf("%w: no backend %q registered", ErrBackendInit, m.cfg.Backend)
	}
	if err := b.Init(width, height, m.cfg.Title); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendInit, err)
	}

	win := &Window{
		cfg:      m.cfg,
		backend:  b,
		ownerGID: goid.ID(),
		width:    width,
		height:   height,
		queue:    newCommandQueue(),
		threads:  NewThreadRegistry(),
	}
	font := NewFontRasterizer(m.cfg.CellWidth, m.cfg.CellHeight)
	canvas := NewCanvas(width, height)
	win.ctx = newContext(win, canvas, font, m.cfg.background())
	win.state.Store(int32(StateOpen))
	win.markDirty()

	m.created = true
	m.win = win
	Logger().Info("txlin: window created",
		"backend", b.Name(), "width", width, "height", height,
		"cell_width", m.cfg.CellWidth, "cell_height", m.cfg.CellHeight)
	return win, nil
}

// Window returns the managed window, nil before Create.
func (m *WindowManager) Window() *Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.win
}

// KeepOpen runs the event loop synchronously on the calling goroutine until
// a close signal is observed, then tears the window down. It is a no-op
// when no window is Open.
//
// Call it after all direct drawing on the owning goroutine; without it the
// process can end before the window is ever presented. That is a documented
// caller obligation of the legacy API, not a defect to be hidden.
func (m *WindowManager) KeepOpen() {
	w := m.Window()
	if w == nil {
		return
	}
	if goid.ID() != w.ownerGID {
		// The backend is single-threaded; refusing is the only safe move.
		Logger().Warn("txlin: KeepOpen called off the owning goroutine; ignoring")
		return
	}
	switch w.State() {
	case StateOpen:
		newEventLoop(w).run()
	case StateClosing:
		// A cross-goroutine Close left the teardown to the owner.
	default:
		return
	}
	w.threads.shutdown()
	w.teardown()
}

// Close transitions the window Open → Closing → Closed, releases the native
// backend and delivers the cooperative stop signal to every still-running
// worker. It does not join them; callers wanting a clean shutdown join
// explicitly first.
//
// Called from a goroutine other than the owner, Close only requests the
// transition: the running event loop observes it and the owner finishes the
// teardown, keeping all backend access on one thread.
func (m *WindowManager) Close() error {
	w := m.Window()
	if w == nil {
		return ErrNoWindow
	}
	switch w.State() {
	case StateClosed:
		return nil
	case StateUninitialized:
		return ErrNoWindow
	}

	w.transition(StateOpen, StateClosing)
	w.threads.shutdown()
	if goid.ID() == w.ownerGID {
		w.teardown()
	}
	return nil
}

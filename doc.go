// Package txlin reimplements a legacy "draw directly to a window" console
// graphics API on top of a single-threaded native rendering backend.
//
// # Overview
//
// txlin opens one window per manager, draws into a CPU pixel canvas with a
// small set of immediate-mode primitives, and renders text with a fixed-size
// bitmap glyph table. The native window and surface are owned exclusively by
// the goroutine that created them; worker goroutines spawned through the
// thread registry may still draw, because their calls are intercepted and
// queued as commands that the event loop applies on the owning goroutine.
//
// # Quick Start
//
//	m := txlin.NewWindowManager(txlin.DefaultConfig())
//	win, err := m.Create(800, 600)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dc := win.Context()
//	dc.SetColor(txlin.Black)
//	dc.Line(0, 0, 799, 599)
//	dc.TextOut(16, 16, "Hello, TXLin!")
//	m.KeepOpen() // blocks until the window is closed
//
// KeepOpen must be called after the drawing calls on the owning goroutine,
// or the process ends before anything is ever presented. This mirrors the
// legacy API: the backend does not keep a window alive on its own.
//
// # Worker threads
//
//	h := win.Threads().Spawn(func(parallel bool) {
//	    dc.SetColor(txlin.Red)
//	    dc.Line(0, 0, 100, 100)  // queued, applied by the event loop
//	    win.Threads().Sleep(100) // cancellation-aware sleep
//	})
//	m.KeepOpen()
//	win.Threads().Join(h)
//
// Only line drawing, text output, color changes, mouse cursor selection and
// the sound trigger are available from a worker; any other primitive returns
// ErrUnsupportedFromThread.
//
// # Architecture
//
// The library is organized into:
//   - Public API: WindowManager, Window, Context, ThreadRegistry, FontRasterizer
//   - backend/: native backend interface and registry (x11, headless)
//   - internal/goid: goroutine identity for the owner capability check
package txlin

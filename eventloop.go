package txlin

import (
	"time"

	"github.com/gogpu/txlin/backend"
)

// frameInterval paces the cooperative loop. It bounds per-iteration latency:
// close conditions and queued commands are observed at least this often.
const frameInterval = 5 * time.Millisecond

// eventLoop is the single-threaded cooperative driver of a window. Each
// iteration pumps native events, drains the command queue in FIFO order,
// presents the frame if anything changed, and sleeps briefly. It blocks on
// nothing besides that sleep, so close conditions are observed promptly.
type eventLoop struct {
	win *Window
}

func newEventLoop(w *Window) *eventLoop {
	return &eventLoop{win: w}
}

// run drives the loop until the window leaves the Open state. On a close
// event it transitions the window to Closing and returns without draining
// the queue: commands racing a close are dropped, matching the legacy
// behavior of a window that is already gone.
func (l *eventLoop) run() {
	log := Logger()
	log.Debug("txlin: event loop started")
	for l.win.State() == StateOpen {
		if l.pumpEvents() {
			l.win.transition(StateOpen, StateClosing)
			break
		}
		l.drainCommands()
		l.present()
		time.Sleep(frameInterval)
	}
	// Close may have been requested from another goroutine.
	l.win.transition(StateOpen, StateClosing)
	log.Debug("txlin: event loop stopped")
}

// pumpEvents processes every pending native event and reports whether a
// close condition (close button, platform quit shortcut) was observed.
func (l *eventLoop) pumpEvents() bool {
	for {
		ev, ok := l.win.backend.PollEvent()
		if !ok {
			return false
		}
		switch ev.Kind {
		case backend.EventClose:
			return true
		case backend.EventExpose:
			l.win.markDirty()
		case backend.EventKey:
			// The legacy surface has no key callbacks; keys only matter
			// for the quit shortcut, which the backend translates.
		}
	}
}

// drainCommands applies all currently queued worker commands on the owning
// goroutine. Per-producer order is preserved; the interleaving across
// producers is whatever order they were dequeued.
func (l *eventLoop) drainCommands() {
	cmds := l.win.queue.drain()
	for i := range cmds {
		l.win.ctx.applyCommand(cmds[i])
	}
	if len(cmds) > 0 {
		Logger().Debug("txlin: drained commands", "count", len(cmds))
	}
}

// present pushes the canvas to the native surface when dirty.
func (l *eventLoop) present() {
	if !l.win.dirty.Swap(false) {
		return
	}
	if err := l.win.backend.Present(l.win.ctx.canvas.RGBA()); err != nil {
		Logger().Warn("txlin: present failed", "error", err)
	}
}

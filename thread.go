package txlin

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/txlin/internal/goid"
)

// ThreadState is the lifecycle state of a worker handle. Transitions are
// monotonic: Running is entered once and left for exactly one of the two
// terminal states.
type ThreadState int32

const (
	// ThreadRunning means the callback has been started and not returned.
	ThreadRunning ThreadState = iota

	// ThreadFinished means the callback returned on its own.
	ThreadFinished

	// ThreadStopped means the callback returned after Stop was requested,
	// or the handle never started (spawn failure).
	ThreadStopped
)

func (s ThreadState) String() string {
	switch s {
	case ThreadRunning:
		return "running"
	case ThreadFinished:
		return "finished"
	case ThreadStopped:
		return "stopped"
	}
	return "unknown"
}

// ThreadHandle identifies one spawned worker. Handles are created by
// ThreadRegistry.Spawn only.
type ThreadHandle struct {
	id    int64
	state atomic.Int32

	// done is closed when the callback returns; Join waits on it.
	done chan struct{}

	// cancel is the cooperative cancellation token, closed by Stop and
	// observed at the worker's blocking point (Sleep). Closing it cannot
	// guarantee the callback halts or releases what it holds; that gap is
	// inherent to forced termination and is documented, not hidden.
	cancel   chan struct{}
	stopOnce sync.Once

	stopRequested atomic.Bool

	// joinOK is the deterministic Join result, false only for handles
	// that never started.
	joinOK bool
}

// State returns the current lifecycle state.
func (h *ThreadHandle) State() ThreadState {
	return ThreadState(h.state.Load())
}

// finish moves the handle to its terminal state and releases joiners.
func (h *ThreadHandle) finish() {
	if h.stopRequested.Load() {
		h.state.Store(int32(ThreadStopped))
	} else {
		h.state.Store(int32(ThreadFinished))
	}
	close(h.done)
}

// ThreadRegistry tracks worker goroutines spawned by the library. It backs
// the owner-versus-worker capability check in the drawing context: a
// goroutine is a worker exactly while its callback runs.
type ThreadRegistry struct {
	mu      sync.Mutex
	byGID   map[int64]*ThreadHandle
	handles []*ThreadHandle
	closed  bool

	nextID atomic.Int64
}

// NewThreadRegistry creates an empty registry.
func NewThreadRegistry() *ThreadRegistry {
	return &ThreadRegistry{
		byGID: make(map[int64]*ThreadHandle),
	}
}

// Spawn starts fn as a worker. In the default build the callback runs on its
// own goroutine pinned to an OS thread and receives true; with the
// concurrency feature disabled at build time the callback runs inline on the
// calling goroutine and receives false. The flag is computed once at spawn
// and never changes during the callback's execution.
//
// A nil callback, or Spawn after the registry shut down, yields a dead
// handle whose Join returns false immediately.
func (r *ThreadRegistry) Spawn(fn func(parallel bool)) *ThreadHandle {
	h := &ThreadHandle{
		id:     r.nextID.Add(1),
		done:   make(chan struct{}),
		cancel: make(chan struct{}),
	}

	r.mu.Lock()
	dead := fn == nil || r.closed
	if !dead {
		// Tracked from the moment of spawn, so CancelAll reaches workers
		// that have not yet started running.
		r.handles = append(r.handles, h)
	}
	r.mu.Unlock()
	if dead {
		h.stopRequested.Store(true)
		h.finish()
		return h
	}
	h.joinOK = true

	if !concurrencyEnabled {
		// Inline fallback: the callback runs on the calling goroutine,
		// so it draws with the caller's capabilities.
		fn(false)
		h.finish()
		return h
	}

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		gid := goid.ID()
		r.register(gid, h)
		defer func() {
			r.unregister(gid)
			h.finish()
		}()
		fn(true)
	}()
	return h
}

// Join blocks until the handle reaches a terminal state. It returns true on
// success and false for a nil or never-started handle. Join is idempotent:
// a second call on a terminal handle returns the same result immediately.
func (r *ThreadRegistry) Join(h *ThreadHandle) bool {
	if h == nil {
		return false
	}
	<-h.done
	return h.joinOK
}

// IsRunning is a non-blocking state poll.
func (r *ThreadRegistry) IsRunning(h *ThreadHandle) bool {
	return h != nil && h.State() == ThreadRunning
}

// Stop requests cooperative termination by closing the handle's cancellation
// token, which the worker observes at its next Sleep. It returns true if the
// signal was delivered — independent of whether the callback actually stops
// promptly — and false for a nil or already-terminal handle.
func (r *ThreadRegistry) Stop(h *ThreadHandle) bool {
	if h == nil || h.State() != ThreadRunning {
		return false
	}
	h.stopRequested.Store(true)
	h.stopOnce.Do(func() { close(h.cancel) })
	return true
}

// Sleep suspends the calling goroutine for millis milliseconds and returns 0.
// When called from a worker whose Stop was requested, it returns -1 as soon
// as the cancellation is observed. It never suspends the owning goroutine's
// event loop, because that loop never calls it.
func (r *ThreadRegistry) Sleep(millis uint) int {
	d := time.Duration(millis) * time.Millisecond
	h := r.lookup(goid.ID())
	if h == nil {
		time.Sleep(d)
		return 0
	}
	select {
	case <-h.cancel:
		return -1
	case <-time.After(d):
		return 0
	}
}

// CancelAll delivers the stop signal to every still-running worker. It does
// not join them: callers needing a clean shutdown join explicitly before
// releasing resources the callbacks might still reference.
func (r *ThreadRegistry) CancelAll() {
	r.mu.Lock()
	handles := make([]*ThreadHandle, len(r.handles))
	copy(handles, r.handles)
	r.mu.Unlock()
	for _, h := range handles {
		r.Stop(h)
	}
}

// shutdown stops accepting spawns and cancels running workers.
func (r *ThreadRegistry) shutdown() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.CancelAll()
}

func (r *ThreadRegistry) register(gid int64, h *ThreadHandle) {
	r.mu.Lock()
	r.byGID[gid] = h
	r.mu.Unlock()
}

func (r *ThreadRegistry) unregister(gid int64) {
	r.mu.Lock()
	delete(r.byGID, gid)
	r.mu.Unlock()
}

// lookup returns the handle registered for gid, nil if gid is not a worker.
func (r *ThreadRegistry) lookup(gid int64) *ThreadHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byGID[gid]
}

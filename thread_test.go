package txlin

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSpawnParallelFlagMatchesBuildMode(t *testing.T) {
	r := NewThreadRegistry()

	const workers = 8
	var mismatch atomic.Int32
	handles := make([]*ThreadHandle, workers)
	for i := range handles {
		handles[i] = r.Spawn(func(parallel bool) {
			first := parallel
			// The flag must be invariant for the callback's lifetime.
			time.Sleep(time.Millisecond)
			if parallel != first || parallel != concurrencyEnabled {
				mismatch.Add(1)
			}
		})
	}
	for _, h := range handles {
		if !r.Join(h) {
			t.Error("Join() = false for a spawned worker")
		}
	}
	if mismatch.Load() != 0 {
		t.Errorf("%d workers saw a parallel flag inconsistent with the build mode", mismatch.Load())
	}
}

func TestJoinIdempotent(t *testing.T) {
	r := NewThreadRegistry()
	h := r.Spawn(func(bool) {})

	first := r.Join(h)
	start := time.Now()
	second := r.Join(h)
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("second Join blocked for %v", elapsed)
	}
	if first != second {
		t.Errorf("Join results differ: first %v, second %v", first, second)
	}
	if !first {
		t.Error("Join() = false for a worker that ran")
	}
}

func TestJoinInvalidHandle(t *testing.T) {
	r := NewThreadRegistry()
	if r.Join(nil) {
		t.Error("Join(nil) = true")
	}
	dead := r.Spawn(nil)
	if r.Join(dead) {
		t.Error("Join() = true for a handle that never started")
	}
	if r.Join(dead) {
		t.Error("second Join() = true for a dead handle")
	}
	if dead.State() != ThreadStopped {
		t.Errorf("dead handle state = %v, want stopped", dead.State())
	}
}

func TestThreadStateTransitions(t *testing.T) {
	r := NewThreadRegistry()
	release := make(chan struct{})
	h := r.Spawn(func(bool) { <-release })

	if !r.IsRunning(h) {
		t.Error("IsRunning() = false while the callback runs")
	}
	close(release)
	r.Join(h)
	if r.IsRunning(h) {
		t.Error("IsRunning() = true after the callback returned")
	}
	if h.State() != ThreadFinished {
		t.Errorf("state = %v, want finished", h.State())
	}
}

func TestStopObservedAtSleep(t *testing.T) {
	r := NewThreadRegistry()
	var sawCancel atomic.Bool
	h := r.Spawn(func(bool) {
		for {
			if r.Sleep(10) != 0 {
				sawCancel.Store(true)
				return
			}
		}
	})

	// Give the worker time to enter its sleep loop.
	time.Sleep(20 * time.Millisecond)
	if !r.Stop(h) {
		t.Fatal("Stop() = false for a running worker")
	}
	if !r.Join(h) {
		t.Error("Join() = false after Stop")
	}
	if !sawCancel.Load() {
		t.Error("worker never observed the cancellation at Sleep")
	}
	if h.State() != ThreadStopped {
		t.Errorf("state = %v, want stopped", h.State())
	}
}

func TestStopInvalidOrTerminal(t *testing.T) {
	r := NewThreadRegistry()
	if r.Stop(nil) {
		t.Error("Stop(nil) = true")
	}
	h := r.Spawn(func(bool) {})
	r.Join(h)
	if r.Stop(h) {
		t.Error("Stop() = true for a terminal handle")
	}
}

func TestSleepOutsideWorker(t *testing.T) {
	r := NewThreadRegistry()
	start := time.Now()
	if got := r.Sleep(20); got != 0 {
		t.Errorf("Sleep() = %d, want 0", got)
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Errorf("Sleep(20) returned after %v", elapsed)
	}
}

func TestSpawnAfterShutdown(t *testing.T) {
	r := NewThreadRegistry()
	r.shutdown()
	h := r.Spawn(func(bool) { t.Error("callback ran after shutdown") })
	if r.Join(h) {
		t.Error("Join() = true for a spawn after shutdown")
	}
}

func TestCancelAllStopsWorkers(t *testing.T) {
	r := NewThreadRegistry()
	handles := make([]*ThreadHandle, 4)
	for i := range handles {
		handles[i] = r.Spawn(func(bool) {
			for r.Sleep(10) == 0 {
			}
		})
	}
	time.Sleep(20 * time.Millisecond)
	r.CancelAll()
	for i, h := range handles {
		if !r.Join(h) {
			t.Errorf("worker %d: Join() = false", i)
		}
		if h.State() != ThreadStopped {
			t.Errorf("worker %d: state = %v, want stopped", i, h.State())
		}
	}
}

func TestThreadStateString(t *testing.T) {
	if ThreadRunning.String() != "running" || ThreadFinished.String() != "finished" || ThreadStopped.String() != "stopped" {
		t.Error("unexpected ThreadState string values")
	}
}

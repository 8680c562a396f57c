/*
© 2026-present Silktree Authors
ISC License
*/

package floop

import (
	"testing"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/silktree/frame"
	"github.com/silktree/frame/fhost"
	"github.com/silktree/frame/fid"
)

func TestPoolRunsMainFrameToCompletion(t *testing.T) {
	var pool = New()
	var result, err = runWithTimeout(t, pool, func() (*frame.Frame, error) {
		return frame.Spawn(func(*frame.Frame) (any, error) {
			return "ok", nil
		})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Fatalf("got %v, want ok", result)
	}
}

func TestPoolPropagatesMainFrameError(t *testing.T) {
	var pool = New()
	var sentinel = errSentinel{}
	var _, err = runWithTimeout(t, pool, func() (*frame.Frame, error) {
		return frame.Spawn(func(*frame.Frame) (any, error) {
			return nil, sentinel
		})
	})
	if err != sentinel {
		t.Fatalf("got %v, want %v", err, sentinel)
	}
}

func TestPoolDefaultSizingUsesProcessorCount(t *testing.T) {
	var pool = New()
	var gotWorkers = make(chan int, 1)
	runWithTimeout(t, pool, func() (*frame.Frame, error) {
		return frame.Spawn(func(*frame.Frame) (any, error) {
			gotWorkers <- len(pool.workers)
			return nil, nil
		})
	})
	select {
	case n := <-gotWorkers:
		if n != fhost.ProcessorCount() {
			t.Fatalf("pool sized to %d workers, want fhost.ProcessorCount() = %d", n, fhost.ProcessorCount())
		}
	case <-time.After(time.Second):
		t.Fatal("main frame never ran")
	}
}

func TestPoolUsesInjectedFakeClockForDelays(t *testing.T) {
	var fake = clockz.NewFakeClock()
	var pool = New(WithClock(fake))
	var fired = make(chan struct{}, 1)

	go func() {
		runWithTimeout(t, pool, func() (*frame.Frame, error) {
			return frame.Spawn(func(*frame.Frame) (any, error) {
				pool.Enqueue(time.Hour, func() { fired <- struct{}{} }, nil)
				// keep the main frame, and so the pool, alive until the
				// test stops the pool itself
				return nil, frame.Hold()
			})
		})
	}()

	select {
	case <-fired:
		t.Fatal("delayed callback fired before the fake clock advanced")
	case <-time.After(50 * time.Millisecond):
	}

	fake.Advance(time.Hour)
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("delayed callback never fired after advancing the fake clock")
	}
	pool.Stop(nil, nil)
}

// TestPoolRefusesReentry covers spec.md §4.1: Run must refuse to start a
// second loop on a goroutine where one is already running, rather than
// deadlock or silently nest.
func TestPoolRefusesReentry(t *testing.T) {
	var pool = New()
	var inner = make(chan error, 1)
	runWithTimeout(t, pool, func() (*frame.Frame, error) {
		return frame.Spawn(func(*frame.Frame) (any, error) {
			var _, err = pool.Run(func() (*frame.Frame, error) {
				return frame.Spawn(func(*frame.Frame) (any, error) { return nil, nil })
			}, 0)
			inner <- err
			return nil, nil
		})
	})
	select {
	case err := <-inner:
		if err == nil {
			t.Fatal("expected an error re-entering Run on a goroutine with a loop already running")
		}
	case <-time.After(time.Second):
		t.Fatal("nested Run never returned")
	}
}

// TestPoolWakesAffinityPinnedFrameFromAnotherWorker covers spec.md §8
// scenario 6 "cross-worker wake": a frame pinned to one worker via
// WithAffinity waits on an Event that is fired from an entirely
// different worker's goroutine. Delivery must still cross the worker
// boundary correctly (spec.md §5 "affinity pins a frame's body ... to a
// particular worker") instead of deadlocking or silently dropping the
// wake because the firing goroutine doesn't match the pinned affinity.
func TestPoolWakesAffinityPinnedFrameFromAnotherWorker(t *testing.T) {
	var pool = New()
	var pinnedWorker = pool.SpawnThread(nil).WorkerID()

	var result, err = runWithTimeout(t, pool, func() (*frame.Frame, error) {
		return frame.Spawn(func(self *frame.Frame) (any, error) {
			var signal = frame.NewEvent("cross-worker-signal", true)

			// fired from a second, freshly spawned worker: never the one
			// this frame is pinned to
			var sender = pool.SpawnThread(nil)
			pool.Enqueue(0, func() { signal.Send("woke") }, ptr(sender.WorkerID()))

			return self.Wait(signal)
		}, frame.WithAffinity(pinnedWorker))
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "woke" {
		t.Fatalf("got %v, want woke", result)
	}
}

func ptr(id fid.WorkerID) *fid.WorkerID { return &id }

type errSentinel struct{}

func (errSentinel) Error() string { return "sentinel" }

func runWithTimeout(t *testing.T, pool *Pool, factory frame.Factory) (result any, err error) {
	t.Helper()
	var done = make(chan struct{})
	go func() {
		result, err = pool.Run(factory, 0)
		close(done)
	}()
	select {
	case <-done:
		return result, err
	case <-time.After(2 * time.Second):
		t.Fatal("pool.Run never returned")
		return nil, nil
	}
}

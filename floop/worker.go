/*
© 2026-present Silktree Authors
ISC License
*/

package floop

import (
	"github.com/silktree/frame"
	"github.com/silktree/frame/ferrors"
	"github.com/silktree/frame/fid"
	"github.com/silktree/frame/fruntime"
)

// worker is one goroutine draining the pool's shared queue and its own
// affinity inbox. It implements [frame.WorkerHandle].
type worker struct {
	id     fid.WorkerID
	pool   *Pool
	inbox  chan job
	quit   chan struct{}
	exited chan struct{}
}

var _ frame.WorkerHandle = (*worker)(nil)

func (w *worker) WorkerID() fid.WorkerID { return w.id }

// loop is the worker's body: it installs itself as the current loop and
// current worker for its own goroutine id, then alternates between its
// private inbox and the shared queue until told to quit.
func (w *worker) loop() {
	defer close(w.exited)
	var gid = fruntime.GoroutineID()
	w.pool.mu.Lock()
	w.pool.byGoroutine[gid] = w
	w.pool.mu.Unlock()
	defer func() {
		w.pool.mu.Lock()
		delete(w.pool.byGoroutine, gid)
		w.pool.mu.Unlock()
	}()

	frame.SetCurrentLoop(w.pool)

	for {
		select {
		case <-w.quit:
			return
		case j := <-w.inbox:
			w.run(j)
		default:
			select {
			case <-w.quit:
				return
			case j := <-w.inbox:
				w.run(j)
			case j := <-w.pool.shared:
				w.run(j)
			}
		}
	}
}

// run invokes j.callback, recovering any panic into a stack-carrying
// ferrors value instead of crashing the process (spec.md §7 "structural
// errors"), grounded on the teacher's `PanicToErr`/`Recover` idiom. A
// panicking callback here is not a frame body (those recover their own
// panics in frame.Frame.runBody) but dispatch-loop infrastructure — the
// bootstrap callback or a listener's process() — so it is treated as
// fatal to the pool, matching the "root event loop stores it and stops"
// terminus spec.md §7 describes for an unhandled error.
func (w *worker) run(j job) {
	defer func() {
		if r := recover(); r != nil {
			var err = ferrors.Errorf("panic in floop worker callback: %v", r)
			w.pool.debugf("worker callback panicked: %s", ferrors.Short(err))
			w.pool.Stop(nil, err)
		}
	}()
	j.callback()
}

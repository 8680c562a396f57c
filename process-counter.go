/*
© 2026-present Silktree Authors
ISC License
*/

package frame

import "sync/atomic"

// processCounter is the ref-counted barrier of spec.md §2 "Process
// counter" and §9 "Process counter": it gates completion of a multicast
// send or a removal wake so a caller can await "every listener's process
// has been invoked."
//   - grounded on the teacher's atomic-counter idiom (atomic-counter.go)
//     paired with an Awaitable-style completion signal
//     (once-waiter.go/awaitable.go), generalized into a single type
type processCounter struct {
	n    atomic.Int32
	done *Event
}

// newProcessCounter returns a counter that fires its done Event once
// dec has been called n times
func newProcessCounter(n int32) (pc *processCounter) {
	pc = &processCounter{done: newEvent("processCounter.done", true)}
	pc.n.Store(n)
	if n <= 0 {
		pc.done.fireLocal(true, nil, true)
	}
	return
}

// dec decrements the counter; the zero-crossing caller fires done
func (pc *processCounter) dec() {
	if pc.n.Add(-1) == 0 {
		pc.done.fireLocal(true, nil, true)
	}
}

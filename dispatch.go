/*
© 2026-present Silktree Authors
ISC License
*/

package frame

import "github.com/silktree/frame/fid"

// affinityHolder is implemented by Listeners that pin every process()
// invocation delivered to them to a single worker (spec.md §3 "affinity:
// optional worker identifier"). The Listener that does so is the
// waitListener a [Frame.Wait] call registers, carrying the waiting
// frame's affinity ([Frame] implements it too, but a Frame is never
// itself a Listener). The combinators' listeners and readyForwarder do
// not implement it, so dispatch treats them as worker-agnostic.
type affinityHolder interface {
	workerAffinity() *fid.WorkerID
}

// dispatch delivers (sender, value, err) to listener, honoring blocking
// vs non-blocking wake semantics (spec.md §4.2 "Blocking vs non-blocking
// send") and the listener's affinity (spec.md §5 "Affinity pins a
// frame's body ... to a particular worker").
//   - blocking=true: if listener has no affinity, or its affinity
//     matches the calling worker, process runs synchronously on the
//     calling goroutine. Otherwise it is dispatched asynchronously and
//     counter accounting crosses the worker boundary (spec.md §9
//     "Affinity and free").
//   - blocking=false: always dispatched through the loop, never inline.
func dispatch(loop EventLoop, sender Awaitable, listener Listener, value any, err error, counter *processCounter, blocking bool) {
	var aff *fid.WorkerID
	if holder, ok := listener.(affinityHolder); ok {
		aff = holder.workerAffinity()
	}

	var runInline = blocking
	if runInline && aff != nil && loop != nil {
		if current, ok := loop.CurrentWorker(); !ok || current != *aff {
			runInline = false
		}
	}

	if runInline {
		listener.process(sender, value, err, counter, blocking)
		return
	}

	if loop == nil {
		// no loop reachable (eg. unit-testing a bare Awaitable): fall
		// back to inline delivery rather than silently dropping it
		listener.process(sender, value, err, counter, blocking)
		return
	}
	loop.Enqueue(0, func() {
		listener.process(sender, value, err, counter, true)
	}, aff)
}

// wakeListeners delivers value/err to every listener currently
// registered on b, per spec.md §4.2 step 4 ("_remove wakes each listener
// ... synchronously in blocking mode, via the loop otherwise").
//
// When blocking is true and the caller supplies no counter of its own,
// wakeListeners builds a [processCounter] with one count per listener
// (no extra count for the caller, which waits on it rather than
// decrementing it) and blocks the calling goroutine on it before
// returning. This is what makes "blocking
// send" actually block even when some listeners are dispatched
// asynchronously because their affinity doesn't match the calling
// worker (spec.md §9 "Affinity and free").
func wakeListeners(loop EventLoop, self Awaitable, listeners []Listener, value any, err error, blocking bool, counter *processCounter) {
	var ownCounter = counter == nil && blocking && len(listeners) > 0
	if ownCounter {
		counter = newProcessCounter(int32(len(listeners)))
	}
	for _, l := range listeners {
		dispatch(loop, self, l, value, err, counter, blocking)
	}
	if counter != nil && !ownCounter {
		counter.dec()
	}
	if ownCounter {
		counter.done.Join()
	}
}

// loopOrCurrent returns loop if non-nil, else the calling goroutine's
// current loop (spec.md §9 "Global state" per-goroutine current loop)
func loopOrCurrent(loop EventLoop) EventLoop {
	if loop != nil {
		return loop
	}
	return CurrentLoop()
}

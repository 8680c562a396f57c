/*
© 2026-present Silktree Authors
ISC License
*/

package frame

// genericRemove implements the common non-Frame Remove() contract of
// spec.md §3 ("remove: ... returns an Event that fires with true when
// removal actually happens, false when already done"), shared by Event
// and the two combinators. Frame has its own richer, vetoable version
// ([Frame.Remove]) since only Frames carry free handlers and owned
// children/primitives.
func genericRemove(b *base, loop EventLoop, self Awaitable) *Event {
	var result = newEvent("remove.result", true)
	if !b.complete(nil, nil) {
		result.Send(false)
		return result
	}
	var listeners = b.drainListeners()
	wakeListeners(loopOrCurrent(loop), self, listeners, nil, nil, true, nil)
	result.Send(true)
	return result
}

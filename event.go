/*
© 2026-present Silktree Authors
ISC License
*/

package frame

import (
	"time"

	"github.com/silktree/frame/fid"
)

// Event is the multicast awaitable of spec.md §6.2: a named broadcast
// point that a frame body can Send (fire now) or Post (fire after a
// delay on the current loop), and that any number of frames can await
// simultaneously.
//   - single_shot events behave like [base.complete]: the first Send
//     wins, Removed becomes permanently true, and Outcome freezes on the
//     value/err that fired it.
//   - Send never sets Removed on a multi-shot event; every Send drains and wakes
//     whatever listeners are registered at that instant, then the event
//     is immediately awaitable again
//   - grounded on github.com/haraldrudell/parl's AwaitableCh family
//     (awaitable.go) for the "closable channel with idempotent close"
//     idiom, generalized here to "drain-and-wake" so a non-single-shot
//     Event can fire more than once
type Event struct {
	base
	singleShot bool
}

var _ Awaitable = (*Event)(nil)

// NewEvent constructs a standalone Event. Unlike [Frame], an Event
// requires no running loop to exist; it only needs one at Send/Post
// time to schedule asynchronous wakes (spec.md §6.2).
func NewEvent(name string, singleShot bool) *Event {
	return newEvent(name, singleShot)
}

func newEvent(name string, singleShot bool) *Event {
	return &Event{base: newBase(name), singleShot: singleShot}
}

// Send fires the event synchronously: every currently-registered
// listener is woken before Send returns (spec.md §4.2 "blocking send").
// Returns the event itself so calls can be chained inline, e.g. inside
// a frame body: `frame.Wait(done.Send(result))`.
func (e *Event) Send(value any) *Event {
	e.fireLocal(value, nil, true)
	return e
}

// Post schedules the event to fire after delay on the calling
// goroutine's current loop (spec.md §6.2 "post(args, delay)"). Firing
// happens asynchronously; Post returns immediately.
func (e *Event) Post(value any, delay time.Duration) *Event {
	var loop = CurrentLoop()
	if loop == nil {
		// no loop reachable: fall back to an immediate local fire rather
		// than silently dropping the value
		e.fireLocal(value, nil, false)
		return e
	}
	loop.Enqueue(delay, func() { e.fireLocal(value, nil, false) }, nil)
	return e
}

// fireLocal implements the single wake-and-maybe-complete step shared by
// Send, Post, and the process-counter's internal done signal
// (process-counter.go). For single-shot events this is exactly
// [base.complete] followed by a drain; for multi-shot events the
// listener set is drained without ever setting removed.
func (e *Event) fireLocal(value any, err error, blocking bool) {
	var listeners []Listener
	if e.singleShot {
		if !e.complete(value, err) {
			return
		}
		listeners = e.drainListeners()
	} else {
		listeners = e.drainListeners()
	}
	wakeListeners(loopOrCurrent(nil), e, listeners, value, err, blocking, nil)
}

// Remove permanently retires the event: single-shot events simply
// complete with a nil outcome if they have not already fired; multi-shot
// events are marked removed so future Send/Post calls wake no one, and
// any frame still awaiting the bare Event is woken with a nil value and
// a nil error (spec.md §3 "Remove: requests removal").
func (e *Event) Remove() *Event {
	return genericRemove(&e.base, nil, e)
}

// Join blocks the calling goroutine until the event has fired, returning
// its outcome. Unlike [Frame.Wait], Join does not require the caller to
// be a frame body; it is used internally by wakeListeners to implement a
// blocking send's "every listener has been processed" guarantee even
// when some listeners are dispatched asynchronously across worker
// affinity boundaries.
func (e *Event) Join() (value any, err error) {
	if e.Removed() {
		return e.Outcome()
	}
	var l = &waitListener{id: fid.NewFrameID(), name: e.name + ".join", ch: make(chan wakeMsg, 1)}
	e.addListener(l)
	if e.Removed() {
		e.removeListener(l.id)
		return e.Outcome()
	}
	var msg = <-l.ch
	return msg.value, msg.err
}

func (e *Event) And(other Awaitable) *AllCombinator { return All(e, other) }
func (e *Event) Or(other Awaitable) *AnyCombinator  { return Any(e, other) }

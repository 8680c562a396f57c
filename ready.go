/*
© 2026-present Silktree Authors
ISC License
*/

package frame

import "github.com/silktree/frame/fid"

// readier is implemented by Awaitables with a distinct "ready" moment
// independent of their final outcome — [Frame] (the point its body
// starts running) and the two combinators themselves, whose Ready() is
// built from their members'. AllCombinator/AnyCombinator consult it
// on their own members to build their own Ready() event (spec.md §9
// Open Question 3: "all is ready when every child is ready, any when
// any one child is ready").
type readier interface {
	Ready() *Event
}

// aggregateReady builds the single-shot Event a combinator's Ready()
// method returns: requireAll selects All-shaped aggregation over every
// member's own Ready() (for [AllCombinator]), false selects Any-shaped
// aggregation (for [AnyCombinator]). Members that do not implement
// readier (Events) are treated as already ready: All-shaped aggregation
// skips them, and Any-shaped aggregation fires immediately when there is
// at least one.
func aggregateReady(name string, members []Awaitable, requireAll bool) *Event {
	var readyEvents = make([]Awaitable, 0, len(members))
	var hasPlainMember bool
	for _, m := range members {
		if r, ok := m.(readier); ok {
			readyEvents = append(readyEvents, r.Ready())
		} else {
			hasPlainMember = true
		}
	}
	var out = newEvent(name, true)
	if len(readyEvents) == 0 || (hasPlainMember && !requireAll) {
		out.fireLocal(nil, nil, true)
		return out
	}
	var agg Awaitable
	if requireAll {
		agg = All(readyEvents...)
	} else {
		agg = Any(readyEvents...)
	}
	if agg.Removed() {
		var v, e = agg.Outcome()
		out.fireLocal(v, e, true)
		return out
	}
	agg.addListener(&readyForwarder{id: fid.NewFrameID(), name: name, target: out})
	return out
}

// readyForwarder relays the aggregated readiness combinator's outcome
// onto the combinator's own public Ready() event.
type readyForwarder struct {
	id     fid.ID
	name   string
	target *Event
}

func (f *readyForwarder) listenerID() fid.ID  { return f.id }
func (f *readyForwarder) Name() (name string) { return f.name }

func (f *readyForwarder) process(sender Awaitable, value any, err error, counter *processCounter, blocking bool) {
	f.target.fireLocal(value, err, blocking)
	if counter != nil {
		counter.dec()
	}
}

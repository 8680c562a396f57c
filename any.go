/*
© 2026-present Silktree Authors
ISC License
*/

package frame

import (
	"sync"

	"github.com/silktree/frame/fid"
)

// AnyResult is the outcome [AnyCombinator] produces: which member won
// the race and the value it produced (spec.md §6.3 "any: first member
// to complete wins").
type AnyResult struct {
	Index int
	Value any
}

// AnyCombinator is the first-past-the-post combinator of spec.md §6.3.
// The first member to produce an outcome (success or error) decides the
// combinator's own outcome; every other member's listener registration
// on this combinator is detached at that point, though members
// themselves are never forcibly removed (spec.md §9 "any does not cancel
// its losers, it only stops listening to them").
type AnyCombinator struct {
	base

	mu        sync.Mutex
	children  []Awaitable
	listeners []*anyChildListener

	readyOnce sync.Once
	ready     *Event
}

var _ Awaitable = (*AnyCombinator)(nil)

// Any constructs a combinator racing the given Awaitables.
func Any(awaitables ...Awaitable) *AnyCombinator {
	var c = &AnyCombinator{base: newBase("any"), children: awaitables}
	for i, a := range awaitables {
		if a.Removed() {
			var v, e = a.Outcome()
			c.decide(i, v, e)
			break
		}
	}
	if c.Removed() {
		return c
	}
	c.listeners = make([]*anyChildListener, len(awaitables))
	for i, a := range awaitables {
		var l = &anyChildListener{id: fid.NewFrameID(), name: a.Name(), owner: c, idx: i}
		c.listeners[i] = l
		if !a.Removed() {
			a.addListener(l)
		}
	}
	return c
}

// Ready returns the event that fires once any one member's own Ready
// has fired (spec.md §9 Open Question 3: "any is ready when any one
// child is ready"). Members with no distinct ready moment of their own
// are treated as already ready, so Ready fires immediately unless every
// member is a [Frame] that has not yet started.
func (c *AnyCombinator) Ready() *Event {
	c.readyOnce.Do(func() {
		c.ready = aggregateReady(c.name+".ready", c.children, false)
	})
	return c.ready
}

func (c *AnyCombinator) decide(idx int, value any, err error) {
	if !c.complete(AnyResult{Index: idx, Value: value}, err) {
		return
	}
	c.mu.Lock()
	var children = c.children
	var listeners = c.listeners
	c.mu.Unlock()
	for i, child := range children {
		if i == idx || listeners == nil {
			continue
		}
		child.removeListener(listeners[i].id)
	}
	var out = c.drainListeners()
	var value2, err2 = c.Outcome()
	wakeListeners(loopOrCurrent(nil), c, out, value2, err2, true, nil)
}

func (c *AnyCombinator) Remove() *Event                     { return genericRemove(&c.base, nil, c) }
func (c *AnyCombinator) And(other Awaitable) *AllCombinator { return All(c, other) }
func (c *AnyCombinator) Or(other Awaitable) *AnyCombinator  { return Any(c, other) }

type anyChildListener struct {
	id    fid.ID
	name  string
	owner *AnyCombinator
	idx   int
}

func (l *anyChildListener) listenerID() fid.ID  { return l.id }
func (l *anyChildListener) Name() (name string) { return l.name }

func (l *anyChildListener) process(sender Awaitable, value any, err error, counter *processCounter, blocking bool) {
	l.owner.decide(l.idx, value, err)
	if counter != nil {
		counter.dec()
	}
}

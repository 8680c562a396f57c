/*
© 2026-present Silktree Authors
ISC License
*/

package frame

import (
	"sync"

	"github.com/silktree/frame/fid"
)

// AllCombinator is the ordered-aggregation combinator of spec.md §6.3
// ("all: wait for every member, preserving input order"). It completes
// once every member Awaitable has produced an outcome. Per the Open
// Question resolution recorded in DESIGN.md, a member's error does not
// short-circuit the others: every member runs to completion and its
// error (if any) is reported alongside its value through Errs, while
// the combinator's own Outcome always succeeds.
type AllCombinator struct {
	base

	mu      sync.Mutex
	pending int
	results []any
	errs    []error
	members []Awaitable

	readyOnce sync.Once
	ready     *Event
}

var _ Awaitable = (*AllCombinator)(nil)

// All constructs a combinator over the given Awaitables, preserving
// their input order in Results/Errs regardless of completion order
// (spec.md §6.3 "preserving input order").
func All(awaitables ...Awaitable) *AllCombinator {
	var c = &AllCombinator{base: newBase("all"), members: awaitables}
	var n = len(awaitables)
	c.results = make([]any, n)
	c.errs = make([]error, n)
	c.pending = n
	if n == 0 {
		c.complete(c.results, nil)
		return c
	}
	for i, a := range awaitables {
		if a.Removed() {
			var v, e = a.Outcome()
			c.record(i, v, e)
			continue
		}
		a.addListener(&allChildListener{id: fid.NewFrameID(), name: a.Name(), owner: c, idx: i})
	}
	return c
}

// Ready returns the event that fires once every member's own Ready has
// fired (spec.md §9 Open Question 3: "all is ready when every child is
// ready"). Members with no distinct ready moment of their own are
// treated as already ready.
func (c *AllCombinator) Ready() *Event {
	c.readyOnce.Do(func() {
		c.ready = aggregateReady(c.name+".ready", c.members, true)
	})
	return c.ready
}

// Results returns the per-member values in input order. Only meaningful
// once Removed is true.
func (c *AllCombinator) Results() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]any(nil), c.results...)
}

// Errs returns the per-member errors in input order, nil where a member
// succeeded. Only meaningful once Removed is true.
func (c *AllCombinator) Errs() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]error(nil), c.errs...)
}

func (c *AllCombinator) record(idx int, value any, err error) {
	c.mu.Lock()
	c.results[idx] = value
	c.errs[idx] = err
	c.pending--
	var done = c.pending <= 0
	c.mu.Unlock()
	if done {
		c.finish()
	}
}

func (c *AllCombinator) finish() {
	if !c.complete(c.results, nil) {
		return
	}
	var listeners = c.drainListeners()
	wakeListeners(loopOrCurrent(nil), c, listeners, c.results, nil, true, nil)
}

func (c *AllCombinator) Remove() *Event                     { return genericRemove(&c.base, nil, c) }
func (c *AllCombinator) And(other Awaitable) *AllCombinator { return All(c, other) }
func (c *AllCombinator) Or(other Awaitable) *AnyCombinator  { return Any(c, other) }

// allChildListener tracks a single member's slot in the results/errs
// vectors (spec.md §9 Open Question 3: combinators must themselves be
// awaitable and re-combinable, hence the plain Listener wrapper rather
// than requiring members to know about AllCombinator).
type allChildListener struct {
	id    fid.ID
	name  string
	owner *AllCombinator
	idx   int
}

func (l *allChildListener) listenerID() fid.ID  { return l.id }
func (l *allChildListener) Name() (name string) { return l.name }

func (l *allChildListener) process(sender Awaitable, value any, err error, counter *processCounter, blocking bool) {
	l.owner.record(l.idx, value, err)
	if counter != nil {
		counter.dec()
	}
}

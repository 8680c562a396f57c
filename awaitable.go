/*
© 2026-present Silktree Authors
ISC License
*/

// Package frame implements a hierarchical, structured-concurrency
// scheduler: Frames are cooperatively-suspending tasks arranged in a
// parent/child tree; Events are multicast awaitable value producers;
// All/Any combine arbitrary Awaitables; a pluggable EventLoop drives one
// or more worker goroutines.
//   - grounded on github.com/haraldrudell/parl's Awaitable/closable-chan
//     family (awaitable.go, closable-chan.go) for the channel-based
//     semaphore idiom, and on github.com/haraldrudell/parl/g0's
//     hierarchical GoGroup/SubGo/SubGroup ownership model for the
//     parent/child cancellation cascade
package frame

import (
	"sync"

	"github.com/silktree/frame/fid"
)

// Named is implemented by anything carrying a stable display name
//   - re-exported from fid so callers composing [fid.ByName] over
//     Awaitables don't need to import fid directly
type Named = fid.Named

// Listener is anything that can be suspended on an [Awaitable]: a Frame
// or a combinator acting as a frame (spec.md §3 "listeners: set of
// Frames (or combinators acting as frames)")
type Listener interface {
	// listenerID returns the listener's identity, used as the map key
	// in an Awaitable's listener set
	listenerID() fid.ID
	// process delivers sender's outcome to this listener. When counter
	// is non-nil, process must arrange for counter.dec() to be called
	// exactly once, synchronously or after asynchronous dispatch
	// (spec.md §9 "Process counter").
	process(sender Awaitable, value any, err error, counter *processCounter, blocking bool)
}

// Awaitable is the base contract of spec.md §3: anything a Frame's body
// can suspend upon
type Awaitable interface {
	Named
	// Removed reports whether this Awaitable has produced its final
	// outcome and detached its listeners. Monotonic: once true, always
	// true.
	Removed() bool
	// Outcome returns the value or error produced on completion.
	// Meaningless while Removed is false.
	Outcome() (value any, err error)
	// Remove requests removal, returning an Event that fires with true
	// when removal actually happens here, false when it was already
	// done or (for Frames) vetoed by a free handler.
	Remove() *Event
	// And is sugar for All(a, other) (spec.md §6.3).
	And(other Awaitable) *AllCombinator
	// Or is sugar for Any(a, other) (spec.md §6.3).
	Or(other Awaitable) *AnyCombinator

	addListener(l Listener)
	removeListener(id fid.ID)
	parentFrame() *Frame
	clearParent()
}

// base implements the shared bookkeeping every Awaitable needs: identity,
// name, removal state, result/error, and a non-owning listener set
// (spec.md §3 "listeners ... non-owning"; §9 "Cyclic references": the
// listener set must never own its members).
type base struct {
	selfID fid.ID
	name   string

	mu        sync.Mutex
	removed   bool
	value     any
	err       error
	listeners map[fid.ID]Listener
	parent    *Frame
}

func newBase(name string) base {
	return base{selfID: fid.NewFrameID(), name: name, listeners: map[fid.ID]Listener{}}
}

func (b *base) Name() (name string)     { return b.name }
func (b *base) listenerID() (id fid.ID) { return b.selfID }

func (b *base) Removed() (removed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.removed
}

func (b *base) Outcome() (value any, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value, b.err
}

func (b *base) addListener(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.removed {
		return
	}
	b.listeners[l.listenerID()] = l
}

func (b *base) removeListener(id fid.ID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.listeners, id)
}

func (b *base) parentFrame() (f *Frame) { return b.parent }
func (b *base) clearParent()            { b.parent = nil }

// snapshotListeners copies the listener set for delivery iteration,
// matching the teacher's "snapshot-then-iterate" strategy for collections
// that may mutate while being drained (spec.md §5 "Shared-resource
// policy")
func (b *base) snapshotListeners() (listeners []Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	listeners = make([]Listener, 0, len(b.listeners))
	for _, l := range b.listeners {
		listeners = append(listeners, l)
	}
	sortListenersByName(listeners)
	return
}

// drainListeners copies the listener set for delivery iteration and
// atomically empties it, for Awaitables (Event, the combinators) whose
// removal/fire protocol wants a one-shot wake that leaves no stale
// registrations behind (spec.md §4.2 step 4).
func (b *base) drainListeners() (listeners []Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	listeners = make([]Listener, 0, len(b.listeners))
	for _, l := range b.listeners {
		listeners = append(listeners, l)
	}
	b.listeners = map[fid.ID]Listener{}
	sortListenersByName(listeners)
	return
}

// namedListener is implemented by Listener values that carry a stable
// display name — every concrete Listener in this package does. It backs
// the "ordering by name" Awaitable surface of spec.md §3: since insertion
// order into the listener map is explicitly irrelevant, wake order is
// instead made deterministic by collating on this name rather than left
// to Go's randomized map iteration.
type namedListener interface {
	Name() (name string)
}

// listenerSlot pairs a Listener with the name sortListenersByName sorts
// on, so [fid.ByName] (which only knows about [fid.Named] values) can
// collate plain Listeners.
type listenerSlot struct {
	name string
	l    Listener
}

func (s listenerSlot) Name() (name string) { return s.name }

// sortListenersByName reorders listeners in place by collated display
// name (spec.md §3 "ordering by name").
func sortListenersByName(listeners []Listener) {
	if len(listeners) < 2 {
		return
	}
	var slots = make([]listenerSlot, len(listeners))
	for i, l := range listeners {
		var name string
		if nl, ok := l.(namedListener); ok {
			name = nl.Name()
		}
		slots[i] = listenerSlot{name: name, l: l}
	}
	fid.ByName(slots)
	for i, s := range slots {
		listeners[i] = s.l
	}
}

// complete marks the Awaitable removed and records its outcome exactly
// once; subsequent calls are no-ops reporting didComplete=false
// (spec.md §3 "removed: monotonic boolean")
func (b *base) complete(value any, err error) (didComplete bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.removed {
		return false
	}
	b.removed = true
	b.value, b.err = value, err
	return true
}

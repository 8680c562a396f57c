/*
© 2026-present Silktree Authors
ISC License
*/

package frame

import (
	"fmt"
	"sync"

	"github.com/silktree/frame/ferrors"
)

// Primitive is the class-scoped resource of spec.md §7 ("Primitive:
// lifetime bound to the nearest ancestor frame of a declared class").
// It is released automatically, LIFO alongside its owner frame's
// children, when that ancestor frame terminates — whether by natural
// completion or by [Frame.Remove].
//   - Go has no runtime class hierarchy to walk (the original performs
//     an isinstance ancestor search); the ancestor search here instead
//     matches [WithClass]'s nominal string tag, the simplification
//     recorded in DESIGN.md
type Primitive struct {
	mu        sync.Mutex
	name      string
	class     string
	owner     *Frame
	released  bool
	onRelease []func()
}

// NewPrimitive binds a new Primitive to the nearest ancestor of the
// calling frame (walking from [CurrentFrame] upward) tagged with class
// via [WithClass]. Returns an error if no such ancestor exists, or if
// called outside any running frame.
func NewPrimitive(class string, name string) (*Primitive, error) {
	var owner = CurrentFrame()
	for owner != nil && owner.classTag() != class {
		owner = owner.Parent()
	}
	if owner == nil {
		return nil, ferrors.InvalidOperation(fmt.Sprintf("no ancestor frame of class %q for primitive %q", class, name))
	}
	var p = &Primitive{name: name, class: class, owner: owner}
	owner.addPrimitive(p)
	return p, nil
}

// Name returns the primitive's display name.
func (p *Primitive) Name() (name string) { return p.name }

// Owner returns the ancestor frame this primitive's lifetime is bound
// to.
func (p *Primitive) Owner() *Frame { return p.owner }

// Released reports whether this primitive has been released, by
// [Primitive.Remove] or by its owner frame's teardown.
func (p *Primitive) Released() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.released
}

// OnRelease registers a cleanup callback run when the owner frame tears
// this primitive down; callbacks run in LIFO registration order, mirrored
// by [Frame.teardown]'s own LIFO primitive order.
func (p *Primitive) OnRelease(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		fn()
		return
	}
	p.onRelease = append(p.onRelease, fn)
}

// Remove detaches the primitive from its owner frame before the frame
// itself terminates (spec.md §6.5 "Primitive surface ... remove()
// detaches"). It runs OnRelease callbacks immediately, the same as the
// owner frame's own teardown would, and is safe to call more than once.
func (p *Primitive) Remove() {
	p.owner.detachPrimitive(p)
	p.release()
}

// release runs the OnRelease callbacks. Both [Primitive.Remove] and the
// owner frame's teardown (innermost-registered primitive first) call it;
// only the first call has effect.
func (p *Primitive) release() {
	p.mu.Lock()
	if p.released {
		p.mu.Unlock()
		return
	}
	p.released = true
	var callbacks = p.onRelease
	p.onRelease = nil
	p.mu.Unlock()
	for i := len(callbacks) - 1; i >= 0; i-- {
		callbacks[i]()
	}
}

/*
© 2026-present Silktree Authors
ISC License
*/

package frame

import (
	"sync"

	"github.com/silktree/frame/ferrors"
	"github.com/silktree/frame/fid"
)

// BodyFunc is a frame body: ordinary Go code that runs on its own
// goroutine and suspends by calling [Frame.Wait] (spec.md §2 "Frames ...
// cooperatively suspend"). Unlike the Python original's generator-based
// coroutines, a body here is just a function running on a dedicated
// goroutine; suspension is an ordinary blocking channel receive inside
// Wait, so the underlying worker pool is never tied up by a parked body
// (spec.md §4.1 "affinity pins a frame's body ... to a particular
// worker" governs callback dispatch, not body execution).
type BodyFunc func(f *Frame) (value any, err error)

// FreeEventArgs is passed to every registered [FreeHandler] when a frame
// is asked to remove itself before completing naturally (spec.md §7
// "cancellable free"). Setting Cancel vetoes the removal.
type FreeEventArgs struct {
	Cancel bool
}

// FreeHandler is a cleanup callback registered via [Frame.OnFree];
// handlers run in LIFO order, most-recently-registered first, matching
// the children/primitives teardown order (spec.md §7 "LIFO").
type FreeHandler func(args *FreeEventArgs)

// ExceptionHandler is a per-frame installable handler for the
// ancestor-walking exception chain of spec.md §3 ("exception_handler")
// and §7 ("each handler decides whether to swallow or re-raise"). It
// receives the error an owned frame (or the frame itself) completed
// with and returns whether it has been handled; returning false lets it
// continue rising to the next ancestor.
type ExceptionHandler func(err error) (handled bool)

// Frame is the hierarchical unit of cooperative suspension (spec.md §2,
// §4, §7). A Frame owns an ordered list of child Frames and Primitives;
// both are torn down LIFO when the Frame itself terminates, whether by
// natural body return or by a successful [Frame.Remove].
//   - grounded on github.com/haraldrudell/parl/g0's GoGroup
//     parent/child ownership and cascading Cancel (g0/go-group.go), and
//     on the teacher's awaitable.go closable-channel idiom for the
//     listener-wake half
type Frame struct {
	base
	affinity *fid.WorkerID
	class    string
	loop     EventLoop
	ready    *Event

	mu            sync.Mutex
	children      []*Frame
	primitives    []*Primitive
	freeHandlers  []FreeHandler
	errorHandlers []ExceptionHandler
}

var _ Awaitable = (*Frame)(nil)

type frameConfig struct {
	name     string
	class    string
	affinity *fid.WorkerID
}

// Option configures a Frame at construction time (spec.md §6.2 "frame
// factories accept name, affinity and owner-class options").
type Option func(*frameConfig)

// WithName sets the frame's display name, used in listener ordering
// ([fid.ByName]) and debug output.
func WithName(name string) Option { return func(c *frameConfig) { c.name = name } }

// WithClass tags the frame with a nominal owner class, matched by
// [Primitive] ancestor search (spec.md §7 "nearest ancestor frame of a
// declared class"). Go has no runtime subclass check to mirror the
// original's isinstance walk, so the tag is compared by string equality;
// callers that want type-safety should use a package-qualified constant.
func WithClass(class string) Option { return func(c *frameConfig) { c.class = class } }

// WithAffinity pins the frame's listener-dispatch callbacks to a
// specific worker (spec.md §4.1/§5 "affinity: optional worker
// identifier").
func WithAffinity(id fid.WorkerID) Option { return func(c *frameConfig) { c.affinity = &id } }

// Spawn creates and starts a new Frame as a child of the calling
// goroutine's current frame (or as a root frame if called from outside
// any frame body, e.g. from a loop's main factory). The body's own
// goroutine is started before Spawn returns, but the body may not have
// begun running yet; use [Frame.Ready] to await the point at which it
// has actually started.
//
// Spawn requires a running loop (spec.md §4.5 "Construction ... requires
// a running loop"): called with no [EventLoop] installed on the calling
// goroutine, it returns an [ferrors.ErrInvalidOperation] error instead of
// silently constructing an orphaned frame.
//
// Unless overridden by [WithAffinity], the new frame inherits its
// creator's worker affinity (spec.md §3 "thread_idx ... for Frame,
// defaults to the creator's worker"). Use [SpawnDetached] for a frame
// that never inherits affinity.
func Spawn(body BodyFunc, opts ...Option) (f *Frame, err error) {
	return spawn(body, opts, true)
}

// PFrame is the unpinned variant of Frame (spec.md §2 component table,
// §4.5 "PFrame: identical to Frame except affinity defaults to none").
// It shares every method of [Frame] through embedding; the only
// difference is how [SpawnDetached] picks its initial affinity.
type PFrame struct {
	*Frame
}

// SpawnDetached creates and starts a [PFrame]: in every respect identical
// to [Spawn], except the new frame's affinity defaults to none rather
// than inheriting the creator's worker, so its listener-dispatch
// callbacks may run on whichever worker the loop picks. An explicit
// [WithAffinity] option still pins it, exactly as with Spawn.
func SpawnDetached(body BodyFunc, opts ...Option) (p *PFrame, err error) {
	var f, spawnErr = spawn(body, opts, false)
	if spawnErr != nil {
		return nil, spawnErr
	}
	return &PFrame{Frame: f}, nil
}

func spawn(body BodyFunc, opts []Option, inheritAffinity bool) (f *Frame, err error) {
	var cfg frameConfig
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.name == "" {
		cfg.name = "frame"
	}
	var loop = CurrentLoop()
	if loop == nil {
		return nil, ferrors.InvalidOperation("frame.Spawn: no running loop on the calling goroutine")
	}
	var parent = CurrentFrame()
	if inheritAffinity && cfg.affinity == nil && parent != nil {
		cfg.affinity = parent.affinity
	}
	f = &Frame{
		base:     newBase(cfg.name),
		affinity: cfg.affinity,
		class:    cfg.class,
		loop:     loop,
		ready:    newEvent(cfg.name+".ready", true),
	}
	f.base.parent = parent
	if parent != nil {
		parent.addChild(f)
	}
	f.run(body)
	return f, nil
}

// run starts the body goroutine. The goroutine installs itself as the
// calling context's current frame/loop (spec.md §9 "Global state"),
// fires ready exactly once, then runs body to completion and tears the
// frame down.
func (f *Frame) run(body BodyFunc) {
	go func() {
		setCurrentFrame(f)
		setCurrentLoop(f.loop)
		f.ready.Send(nil)
		value, err := f.runBody(body)
		f.finish(value, err)
	}()
}

// runBody invokes body, converting any panic into a
// [ferrors.ErrInvalidOperation]-free, plain stack-carrying error instead
// of crashing the process — grounded on the teacher's
// `PanicToErr`/`Recover` idiom (`panic-to-err.go`, `recover.go`), applied
// here per-frame rather than per-goroutine-pool since each body owns its
// own goroutine.
func (f *Frame) runBody(body BodyFunc) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ferrors.Errorf("panic in frame %q: %v", f.name, r)
		}
	}()
	return body(f)
}

// Ready returns the single-shot Event that fires once this frame's body
// has begun executing (spec.md §9 "ready event fires exactly once per
// frame").
func (f *Frame) Ready() *Event { return f.ready }

// Parent returns the frame that spawned this one, or nil for a root
// frame.
func (f *Frame) Parent() *Frame { return f.parentFrame() }

// classTag returns the nominal owner-class this frame was constructed
// with, consulted by [Primitive]'s ancestor search.
func (f *Frame) classTag() string { return f.class }

// workerAffinity reports this frame's worker pin. A Frame is never itself
// registered as a Listener, so dispatch does not consult this method on a
// Frame; the waitListener that [Frame.Wait] registers carries a copy of
// this affinity so a suspended body is woken through its own worker.
// Combinator listeners carry no affinity.
func (f *Frame) workerAffinity() *fid.WorkerID { return f.affinity }

func (f *Frame) addChild(child *Frame) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.children = append(f.children, child)
}

func (f *Frame) detachChild(child *Frame) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.children {
		if c == child {
			f.children = append(f.children[:i], f.children[i+1:]...)
			return
		}
	}
}

func (f *Frame) addPrimitive(p *Primitive) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.primitives = append(f.primitives, p)
}

// detachPrimitive removes p from this frame's owned set without running
// its release callbacks, used by [Primitive.Remove] for voluntary early
// detachment (spec.md §6.5 "remove() detaches") so the owner frame's own
// teardown does not try to release it a second time.
func (f *Frame) detachPrimitive(p *Primitive) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, pr := range f.primitives {
		if pr == p {
			f.primitives = append(f.primitives[:i], f.primitives[i+1:]...)
			return
		}
	}
}

// OnError registers a per-frame exception handler, consulted
// nearest-ancestor-first whenever this frame's body completes with a
// non-nil error (spec.md §3 "exception_handler", §7 "ancestor-walking
// chain"). Handlers registered later on the same frame run first,
// matching [Frame.OnFree]'s LIFO order.
func (f *Frame) OnError(h ExceptionHandler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errorHandlers = append(f.errorHandlers, h)
}

// propagateError walks from f upward, nearest ancestor first, offering
// err to every registered [ExceptionHandler] until one swallows it
// (spec.md §7 "each handler decides whether to swallow or re-raise").
// If the walk exhausts the ancestor chain with no handler claiming err,
// the owning loop is stopped with err as its final outcome — "if no
// handler handles the error, the root event loop stores it and stops."
// parent is f's parent as captured before teardown detached f from it.
func (f *Frame) propagateError(err error, parent *Frame) {
	if err == nil {
		return
	}
	var chain = []*Frame{f}
	for cur := parent; cur != nil; cur = cur.Parent() {
		chain = append(chain, cur)
	}
	for _, cur := range chain {
		cur.mu.Lock()
		var handlers = append([]ExceptionHandler(nil), cur.errorHandlers...)
		cur.mu.Unlock()
		for i := len(handlers) - 1; i >= 0; i-- {
			if handlers[i](err) {
				return
			}
		}
	}
	if loop := loopOrCurrent(f.loop); loop != nil {
		loop.Stop(nil, err)
	}
}

// OnFree registers a cleanup callback invoked when this frame
// terminates, whether by natural body return or by a successful forced
// removal. Handlers registered later run first (spec.md §7 "LIFO").
func (f *Frame) OnFree(h FreeHandler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.freeHandlers = append(f.freeHandlers, h)
}

// Wait suspends the calling frame's body until a produces an outcome,
// returning its value/err (spec.md §3 "await: suspend the calling
// frame's body"). If a has already completed, Wait returns immediately
// without registering a listener.
func (f *Frame) Wait(a Awaitable) (value any, err error) {
	if a.Removed() {
		return a.Outcome()
	}
	var l = &waitListener{id: fid.NewFrameID(), name: f.name + ".wait", ch: make(chan wakeMsg, 1), worker: f.affinity}
	a.addListener(l)
	if a.Removed() {
		a.removeListener(l.id)
		return a.Outcome()
	}
	var msg = <-l.ch
	return msg.value, msg.err
}

// finish runs the natural-completion teardown path: no free handler can
// veto a body that has already returned. A non-nil err then walks the
// ancestor [ExceptionHandler] chain (spec.md §7).
func (f *Frame) finish(value any, err error) {
	var parent = f.Parent()
	f.teardown(value, err, false)
	f.propagateError(err, parent)
}

// Remove requests this frame's early termination (spec.md §7
// "cancellable free"). If any registered [FreeHandler] sets Cancel, the
// frame survives and the returned Event fires false; otherwise children
// and primitives are torn down LIFO, the frame completes with a nil
// outcome, and the returned Event fires true.
func (f *Frame) Remove() *Event {
	var result = newEvent(f.name+".remove.result", true)
	if f.Removed() {
		result.Send(false)
		return result
	}
	var ok = f.teardown(nil, nil, true)
	result.Send(ok)
	return result
}

func (f *Frame) teardown(value any, err error, forced bool) (ok bool) {
	if forced {
		var args = &FreeEventArgs{}
		f.mu.Lock()
		var handlers = append([]FreeHandler(nil), f.freeHandlers...)
		f.mu.Unlock()
		for i := len(handlers) - 1; i >= 0; i-- {
			handlers[i](args)
			if args.Cancel {
				return false
			}
		}
	}

	f.mu.Lock()
	var children = f.children
	f.children = nil
	var primitives = f.primitives
	f.primitives = nil
	f.mu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Remove()
	}
	for i := len(primitives) - 1; i >= 0; i-- {
		primitives[i].release()
	}

	if !f.complete(value, err) {
		return true
	}
	var listeners = f.drainListeners()
	wakeListeners(loopOrCurrent(f.loop), f, listeners, value, err, true, nil)
	if p := f.parentFrame(); p != nil {
		p.detachChild(f)
	}
	f.clearParent()
	return true
}

func (f *Frame) And(other Awaitable) *AllCombinator { return All(f, other) }
func (f *Frame) Or(other Awaitable) *AnyCombinator  { return Any(f, other) }

// waitListener is the internal Listener a [Frame.Wait] call registers on
// whatever Awaitable it is suspending on; process delivers the outcome
// through a buffered channel so the blocking receive in Wait cannot
// deadlock against a synchronous dispatch.
type waitListener struct {
	id     fid.ID
	name   string
	ch     chan wakeMsg
	worker *fid.WorkerID
}

type wakeMsg struct {
	value any
	err   error
}

func (w *waitListener) listenerID() fid.ID            { return w.id }
func (w *waitListener) workerAffinity() *fid.WorkerID { return w.worker }
func (w *waitListener) Name() (name string)           { return w.name }

func (w *waitListener) process(sender Awaitable, value any, err error, counter *processCounter, blocking bool) {
	w.ch <- wakeMsg{value: value, err: err}
	if counter != nil {
		counter.dec()
	}
}

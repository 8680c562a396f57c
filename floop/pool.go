/*
© 2026-present Silktree Authors
ISC License
*/

// Package floop provides the concrete, work-stealing [EventLoop]
// backend of spec.md §4.1 and §6.1: a pool of worker goroutines sharing
// one MPMC-style work queue, with per-worker inboxes for affinity-pinned
// callbacks.
//   - grounded on github.com/haraldrudell/parl/g0's GoGroup worker model
//     (g0/go-group.go) for the shared-queue-plus-idle-flag shape, and on
//     github.com/zoobzio/clockz (as used by zoobzio-pipz's Timeout
//     connector) for a pluggable, fake-clock-testable notion of time
//     instead of calling time.AfterFunc directly
package floop

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/silktree/frame"
	"github.com/silktree/frame/ferrors"
	"github.com/silktree/frame/fhost"
	"github.com/silktree/frame/fid"
	"github.com/silktree/frame/fruntime"
)

// job is one unit of dispatchable work: a callback plus an optional
// worker pin.
type job struct {
	callback func()
	affinity *fid.WorkerID
}

// Pool is a concrete [frame.EventLoop]: a fixed set of worker goroutines
// draining a shared queue, each also owning a small inbox for callbacks
// pinned to it by affinity (spec.md §5 "Affinity pins a frame's body ...
// to a particular worker").
type Pool struct {
	clock clockz.Clock
	debug bool

	mu             sync.Mutex
	workers        []*worker
	workerByWorker map[fid.WorkerID]*worker
	byGoroutine    map[string]*worker

	shared    chan job
	stopped   atomic.Bool
	done      chan struct{}
	result    any
	resultErr error
}

var _ frame.EventLoop = (*Pool)(nil)

// Option configures a Pool at construction time.
type Option func(*Pool)

// WithClock overrides the pool's time source, for deterministic tests
// (clockz.NewFakeClock()) instead of the default clockz.RealClock.
func WithClock(clock clockz.Clock) Option {
	return func(p *Pool) { p.clock = clock }
}

// WithDebugLog enables the pool's TTY-aware debug logger (see debug.go).
func WithDebugLog(enabled bool) Option {
	return func(p *Pool) { p.debug = enabled }
}

// New constructs a Pool. It does nothing observable until Run is called.
func New(opts ...Option) *Pool {
	var p = &Pool{
		clock:          clockz.RealClock,
		workerByWorker: map[fid.WorkerID]*worker{},
		byGoroutine:    map[string]*worker{},
		shared:         make(chan job, 256),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run implements [frame.EventLoop]: it sizes and starts the worker pool,
// runs mainFactory on a worker to obtain the root frame, and blocks until
// Stop is called (directly, or indirectly by the root frame completing
// -- see runMain). Refuses re-entry when a loop is already running on
// the calling goroutine (spec.md §4.1), whether that loop is this same
// Pool or a different one.
func (p *Pool) Run(mainFactory frame.Factory, numThreads int) (result any, err error) {
	if frame.CurrentLoop() != nil {
		return nil, ferrors.InvalidOperation("floop.Pool.Run: a loop is already running on the calling goroutine")
	}
	if numThreads <= 0 {
		numThreads = fhost.ProcessorCount()
	}
	if numThreads < 1 {
		numThreads = 1
	}
	p.done = make(chan struct{})
	p.debugf("starting pool: %d workers, host=%+v", numThreads, fhost.Describe())

	for i := 0; i < numThreads; i++ {
		p.spawnWorker()
	}

	p.Enqueue(0, func() { p.runMain(mainFactory) }, nil)

	<-p.done
	p.mu.Lock()
	result, err = p.result, p.resultErr
	p.mu.Unlock()
	return result, err
}

// runMain builds the root frame and arranges for the pool to stop once
// it terminates.
func (p *Pool) runMain(mainFactory frame.Factory) {
	var root, err = mainFactory()
	if err != nil {
		p.Stop(nil, err)
		return
	}
	var _, spawnErr = frame.Spawn(func(self *frame.Frame) (any, error) {
		var value, werr = self.Wait(root)
		p.Stop(value, werr)
		return nil, nil
	})
	if spawnErr != nil {
		p.Stop(nil, spawnErr)
	}
}

// Post implements [frame.EventLoop]: schedules callback after delay,
// callable only from a goroutine this pool already owns.
func (p *Pool) Post(delay time.Duration, callback func()) {
	var w = p.currentWorker()
	var aff *fid.WorkerID
	if w != nil {
		var id = w.id
		aff = &id
	}
	p.schedule(delay, callback, aff)
}

// Invoke implements [frame.EventLoop]: the thread-safe variant of Post,
// callable from any goroutine.
func (p *Pool) Invoke(delay time.Duration, callback func()) {
	p.schedule(delay, callback, nil)
}

// Enqueue implements [frame.EventLoop]'s unified dispatch entrypoint.
func (p *Pool) Enqueue(delay time.Duration, callback func(), affinity *fid.WorkerID) {
	p.schedule(delay, callback, affinity)
}

func (p *Pool) schedule(delay time.Duration, callback func(), affinity *fid.WorkerID) {
	if p.stopped.Load() {
		return
	}
	if delay <= 0 {
		p.dispatch(job{callback: callback, affinity: affinity})
		return
	}
	p.clock.AfterFunc(delay, func() { p.dispatch(job{callback: callback, affinity: affinity}) })
}

func (p *Pool) dispatch(j job) {
	if j.affinity == nil {
		select {
		case p.shared <- j:
		default:
			go func() { p.shared <- j }()
		}
		return
	}
	p.mu.Lock()
	var w = p.workerByWorker[*j.affinity]
	p.mu.Unlock()
	if w == nil {
		// pinned worker no longer exists: fall back to the shared queue
		// rather than drop the callback
		p.shared <- job{callback: j.callback}
		return
	}
	w.inbox <- j
}

// SpawnThread implements [frame.EventLoop] by adding a worker to the
// pool.
func (p *Pool) SpawnThread(target func()) (handle frame.WorkerHandle) {
	var w = p.spawnWorker()
	if target != nil {
		w.inbox <- job{callback: target}
	}
	return w
}

// JoinThread implements [frame.EventLoop]: signals the worker to exit
// and waits for it.
func (p *Pool) JoinThread(handle frame.WorkerHandle) {
	p.mu.Lock()
	var w = p.workerByWorker[handle.WorkerID()]
	p.mu.Unlock()
	if w == nil {
		return
	}
	close(w.quit)
	<-w.exited
}

// CurrentWorker implements [frame.EventLoop].
func (p *Pool) CurrentWorker() (id fid.WorkerID, ok bool) {
	var w = p.currentWorker()
	if w == nil {
		return id, false
	}
	return w.id, true
}

func (p *Pool) currentWorker() *worker {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.byGoroutine[fruntime.GoroutineID()]
}

// Stop implements [frame.EventLoop]: records the outcome and signals
// every worker to exit. Safe to call more than once; only the first
// call has effect.
func (p *Pool) Stop(result any, err error) {
	if !p.stopped.CompareAndSwap(false, true) {
		return
	}
	p.mu.Lock()
	p.result, p.resultErr = result, err
	var workers = p.workers
	p.mu.Unlock()
	var self = p.currentWorker()
	for _, w := range workers {
		close(w.quit)
	}
	for _, w := range workers {
		if w == self {
			// called from a callback on this worker: it exits once that
			// callback returns, so waiting for it here would never end
			continue
		}
		<-w.exited
	}
	close(p.done)
}

// Clear implements [frame.EventLoop]: drops pending shared-queue work.
func (p *Pool) Clear() {
	for {
		select {
		case <-p.shared:
		default:
			return
		}
	}
}

func (p *Pool) spawnWorker() *worker {
	var w = &worker{
		id:     fid.NewWorkerID(),
		pool:   p,
		inbox:  make(chan job, 16),
		quit:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	p.mu.Lock()
	p.workers = append(p.workers, w)
	p.workerByWorker[w.id] = w
	p.mu.Unlock()
	go w.loop()
	return w
}

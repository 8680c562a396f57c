/*
© 2026-present Silktree Authors
ISC License
*/

package frame

import (
	"time"

	"github.com/silktree/frame/fid"
)

// EventLoop is the pluggable scheduling service of spec.md §4.1 and §6.1.
//   - a concrete implementation is provided by package floop
//   - GUI-toolkit or OS-async-primitive backed implementations are
//     external collaborators (spec.md §1 Non-goals) that satisfy this
//     same interface
type EventLoop interface {
	// Run constructs the main frame inside the loop by calling
	// mainFactory, then runs until the main frame removes itself.
	// Refuses re-entry when a loop is already running on the calling
	// goroutine.
	//   - numThreads ≤ 0 sizes the pool from the host's processor count
	Run(mainFactory Factory, numThreads int) (result any, err error)

	// Post schedules callback after delay on this loop. Callable only
	// from a goroutine this loop already owns (the loop's own worker).
	//   - delay 0 means "as soon as the loop becomes idle"
	Post(delay time.Duration, callback func())

	// Invoke is the thread-safe variant of Post: callable from any
	// goroutine, the callback runs on the target loop's worker.
	Invoke(delay time.Duration, callback func())

	// Enqueue is the unified dispatch entrypoint spec.md §4.1 describes:
	// affinity nil dispatches to any idle worker (or the shared queue);
	// affinity set pins the callback to that worker, using Post when
	// already running on it and Invoke otherwise.
	Enqueue(delay time.Duration, callback func(), affinity *fid.WorkerID)

	// SpawnThread/JoinThread create and tear down workers; overridable
	// by alternative backends that manage OS threads differently.
	SpawnThread(target func()) (handle WorkerHandle)
	JoinThread(handle WorkerHandle)

	// CurrentWorker reports the worker driving the calling goroutine, if
	// the calling goroutine is one of this loop's workers.
	CurrentWorker() (id fid.WorkerID, ok bool)

	// Stop records the main frame's outcome and signals every worker to
	// exit; Run returns result, err once all workers have joined.
	Stop(result any, err error)

	// Clear drops any pending, not-yet-dispatched work.
	Clear()
}

// WorkerHandle is an opaque reference to a spawned worker, returned by
// [EventLoop.SpawnThread] and consumed by [EventLoop.JoinThread].
type WorkerHandle interface {
	WorkerID() fid.WorkerID
}

// Factory is the frame-factory surface of spec.md §6.2: a callable that,
// invoked inside a running loop, produces a new root Frame.
type Factory func() (f *Frame, err error)

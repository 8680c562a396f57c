/*
© 2026-present Silktree Authors
ISC License
*/

package frame

import (
	"sync"

	"github.com/silktree/frame/fruntime"
)

// Go has no native goroutine-local storage, so the two pieces of
// genuinely global state the design notes call out (spec.md §9 "Global
// state": "is any loop running on this thread" and "which frame/loop is
// current on this thread") are kept in a pair of maps keyed by
// [fruntime.GoroutineID], both guarded by a single mutex
//   - grounded on the teacher's thread-local-like bookkeeping for the
//     current-frame pointer (asyncframes' own Frame._current is a
//     genuine Python thread-local; github.com/haraldrudell/parl has no
//     direct analogue since GoGroup threads carry their parl.Go object
//     explicitly, but the same "current X per running thread" shape
//     appears in parl.IsThisDebug's per-process flag, generalized here
//     to be per-goroutine)
var currentState = struct {
	mu     sync.Mutex
	frames map[string]*Frame
	loops  map[string]EventLoop
}{
	frames: map[string]*Frame{},
	loops:  map[string]EventLoop{},
}

// setCurrentFrame installs f as the current frame for the calling
// goroutine, returning the previous value so it can be restored
func setCurrentFrame(f *Frame) (previous *Frame) {
	var id = fruntime.GoroutineID()
	currentState.mu.Lock()
	defer currentState.mu.Unlock()
	previous = currentState.frames[id]
	if f == nil {
		delete(currentState.frames, id)
	} else {
		currentState.frames[id] = f
	}
	return
}

// CurrentFrame returns the Frame whose body is executing on the calling
// goroutine, or nil outside any frame body
func CurrentFrame() (f *Frame) {
	var id = fruntime.GoroutineID()
	currentState.mu.Lock()
	defer currentState.mu.Unlock()
	return currentState.frames[id]
}

// setCurrentLoop installs loop as the current EventLoop for the calling
// goroutine
func setCurrentLoop(loop EventLoop) (previous EventLoop) {
	var id = fruntime.GoroutineID()
	currentState.mu.Lock()
	defer currentState.mu.Unlock()
	previous = currentState.loops[id]
	if loop == nil {
		delete(currentState.loops, id)
	} else {
		currentState.loops[id] = loop
	}
	return
}

// CurrentLoop returns the [EventLoop] the calling goroutine is running
// under, or nil if none
func CurrentLoop() (loop EventLoop) {
	var id = fruntime.GoroutineID()
	currentState.mu.Lock()
	defer currentState.mu.Unlock()
	return currentState.loops[id]
}

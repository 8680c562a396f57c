/*
© 2026-present Silktree Authors
ISC License
*/

package frame

// SetCurrentLoop installs loop as the current EventLoop for the calling
// goroutine. Concrete [EventLoop] backends (package floop, or any
// external GUI-toolkit-driven implementation) call this once per worker
// goroutine they own, so that [Spawn] and the timed-event helpers
// (Sleep, Hold, Animate) resolve the right loop without depending on the
// backend's internal types (spec.md §9 "Global state").
func SetCurrentLoop(loop EventLoop) (previous EventLoop) { return setCurrentLoop(loop) }

// SetCurrentFrame is the Frame-side counterpart of [SetCurrentLoop],
// exposed for backends that need to run non-Spawn bootstrap code (e.g. a
// loop's idle callback) under a specific frame context.
func SetCurrentFrame(f *Frame) (previous *Frame) { return setCurrentFrame(f) }

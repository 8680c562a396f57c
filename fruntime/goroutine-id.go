/*
© 2026-present Silktree Authors
ISC License
*/

package fruntime

import (
	"bytes"
	"runtime"
)

// goroutineIDPrefix is the fixed text at the start of a runtime.Stack
// dump's first line: "goroutine 123 [running]:"
var goroutineIDPrefix = []byte("goroutine ")

// GoroutineID returns a string uniquely identifying the calling goroutine
// for as long as it is alive
//   - grounded on github.com/haraldrudell/parl/goid.GoID, which parses the
//     same "goroutine N [running]:" line from a stack dump to obtain a
//     per-goroutine identifier; Go exposes no public API for this
func GoroutineID() (id string) {
	var buf [64]byte
	var n = runtime.Stack(buf[:], false)
	var b = buf[:n]
	if !bytes.HasPrefix(b, goroutineIDPrefix) {
		return ""
	}
	b = b[len(goroutineIDPrefix):]
	var i = bytes.IndexByte(b, ' ')
	if i < 0 {
		return ""
	}
	return string(b[:i])
}

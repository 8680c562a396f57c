/*
© 2026-present Silktree Authors
ISC License
*/

package floop

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// PrintfFunc is a printf-style sink, the same shape the teacher's
// logging surface standardizes on (parl.PrintfFunc). No Pool option or
// method accepts one: a Pool's debug output always goes to stderr
// through debugf.
type PrintfFunc func(format string, a ...any)

const debugColor = "\x1b[36m" // cyan
const resetColor = "\x1b[0m"

// debugf writes a debug line to stderr when the pool was built with
// WithDebugLog(true). Output is colorized only when stderr is an actual
// terminal (golang.org/x/term.IsTerminal), matching the teacher's
// practice of never emitting escape codes into redirected/piped output.
func (p *Pool) debugf(format string, a ...any) {
	if !p.debug {
		return
	}
	var msg = fmt.Sprintf(format, a...)
	if term.IsTerminal(int(os.Stderr.Fd())) {
		fmt.Fprintf(os.Stderr, "%sfloop: %s%s\n", debugColor, msg, resetColor)
		return
	}
	fmt.Fprintf(os.Stderr, "floop: %s\n", msg)
}

/*
© 2026-present Silktree Authors
ISC License
*/

// Package ferrors provides stack-trace-carrying error values used
// throughout the frame scheduler's structural-error and user-error
// propagation paths.
//   - grounded on github.com/haraldrudell/parl/perrors: New/Errorf/NewPF/
//     ErrorfPF/Short/Stack, trimmed from perrors' general-purpose
//     errorglue chain-of-associated-data machinery down to the single
//     stack-carrying wrapper this scheduler's structural errors need
package ferrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/silktree/frame/fruntime"
)

// stack frames to skip so the recorded location is the caller of
// New/Errorf/NewPF/ErrorfPF, not this file
const errNewFrames = 1

// stackError decorates an error with the single code location it was
// created at
type stackError struct {
	err error
	loc *fruntime.CodeLocation
}

// New is similar to [errors.New] but ensures the returned error carries a
// stack location
func New(s string) (err error) {
	if s == "" {
		s = "ferrors.New: empty message"
	}
	return &stackError{err: errors.New(s), loc: fruntime.NewCodeLocation(errNewFrames)}
}

// NewPF is similar to [New] but prepends "package.Func: " to the message
func NewPF(s string) (err error) {
	var loc = fruntime.NewCodeLocation(errNewFrames)
	var prefix = loc.PackFunc()
	if s == "" {
		s = prefix
	} else {
		s = prefix + ": " + s
	}
	return &stackError{err: errors.New(s), loc: loc}
}

// Errorf is similar to [fmt.Errorf] but ensures the returned error carries
// a stack location. %w is supported.
func Errorf(format string, a ...any) (err error) {
	var wrapped = fmt.Errorf(format, a...)
	if HasStack(wrapped) {
		return wrapped
	}
	return &stackError{err: wrapped, loc: fruntime.NewCodeLocation(errNewFrames)}
}

// ErrorfPF is similar to [Errorf] but prepends "package.Func " to format
func ErrorfPF(format string, a ...any) (err error) {
	var loc = fruntime.NewCodeLocation(errNewFrames)
	var wrapped = fmt.Errorf(loc.PackFunc()+"\x20"+format, a...)
	return &stackError{err: wrapped, loc: loc}
}

func (e *stackError) Error() (s string)   { return e.err.Error() }
func (e *stackError) Unwrap() (err error) { return e.err }

// HasStack returns whether err, or any error it wraps, is a stack-carrying
// ferrors error
func HasStack(err error) (hasStack bool) {
	var se *stackError
	return errors.As(err, &se)
}

// Location returns the code location associated with err, if any
func Location(err error) (loc *fruntime.CodeLocation, hasLocation bool) {
	var se *stackError
	if !errors.As(err, &se) {
		return
	}
	return se.loc, true
}

// Short returns a one-line "message at location" rendering of err,
// without a full stack trace
//   - zero-value err returns "OK"
func Short(err error) (s string) {
	if err == nil {
		return "OK"
	}
	var se *stackError
	if !errors.As(err, &se) {
		return err.Error()
	}
	var sb strings.Builder
	sb.WriteString(err.Error())
	if se.loc.IsSet() {
		sb.WriteString(" at ")
		sb.WriteString(se.loc.Short())
	}
	return sb.String()
}

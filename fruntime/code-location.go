/*
© 2026-present Silktree Authors
ISC License
*/

// Package fruntime captures source-code locations for diagnostics and
// panic/error reporting.
//   - grounded on github.com/haraldrudell/parl/pruntime: CodeLocation is the
//     same basic-types-only (string, int) shape as parl's, trimmed to the
//     accessors this module's error and frame diagnostics actually use
package fruntime

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
)

// stack frames skipped inside [NewCodeLocation] itself
const newCodeLocationStackFrames = 1

// CodeLocation is a single stack frame using only basic types
type CodeLocation struct {
	// File is the absolute path to the go source file
	File string
	// Line is the 1-based line number in File
	Line int
	// FuncName is the fully qualified package path, optional
	// receiver type name and function name
	//	- "github.com/silktree/frame.(*Frame).step"
	FuncName string
}

// NewCodeLocation returns data for a single stack frame
//   - stackFramesToSkip 0 is the immediate caller of NewCodeLocation
func NewCodeLocation(stackFramesToSkip int) (cl *CodeLocation) {
	if stackFramesToSkip < 0 {
		stackFramesToSkip = 0
	}
	var c CodeLocation
	var pc uintptr
	var ok bool
	if pc, c.File, c.Line, ok = runtime.Caller(newCodeLocationStackFrames + stackFramesToSkip); ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			c.FuncName = fn.Name()
		}
	}
	return &c
}

// Package returns the base package name, eg. "frame" for
// "github.com/silktree/frame.(*Frame).step"
func (cl *CodeLocation) Package() (pkg string) {
	var funcName = cl.FuncName
	if i := lastSlash(funcName); i >= 0 {
		funcName = funcName[i+1:]
	}
	if i := firstDot(funcName); i >= 0 {
		return funcName[:i]
	}
	return funcName
}

// Name returns the receiver and function name only,
// eg. "(*Frame).step"
func (cl *CodeLocation) Name() (name string) {
	var funcName = cl.FuncName
	if i := lastSlash(funcName); i >= 0 {
		funcName = funcName[i+1:]
	}
	if i := firstDot(funcName); i >= 0 {
		return funcName[i+1:]
	}
	return funcName
}

// PackFunc returns "package.Name" suitable for prefixing error messages
func (cl *CodeLocation) PackFunc() (packageDotFunction string) {
	packageDotFunction = cl.Name()
	if pack := cl.Package(); pack != "main" && pack != "" {
		packageDotFunction = pack + "." + packageDotFunction
	}
	return
}

// Short returns optional receiver type, function, base filename and line
// number, without the package name:
//
//	(*Frame).step()-frame.go:142
func (cl *CodeLocation) Short() (s string) {
	return fmt.Sprintf("%s()-%s:%d", cl.Name(), filepath.Base(cl.File), cl.Line)
}

// FuncLine returns the fully qualified function name and line number
func (cl *CodeLocation) FuncLine() (s string) {
	return cl.FuncName + ":" + strconv.Itoa(cl.Line)
}

// IsSet returns whether cl holds a captured location
func (cl *CodeLocation) IsSet() (isSet bool) {
	return cl != nil && (cl.File != "" || cl.FuncName != "")
}

func lastSlash(s string) (i int) {
	for i = len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return
		}
	}
	return -1
}

func firstDot(s string) (i int) {
	// skip a possible "(*Type)" receiver segment so the package/name split
	// happens on the dot separating package from receiver-or-function
	depth := 0
	for i = 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '.':
			if depth == 0 {
				return
			}
		}
	}
	return -1
}

/*
© 2026-present Silktree Authors
ISC License
*/

// Package fhost provides portable host/process diagnostics for the
// worker-pool's debug logging.
//   - grounded on github.com/haraldrudell/parl/parlp.ProcessStartTime,
//     which uses github.com/elastic/go-sysinfo the same way: best-effort
//     host introspection that must never be fatal to the caller
package fhost

import (
	"runtime"
	"time"

	gosysinfo "github.com/elastic/go-sysinfo"
	"github.com/elastic/go-sysinfo/types"
)

// Snapshot is a best-effort description of the host a worker pool is
// running on, used only for debug-log identification
//   - fields are zero-value when introspection failed; callers must not
//     treat a zero Snapshot as an error
type Snapshot struct {
	Hostname  string
	BootTime  time.Time
	StartTime time.Time
}

// Describe returns a best-effort [Snapshot] of the running host and
// process. Failures from the underlying go-sysinfo calls are swallowed:
// this information is advisory only and must never prevent a pool from
// starting.
func Describe() (snap Snapshot) {
	var host types.Host
	var err error
	if host, err = gosysinfo.Host(); err != nil {
		return
	}
	var info = host.Info()
	snap.Hostname = info.Hostname
	snap.BootTime = info.BootTime

	var process types.Process
	if process, err = gosysinfo.Self(); err != nil {
		return
	}
	var processInfo types.ProcessInfo
	if processInfo, err = process.Info(); err != nil {
		return
	}
	snap.StartTime = processInfo.StartTime
	return
}

// ProcessorCount returns the number of processors available to this
// process, used to size a worker pool when the caller requests
// "default" sizing (spec.md §4.1: "num_threads ≤ 0 ... uses the
// processor's affinity count")
//   - processor affinity is a scheduler/runtime concern with no
//     third-party equivalent in this module's dependency set:
//     go-sysinfo's host.Info() does not expose a CPU count, so the
//     standard library's GOMAXPROCS is the correct source of truth here
func ProcessorCount() (n int) {
	return runtime.GOMAXPROCS(0)
}

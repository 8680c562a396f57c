/*
© 2026-present Silktree Authors
ISC License
*/

// Package fid provides the identity and ordering primitives shared by the
// frame scheduler: monotonic sequence IDs for in-process objects
// (Frames, Events, combinators) and UUIDs for objects whose identity must
// be stable across a process's lifetime of workers.
//   - sequence generator grounded on github.com/haraldrudell/parl's
//     UniqueIDTypedUint64[T] generator (github.com/haraldrudell/parl/go-entity-id.go
//     uses such a generator to mint GoEntityID values)
//   - UUID identity grounded on github.com/haraldrudell/parl/ev.GoID, which
//     identifies a goroutine's Callee context with a github.com/google/uuid
//     value
package fid

import "sync/atomic"

// ID is a process-unique, monotonically increasing identifier suitable as
// a map key for Awaitables, Frames and combinators
type ID uint64

// Sequence is a generator of [ID] values, safe for concurrent use
//   - the zero value is ready to use and starts at 1, so the zero ID
//     value is reserved to mean "no id"
type Sequence struct{ n atomic.Uint64 }

// Next returns the next unique ID from the sequence
func (s *Sequence) Next() (id ID) {
	return ID(s.n.Add(1))
}

// frameIDs mints [ID] values for Frame and combinator construction
var frameIDs Sequence

// NewFrameID returns the next unique Frame/combinator identity
func NewFrameID() (id ID) { return frameIDs.Next() }

// eventIDs mints [ID] values for Event construction
var eventIDs Sequence

// NewEventID returns the next unique Event identity
func NewEventID() (id ID) { return eventIDs.Next() }

/*
© 2026-present Silktree Authors
ISC License
*/

package fid

import "github.com/google/uuid"

// WorkerID uniquely identifies a worker (goroutine driving an event loop)
// across the process, independent of Go's own goroutine IDs which are
// reused and not exposed by the runtime
//   - grounded on github.com/haraldrudell/parl/ev.GoID, a UUID-backed
//     goroutine identity
type WorkerID uuid.UUID

// NewWorkerID returns a fresh, globally-unique worker identity
func NewWorkerID() (id WorkerID) { return WorkerID(uuid.New()) }

// String returns the canonical UUID text form
func (id WorkerID) String() (s string) { return uuid.UUID(id).String() }

// IsValid returns whether id is a non-zero worker identity
func (id WorkerID) IsValid() (isValid bool) { return uuid.UUID(id) != uuid.Nil }

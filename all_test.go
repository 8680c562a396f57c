/*
© 2026-present Silktree Authors
ISC License
*/

package frame

import (
	"errors"
	"testing"
	"time"
)

func TestAllWaitsForEveryMemberInOrder(t *testing.T) {
	var a = NewEvent("a", true)
	var b = NewEvent("b", true)
	var c = All(a, b)

	go func() {
		time.Sleep(10 * time.Millisecond)
		b.Send("second")
		time.Sleep(10 * time.Millisecond)
		a.Send("first")
	}()

	waitUntilRemoved(t, c)
	var results = c.Results()
	if results[0] != "first" || results[1] != "second" {
		t.Fatalf("got %v, want input order preserved", results)
	}
}

func TestAllDoesNotShortCircuitOnError(t *testing.T) {
	var a = NewEvent("a", true)
	var b = NewEvent("b", true)
	var c = All(a, b)

	var errA = errors.New("a failed")
	a.fireLocal(nil, errA, true)
	time.Sleep(5 * time.Millisecond)
	if c.Removed() {
		t.Fatal("all() completed before every member finished")
	}
	b.Send("ok")

	waitUntilRemoved(t, c)
	if c.Errs()[0] != errA {
		t.Fatalf("got %v, want %v", c.Errs()[0], errA)
	}
	if c.Results()[1] != "ok" {
		t.Fatalf("got %v, want ok", c.Results()[1])
	}
	if _, err := nilOutcome(c); err != nil {
		t.Fatalf("AllCombinator itself should never fail, got %v", err)
	}
}

func nilOutcome(a Awaitable) (any, error) { return a.Outcome() }

func TestAllOfEmptyCompletesImmediately(t *testing.T) {
	var c = All()
	if !c.Removed() {
		t.Fatal("All() with no members should complete immediately")
	}
}

/*
© 2026-present Silktree Authors
ISC License
*/

package frame

import (
	"testing"
)

func TestAnyFirstPastThePostWins(t *testing.T) {
	var a = NewEvent("a", true)
	var b = NewEvent("b", true)
	var c = Any(a, b)

	b.Send("winner")

	waitUntilRemoved(t, c)
	v, err := c.Outcome()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var result = v.(AnyResult)
	if result.Index != 1 || result.Value != "winner" {
		t.Fatalf("got %+v, want index=1 value=winner", result)
	}

	// the loser firing afterward must not panic or change the outcome
	a.Send("loser")
	v2, _ := c.Outcome()
	if v2.(AnyResult).Value != "winner" {
		t.Fatal("outcome changed after the race was already decided")
	}
}

func TestAnyOfAlreadyRemovedMemberDecidesImmediately(t *testing.T) {
	var done = NewEvent("done", true)
	done.Send("instant")
	var pending = NewEvent("pending", true)

	var c = Any(done, pending)
	waitUntilRemoved(t, c)
	v, _ := c.Outcome()
	if v.(AnyResult).Value != "instant" {
		t.Fatalf("got %+v, want an immediate decision on the already-removed member", v)
	}
}

/*
© 2026-present Silktree Authors
ISC License
*/

package frame

import (
	"testing"
	"time"

	"github.com/silktree/frame/fid"
)

func TestEventSendWakesListener(t *testing.T) {
	var e = NewEvent("test", true)
	var ch = make(chan wakeMsg, 1)
	e.addListener(&waitListener{id: 1, ch: ch})
	e.Send(42)
	select {
	case msg := <-ch:
		if msg.value != 42 {
			t.Fatalf("got %v, want 42", msg.value)
		}
	case <-time.After(time.Second):
		t.Fatal("listener was never woken")
	}
	if !e.Removed() {
		t.Fatal("single-shot event should be removed after Send")
	}
}

func TestMultiShotEventFiresRepeatedly(t *testing.T) {
	var e = NewEvent("repeat", false)
	for i := 0; i < 3; i++ {
		var ch = make(chan wakeMsg, 1)
		e.addListener(&waitListener{id: fid.ID(1_000_000 + i), ch: ch})
		e.Send(i)
		select {
		case msg := <-ch:
			if msg.value != i {
				t.Fatalf("round %d: got %v", i, msg.value)
			}
		case <-time.After(time.Second):
			t.Fatalf("round %d: listener was never woken", i)
		}
		if e.Removed() {
			t.Fatalf("round %d: multi-shot event should never be Removed", i)
		}
	}
}

func TestEventRemoveIsIdempotent(t *testing.T) {
	var e = NewEvent("once", true)
	var first = e.Remove()
	var second = e.Remove()
	waitImmediate(t, first, true)
	waitImmediate(t, second, false)
}

func waitImmediate(t *testing.T, e *Event, want bool) {
	t.Helper()
	for i := 0; i < 1000 && !e.Removed(); i++ {
		time.Sleep(time.Millisecond)
	}
	v, _ := e.Outcome()
	if v != want {
		t.Fatalf("got %v, want %v", v, want)
	}
}

/*
© 2026-present Silktree Authors
ISC License
*/

package frame

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestPrimitiveBindsToNearestAncestorOfClass(t *testing.T) {
	withLoop(t, func() {
		var released = make(chan struct{}, 1)

		mustSpawn(t, func(self *Frame) (any, error) {
			var leaf = mustSpawn(t, func(inner *Frame) (any, error) {
				var p, err = NewPrimitive("resource", "conn")
				if err != nil {
					t.Errorf("unexpected error: %v", err)
					return nil, err
				}
				if p.Owner() != self {
					t.Errorf("primitive bound to %v, want the resource-tagged ancestor", p.Owner().Name())
				}
				p.OnRelease(func() { released <- struct{}{} })
				return nil, nil
			}, WithName("leaf"))
			waitUntilRemoved(t, leaf)
			return nil, nil
		}, WithName("owner"), WithClass("resource"))

		select {
		case <-released:
		case <-time.After(time.Second):
			t.Fatal("primitive was never released")
		}
	})
}

func TestPrimitiveWithoutAncestorClassErrors(t *testing.T) {
	withLoop(t, func() {
		var errCh = make(chan error, 1)
		mustSpawn(t, func(*Frame) (any, error) {
			_, err := NewPrimitive("nonexistent", "orphan")
			errCh <- err
			return nil, nil
		})
		select {
		case err := <-errCh:
			if err == nil {
				t.Fatal("expected an error when no ancestor of the declared class exists")
			}
		case <-time.After(time.Second):
			t.Fatal("body never ran")
		}
	})
}

func TestPrimitiveRemoveDetachesBeforeOwnerTeardown(t *testing.T) {
	withLoop(t, func() {
		var releaseCount int32
		mustSpawn(t, func(self *Frame) (any, error) {
			var p, err = NewPrimitive("resource", "conn")
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return nil, err
			}
			p.OnRelease(func() { atomic.AddInt32(&releaseCount, 1) })
			p.Remove()
			if !p.Released() {
				t.Error("Remove should mark the primitive released immediately")
			}
			return nil, nil
		}, WithName("owner"), WithClass("resource"))

		time.Sleep(30 * time.Millisecond)
		if n := atomic.LoadInt32(&releaseCount); n != 1 {
			t.Fatalf("release ran %d times, want exactly 1 (no double-release at owner teardown)", n)
		}
	})
}

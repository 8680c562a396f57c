/*
© 2026-present Silktree Authors
ISC License
*/

package frame

import (
	"testing"
	"time"
)

func TestSleepDurationApprox(t *testing.T) {
	withLoop(t, func() {
		var done = make(chan time.Duration, 1)
		var start time.Time
		mustSpawn(t, func(*Frame) (any, error) {
			start = time.Now()
			err := Sleep(0.05)
			done <- time.Since(start)
			return nil, err
		})
		select {
		case elapsed := <-done:
			if elapsed < 40*time.Millisecond {
				t.Fatalf("slept only %v, want >= ~50ms", elapsed)
			}
		case <-time.After(time.Second):
			t.Fatal("sleep never returned")
		}
	})
}

func TestSleepRejectsNegativeDuration(t *testing.T) {
	withLoop(t, func() {
		var errCh = make(chan error, 1)
		mustSpawn(t, func(*Frame) (any, error) {
			errCh <- Sleep(-1)
			return nil, nil
		})
		select {
		case err := <-errCh:
			if err == nil {
				t.Fatal("expected an error for a negative sleep duration")
			}
		case <-time.After(time.Second):
			t.Fatal("body never ran")
		}
	})
}

func TestHoldReleasesOnFrameRemove(t *testing.T) {
	withLoop(t, func() {
		var started = make(chan struct{})
		var finished = make(chan error, 1)
		var f = mustSpawn(t, func(*Frame) (any, error) {
			close(started)
			var err = Hold()
			finished <- err
			return nil, err
		})
		<-started
		time.Sleep(10 * time.Millisecond)
		f.Remove()
		select {
		case <-finished:
		case <-time.After(time.Second):
			t.Fatal("hold never released after Remove")
		}
	})
}

func TestAnimateAlwaysReportsFinalProgress(t *testing.T) {
	withLoop(t, func() {
		var progresses []float64
		mustSpawn(t, func(*Frame) (any, error) {
			return nil, Animate(0.02, 5*time.Millisecond, func(p float64) {
				progresses = append(progresses, p)
			})
		})
		time.Sleep(200 * time.Millisecond)
		if len(progresses) == 0 {
			t.Fatal("animate never called back")
		}
		if progresses[len(progresses)-1] != 1 {
			t.Fatalf("final progress was %v, want 1", progresses[len(progresses)-1])
		}
	})
}

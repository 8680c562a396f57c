/*
© 2026-present Silktree Authors
ISC License
*/

package frame

import (
	"time"

	"github.com/silktree/frame/ferrors"
)

// Sleep suspends the calling frame's body for seconds, scheduled through
// the current loop's delay mechanism (spec.md §6.2 "sleep: suspend for a
// duration"). Called outside a running frame, it falls back to a plain
// blocking time.Sleep.
func Sleep(seconds float64) error {
	if seconds < 0 {
		return ferrors.ValueError("sleep duration must be non-negative")
	}
	var delay = time.Duration(seconds * float64(time.Second))
	var f = CurrentFrame()
	if f == nil {
		time.Sleep(delay)
		return nil
	}
	var e = newEvent("sleep", true)
	e.Post(nil, delay)
	_, err := f.Wait(e)
	return err
}

// Hold suspends the calling frame's body indefinitely, until the frame
// itself is asked to terminate (spec.md §6.2 "hold: suspend until
// removed"). A frame body typically calls Hold as its last statement to
// stay alive until an external [Frame.Remove] tears it down.
func Hold() error {
	var f = CurrentFrame()
	if f == nil {
		return ferrors.InvalidOperation("hold called outside a running frame")
	}
	var e = newEvent("hold", true)
	f.OnFree(func(args *FreeEventArgs) { e.Send(nil) })
	_, err := f.Wait(e)
	return err
}

// Animate repeatedly suspends the calling frame's body in interval-sized
// steps over the given duration, invoking callback with progress in
// [0,1] after each step. The final call is always callback(1.0), even if
// rounding left a shorter final step (spec.md §6.2 "animate ... the
// final callback always reports completion").
func Animate(seconds float64, interval time.Duration, callback func(progress float64)) error {
	if seconds < 0 {
		return ferrors.ValueError("animate duration must be non-negative")
	}
	if seconds == 0 || interval <= 0 {
		callback(1.0)
		return nil
	}
	var total = time.Duration(seconds * float64(time.Second))
	var elapsed time.Duration
	for elapsed < total {
		var step = interval
		if elapsed+step > total {
			step = total - elapsed
		}
		if err := Sleep(step.Seconds()); err != nil {
			return err
		}
		elapsed += step
		var progress = float64(elapsed) / float64(total)
		if progress > 1 {
			progress = 1
		}
		callback(progress)
	}
	return nil
}

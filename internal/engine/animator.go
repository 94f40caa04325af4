package engine

import "time"

// Animator drives the appearance and disappearance transitions. Animate
// schedules done after roughly d and returns a cancel func that prevents
// a not-yet-delivered done from firing. Implementations must deliver
// done on the same event loop the engine runs on.
//
// A nil Animator (or a zero duration) completes transitions
// synchronously; the engine never treats a missing animation layer as an
// error.
type Animator interface {
	Animate(d time.Duration, done func()) (cancel func())
}

// TimerAnimator is an Animator backed by time.AfterFunc. It is only
// safe for hosts whose event delivery tolerates a timer goroutine, such
// as the CLI; GUI hosts supply their own main-loop-based Animator.
type TimerAnimator struct{}

// Animate schedules done after d.
func (TimerAnimator) Animate(d time.Duration, done func()) (cancel func()) {
	t := time.AfterFunc(d, done)
	return func() { t.Stop() }
}

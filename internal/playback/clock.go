package playback

import "time"

// Clock schedules deferred callbacks. Tests substitute a manual
// implementation so timer chains run deterministically.
type Clock interface {
	AfterFunc(d time.Duration, f func())
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// SystemClock returns the wall-clock backed Clock.
func SystemClock() Clock { return realClock{} }

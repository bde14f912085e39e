// Package clock abstracts the wall clock so time-sensitive code can be
// tested without real sleeps.
package clock

import "time"

// Clock provides the current time and the ability to wait.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// RealClock is the system clock.
type RealClock struct{}

// New creates the system clock.
func New() Clock {
	return RealClock{}
}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Sleep blocks for the given duration.
func (RealClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

package testutil

import (
	"time"

	"owqueue/pkg/clock"
)

// MockClock is a controllable clock for the tests.
// Sleeps are recorded and advance the current time instead of blocking.
type MockClock struct {
	CurrentTime time.Time
	Slept       []time.Duration
}

// Ensure MockClock implements Clock.
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time.
func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

// Sleep records the requested duration and moves the clock forward.
func (c *MockClock) Sleep(d time.Duration) {
	c.Slept = append(c.Slept, d)
	c.CurrentTime = c.CurrentTime.Add(d)
}

// TotalSlept returns the sum of every recorded sleep.
func (c *MockClock) TotalSlept() time.Duration {
	var total time.Duration
	for _, d := range c.Slept {
		total += d
	}
	return total
}

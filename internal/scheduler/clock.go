// Package scheduler decides when field-model retraining runs.
package scheduler

import "time"

// Clock abstracts wall-clock time so tests can simulate elapsed
// intervals without real timers.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// FakeClock is a manually advanced clock for tests.
type FakeClock struct {
	Current time.Time
}

// Now implements Clock.
func (c *FakeClock) Now() time.Time { return c.Current }

// Advance moves the fake clock forward.
func (c *FakeClock) Advance(d time.Duration) { c.Current = c.Current.Add(d) }

package game

import "time"

// Clock schedules fixed-interval ticks against an externally supplied time.
// It never reads the wall clock itself so callers can drive it deterministically.
type Clock struct {
	interval time.Duration
	next     time.Time
}

// NewClock creates a clock whose first tick is due one interval after now
func NewClock(interval time.Duration, now time.Time) *Clock {
	if interval <= 0 {
		interval = time.Second
	}
	return &Clock{interval: interval, next: now.Add(interval)}
}

// Interval returns the tick period
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// Due reports whether a tick is due at now and, if so, schedules the next one.
// Call it in a loop to drain ticks that queued up while the caller was away.
func (c *Clock) Due(now time.Time) bool {
	if now.Before(c.next) {
		return false
	}
	c.next = c.next.Add(c.interval)
	return true
}

// Remaining returns the time until the next tick, never negative
func (c *Clock) Remaining(now time.Time) time.Duration {
	d := c.next.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Reset restarts the schedule from now
func (c *Clock) Reset(now time.Time) {
	c.next = now.Add(c.interval)
}

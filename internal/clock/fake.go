package clock

import "time"

// FakeClock pins "now" for tests so day, week and month windows derived from
// the reporting clock stay on a known calendar date. All times are normalized
// to UTC, matching the system clock.
type FakeClock struct {
	now time.Time
}

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t.UTC()}
}

func (c *FakeClock) Now() time.Time {
	return c.now
}

// Advance moves the pinned time forward, e.g. across a midnight boundary.
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Set repins the clock to an absolute instant.
func (c *FakeClock) Set(t time.Time) {
	c.now = t.UTC()
}

package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeClockNormalizesToUTC(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	c := NewFakeClock(time.Date(2025, 6, 18, 22, 0, 0, 0, est))

	assert.Equal(t, time.UTC, c.Now().Location())
	assert.Equal(t, 19, c.Now().Day(), "03:00 UTC next day")
}

func TestFakeClockAdvanceAndSet(t *testing.T) {
	c := NewFakeClock(time.Date(2025, 6, 18, 23, 30, 0, 0, time.UTC))

	c.Advance(time.Hour)
	assert.Equal(t, 19, c.Now().Day(), "advance crosses midnight")

	c.Set(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.July, c.Now().Month())
}

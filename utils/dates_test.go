// utils/dates_test.go
package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeginningOfDay(t *testing.T) {
	in := time.Date(2025, 6, 2, 18, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), BeginningOfDay(in))
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2025, 6, 2, 23, 59, 0, 0, time.UTC)
	end := time.Date(2025, 6, 9, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 7, DaysBetween(start, end))
	assert.Equal(t, -7, DaysBetween(end, start))
	assert.Equal(t, 0, DaysBetween(start, start))
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC)
	night := time.Date(2025, 6, 2, 23, 30, 0, 0, time.UTC)
	assert.True(t, SameDay(morning, night))
	assert.False(t, SameDay(morning, night.AddDate(0, 0, 1)))

	// The second timestamp is converted into the first one's location
	plusThree := time.FixedZone("UTC+3", 3*60*60)
	earlyNextDay := time.Date(2025, 6, 3, 1, 0, 0, 0, plusThree) // 22:00 UTC on the 2nd
	assert.True(t, SameDay(night, earlyNextDay))
}

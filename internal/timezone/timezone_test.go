package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Location(""))
	assert.Equal(t, time.UTC, Location("Mars/Olympus_Mons"))
	assert.False(t, IsValid("Mars/Olympus_Mons"))
}

func TestInChangesCalendarDay(t *testing.T) {
	if !IsValid("Asia/Tokyo") {
		t.Skip("tzdata not available")
	}

	utc := time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)
	tokyo := In(utc, "Asia/Tokyo")

	assert.Equal(t, 2, tokyo.Day())
	assert.True(t, utc.Equal(tokyo))
}

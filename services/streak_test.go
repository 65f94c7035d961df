package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func TestComputeStreakEmpty(t *testing.T) {
	res := ComputeStreak(nil)
	assert.Equal(t, 0, res.CurrentStreak)
	assert.Equal(t, 0, res.LongestStreak)
	assert.Nil(t, res.LastApplicationDate)
	assert.Nil(t, res.StreakStartDate)
}

func TestComputeStreakSingleDay(t *testing.T) {
	res := ComputeStreak([]time.Time{d(2026, time.January, 5)})
	assert.Equal(t, 1, res.CurrentStreak)
	assert.Equal(t, 1, res.LongestStreak)
	require.NotNil(t, res.LastApplicationDate)
	assert.Equal(t, d(2026, time.January, 5), *res.LastApplicationDate)
	assert.Equal(t, d(2026, time.January, 5), *res.StreakStartDate)
}

func TestComputeStreakBrokenRun(t *testing.T) {
	// Jan 1-3 then Jan 5: the longest run is the old one, the current
	// streak is the run ending at the most recent date
	dates := []time.Time{
		d(2026, time.January, 1),
		d(2026, time.January, 2),
		d(2026, time.January, 3),
		d(2026, time.January, 5),
	}
	res := ComputeStreak(dates)
	assert.Equal(t, 1, res.CurrentStreak)
	assert.Equal(t, 3, res.LongestStreak)
	assert.Equal(t, d(2026, time.January, 5), *res.LastApplicationDate)
	assert.Equal(t, d(2026, time.January, 5), *res.StreakStartDate)
}

func TestComputeStreakCurrentIsLongest(t *testing.T) {
	dates := []time.Time{
		d(2026, time.March, 10),
		d(2026, time.March, 11),
		d(2026, time.March, 12),
		d(2026, time.March, 13),
	}
	res := ComputeStreak(dates)
	assert.Equal(t, 4, res.CurrentStreak)
	assert.Equal(t, 4, res.LongestStreak)
	assert.Equal(t, d(2026, time.March, 10), *res.StreakStartDate)
	assert.Equal(t, d(2026, time.March, 13), *res.LastApplicationDate)
}

func TestComputeStreakDeduplicatesDays(t *testing.T) {
	// three applications on the same day count as one streak day
	dates := []time.Time{
		d(2026, time.February, 1),
		time.Date(2026, time.February, 1, 9, 30, 0, 0, time.UTC),
		time.Date(2026, time.February, 1, 18, 0, 0, 0, time.UTC),
		d(2026, time.February, 2),
	}
	res := ComputeStreak(dates)
	assert.Equal(t, 2, res.CurrentStreak)
	assert.Equal(t, 2, res.LongestStreak)
}

func TestComputeStreakUnsortedInput(t *testing.T) {
	dates := []time.Time{
		d(2026, time.April, 3),
		d(2026, time.April, 1),
		d(2026, time.April, 2),
	}
	res := ComputeStreak(dates)
	assert.Equal(t, 3, res.CurrentStreak)
	assert.Equal(t, 3, res.LongestStreak)
}

func TestComputeStreakLongRunInMiddle(t *testing.T) {
	dates := []time.Time{
		d(2026, time.May, 1),
		// gap
		d(2026, time.May, 10),
		d(2026, time.May, 11),
		d(2026, time.May, 12),
		d(2026, time.May, 13),
		d(2026, time.May, 14),
		// gap
		d(2026, time.May, 20),
		d(2026, time.May, 21),
	}
	res := ComputeStreak(dates)
	assert.Equal(t, 2, res.CurrentStreak)
	assert.Equal(t, 5, res.LongestStreak)
	assert.Equal(t, d(2026, time.May, 20), *res.StreakStartDate)
}

func TestComputeWeekStreak(t *testing.T) {
	assert.Equal(t, 0, ComputeWeekStreak(nil))

	// three consecutive ISO weeks
	dates := []time.Time{
		d(2026, time.June, 1),  // Monday, week 1
		d(2026, time.June, 10), // week 2
		d(2026, time.June, 21), // Sunday, still week 3
	}
	assert.Equal(t, 3, ComputeWeekStreak(dates))

	// a skipped week breaks the run
	dates = []time.Time{
		d(2026, time.June, 1),
		d(2026, time.June, 17), // week 3, week 2 missing
	}
	assert.Equal(t, 1, ComputeWeekStreak(dates))
}

func TestWeekStartIsMonday(t *testing.T) {
	// 2026-06-03 is a Wednesday
	ws := weekStart(d(2026, time.June, 3))
	assert.Equal(t, d(2026, time.June, 1), ws)
	assert.Equal(t, time.Monday, ws.Weekday())

	// Sunday belongs to the week starting the previous Monday
	ws = weekStart(d(2026, time.June, 7))
	assert.Equal(t, d(2026, time.June, 1), ws)

	// Monday is its own week start
	ws = weekStart(d(2026, time.June, 1))
	assert.Equal(t, d(2026, time.June, 1), ws)
}

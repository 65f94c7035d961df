// services/streak.go - pure streak computation over application dates
package services

import (
	"sort"
	"time"
)

// StreakResult is the derived streak state for one user.
type StreakResult struct {
	CurrentStreak       int        `json:"current_streak"`
	LongestStreak       int        `json:"longest_streak"`
	LastApplicationDate *time.Time `json:"last_application_date,omitempty"`
	StreakStartDate     *time.Time `json:"streak_start_date,omitempty"`
}

// day truncates t to a UTC calendar date.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ComputeStreak derives streaks from a multiset of application dates. Dates
// are deduplicated to calendar days; the current streak is the run of
// consecutive days ending at the most recent application date, the longest
// streak is the maximal run anywhere in history. Empty input yields zeroes.
//
// This is a full recomputation with no incremental mode; callers re-run it
// after every application mutation.
func ComputeStreak(dates []time.Time) StreakResult {
	if len(dates) == 0 {
		return StreakResult{}
	}

	seen := make(map[time.Time]bool, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		dd := day(d)
		if !seen[dd] {
			seen[dd] = true
			days = append(days, dd)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	longest := 1
	run := 1
	current := 1
	currentDone := false

	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, -1)) {
			run++
		} else {
			run = 1
			currentDone = true
		}
		if run > longest {
			longest = run
		}
		if !currentDone {
			current = run
		}
	}

	last := days[0]
	start := last.AddDate(0, 0, -(current - 1))

	return StreakResult{
		CurrentStreak:       current,
		LongestStreak:       longest,
		LastApplicationDate: &last,
		StreakStartDate:     &start,
	}
}

// ComputeWeekStreak counts consecutive ISO weeks with at least one
// application, ending at the week of the most recent one. It backs the
// weekly_streak field of the goal-progress snapshot.
func ComputeWeekStreak(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	seen := make(map[time.Time]bool, len(dates))
	weeks := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		w := weekStart(d)
		if !seen[w] {
			seen[w] = true
			weeks = append(weeks, w)
		}
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].After(weeks[j]) })

	streak := 1
	for i := 1; i < len(weeks); i++ {
		if weeks[i].Equal(weeks[i-1].AddDate(0, 0, -7)) {
			streak++
		} else {
			break
		}
	}
	return streak
}

// weekStart returns the Monday of t's ISO week, truncated to a UTC date.
func weekStart(t time.Time) time.Time {
	d := day(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset)
}

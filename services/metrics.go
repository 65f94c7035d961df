// services/metrics.go - metrics snapshot assembly and the on-mutation hook
package services

import (
	"errors"
	"time"

	"applytrak/models"

	"gorm.io/gorm"
)

// applicationDates loads every application date for the user.
func applicationDates(tx *gorm.DB, userID uint) ([]time.Time, error) {
	var dates []time.Time
	err := tx.Model(&models.Application{}).
		Where("user_id = ?", userID).
		Pluck("date_applied", &dates).Error
	return dates, err
}

// RecomputeUserMetrics recomputes the user's streak columns from scratch and
// upserts the user_metrics row. This is the on-mutation hook: the application
// handlers call it inside the same transaction as every insert/update/delete.
func RecomputeUserMetrics(tx *gorm.DB, userID uint) (models.UserMetrics, error) {
	dates, err := applicationDates(tx, userID)
	if err != nil {
		return models.UserMetrics{}, err
	}
	streak := ComputeStreak(dates)

	var m models.UserMetrics
	err = tx.Where("user_id = ?", userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		m = models.UserMetrics{UserID: userID}
	} else if err != nil {
		return models.UserMetrics{}, err
	}

	m.DailyStreak = streak.CurrentStreak
	m.LongestStreak = streak.LongestStreak
	m.LastApplicationDate = streak.LastApplicationDate
	m.StreakStartDate = streak.StreakStartDate

	if err := tx.Save(&m).Error; err != nil {
		return models.UserMetrics{}, err
	}
	return m, nil
}

// BuildGoalProgress derives the goal-progress snapshot from the user's goal
// settings and application history. The goal row is created with defaults on
// first read.
func BuildGoalProgress(tx *gorm.DB, userID uint) (models.GoalProgress, error) {
	var goal models.Goal
	err := tx.Where("user_id = ?", userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		goal = models.Goal{UserID: userID, TotalGoal: 100, WeeklyGoal: 5, MonthlyGoal: 20}
		if err := tx.Create(&goal).Error; err != nil {
			return models.GoalProgress{}, err
		}
	} else if err != nil {
		return models.GoalProgress{}, err
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	wkStart := weekStart(now)

	var total, weekly, monthly int64
	base := tx.Model(&models.Application{}).Where("user_id = ?", userID)
	if err := base.Count(&total).Error; err != nil {
		return models.GoalProgress{}, err
	}
	if err := tx.Model(&models.Application{}).
		Where("user_id = ? AND date_applied >= ?", userID, wkStart).
		Count(&weekly).Error; err != nil {
		return models.GoalProgress{}, err
	}
	if err := tx.Model(&models.Application{}).
		Where("user_id = ? AND date_applied >= ?", userID, monthStart).
		Count(&monthly).Error; err != nil {
		return models.GoalProgress{}, err
	}

	dates, err := applicationDates(tx, userID)
	if err != nil {
		return models.GoalProgress{}, err
	}

	return models.GoalProgress{
		TotalGoal:       goal.TotalGoal,
		WeeklyGoal:      goal.WeeklyGoal,
		MonthlyGoal:     goal.MonthlyGoal,
		TotalProgress:   percentOf(int(total), goal.TotalGoal),
		WeeklyProgress:  percentOf(int(weekly), goal.WeeklyGoal),
		MonthlyProgress: percentOf(int(monthly), goal.MonthlyGoal),
		WeeklyStreak:    ComputeWeekStreak(dates),
	}, nil
}

func percentOf(current, goal int) int {
	if goal <= 0 {
		return 100
	}
	p := current * 100 / goal
	if p > 100 {
		return 100
	}
	return p
}

// advanceRate converts advanced-of-total counts into a 0..100 percentage,
// rounding up so any advanced application registers as at least 1. A
// threshold of 1 on the quality metric therefore reads as "at least one
// application advanced".
func advanceRate(advanced, total int) int {
	if total <= 0 || advanced <= 0 {
		return 0
	}
	p := (advanced*100 + total - 1) / total
	if p > 100 {
		return 100
	}
	return p
}

// qualityScore is the share of applications that advanced past the initial
// stage (Interview or Offer), 0..100.
func qualityScore(tx *gorm.DB, userID uint) (int, error) {
	var total, advanced int64
	if err := tx.Model(&models.Application{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	if err := tx.Model(&models.Application{}).
		Where("user_id = ? AND status IN ?", userID, []string{models.StatusInterview, models.StatusOffer}).
		Count(&advanced).Error; err != nil {
		return 0, err
	}
	return advanceRate(int(advanced), int(total)), nil
}

// BuildMetricsSnapshot assembles the evaluator input for one user. Everything
// is recomputed from source data on each call; with catalogs of dozens of
// entries and application counts in the low thousands a full rebuild is
// cheap. Missing user context (no applications, no goals) is not an error and
// reads as zeroes.
func BuildMetricsSnapshot(tx *gorm.DB, userID uint) (MetricsSnapshot, models.UserMetrics, error) {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		return MetricsSnapshot{}, models.UserMetrics{}, err
	}

	metrics, err := RecomputeUserMetrics(tx, userID)
	if err != nil {
		return MetricsSnapshot{}, models.UserMetrics{}, err
	}

	goals, err := BuildGoalProgress(tx, userID)
	if err != nil {
		return MetricsSnapshot{}, models.UserMetrics{}, err
	}

	quality, err := qualityScore(tx, userID)
	if err != nil {
		return MetricsSnapshot{}, models.UserMetrics{}, err
	}

	var count int64
	if err := tx.Model(&models.Application{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return MetricsSnapshot{}, models.UserMetrics{}, err
	}

	elapsed := int(time.Now().UTC().Sub(user.CreatedAt) / (24 * time.Hour))
	if elapsed < 0 {
		elapsed = 0
	}

	return MetricsSnapshot{
		ApplicationCount:    int(count),
		DailyStreak:         metrics.DailyStreak,
		WeeklyGoalProgress:  goals.WeeklyProgress,
		MonthlyGoalProgress: goals.MonthlyProgress,
		ProfileCompleteness: user.ProfileCompleteness(),
		QualityScore:        quality,
		ElapsedDays:         elapsed,
	}, metrics, nil
}

// models/metrics.go
package models

import "time"

// UserMetrics stores the derived streak columns, recomputed in full after
// every application insert/update/delete for the user.
type UserMetrics struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	UserID              uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	DailyStreak         int        `gorm:"default:0" json:"daily_streak"`
	LongestStreak       int        `gorm:"default:0" json:"longest_streak"`
	LastApplicationDate *time.Time `gorm:"type:date" json:"last_application_date,omitempty"`
	StreakStartDate     *time.Time `gorm:"type:date" json:"streak_start_date,omitempty"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (UserMetrics) TableName() string {
	return "user_metrics"
}

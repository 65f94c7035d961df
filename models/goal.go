// models/goal.go
package models

import "time"

// Goal holds a user's application targets. One row per user, created with
// defaults the first time goals are read.
type Goal struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"-"`
	TotalGoal   int       `gorm:"default:100" json:"total_goal"`
	WeeklyGoal  int       `gorm:"default:5" json:"weekly_goal"`
	MonthlyGoal int       `gorm:"default:20" json:"monthly_goal"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Goal) TableName() string {
	return "goals"
}

// GoalProgress is the derived snapshot handed to the achievement engine and
// the UI. Progress values are percentages clamped to 0..100.
type GoalProgress struct {
	TotalGoal       int `json:"total_goal"`
	WeeklyGoal      int `json:"weekly_goal"`
	MonthlyGoal     int `json:"monthly_goal"`
	TotalProgress   int `json:"total_progress"`
	WeeklyProgress  int `json:"weekly_progress"`
	MonthlyProgress int `json:"monthly_progress"`
	WeeklyStreak    int `json:"weekly_streak"`
}

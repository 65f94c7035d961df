// models/achievement.go
package models

import "time"

// AchievementState is the per-user, per-achievement record maintained by the
// unlock engine. Unlocked flips false->true exactly once; UnlockedAt is set at
// that transition and never changed. Version backs optimistic concurrency on
// the engine's read-modify-write.
type AchievementState struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"not null;index:idx_achievement_states_user_achievement,unique" json:"user_id"`
	AchievementID string     `gorm:"not null;size:100;index:idx_achievement_states_user_achievement,unique" json:"achievement_id"`
	Unlocked      bool       `gorm:"default:false" json:"unlocked"`
	UnlockedAt    *time.Time `json:"unlocked_at,omitempty"`
	Progress      int        `gorm:"default:0" json:"progress"` // 0..100
	Version       int        `gorm:"default:1" json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (AchievementState) TableName() string {
	return "achievement_states"
}

// UnlockEvent is the append-only log of unlocks, most-recent-first when
// queried. Retention is enforced by the cleanup service.
type UnlockEvent struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	AchievementID string    `gorm:"not null;size:100" json:"achievement_id"`
	XPAwarded     int       `gorm:"default:0" json:"xp_awarded"`
	UnlockedAt    time.Time `gorm:"not null;index" json:"unlocked_at"`
}

func (UnlockEvent) TableName() string {
	return "unlock_events"
}

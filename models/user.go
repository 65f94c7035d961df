// models/user.go
package models

import (
	"time"
)

type User struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Username    string  `gorm:"uniqueIndex;not null" json:"username"`
	Email       *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password    string  `gorm:"not null" json:"-"`
	DisplayName string  `json:"display_name"`
	Avatar      string  `json:"avatar"`
	Bio         string  `json:"bio"`
	Location    string  `json:"location"`
	TargetRole  string  `json:"target_role"`
	IsGuest     bool    `gorm:"default:false" json:"is_guest"`
	IsAdmin     bool    `gorm:"default:false" json:"is_admin"`
	IsBanned    bool    `gorm:"default:false" json:"is_banned"`

	// Progression (denormalized; recomputed by the achievement engine)
	Level   int `gorm:"default:1" json:"level"`
	TotalXP int `gorm:"default:0" json:"total_xp"`

	// Timestamps
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    time.Time  `json:"last_login"`
	LastActivity *time.Time `json:"last_activity,omitempty"`

	// Relationships
	Applications []Application `gorm:"foreignKey:UserID" json:"applications,omitempty"`
}

// ProfileCompleteness returns how much of the profile is filled in, 0..100.
// It feeds the "profile" requirement type of the achievement engine.
func (u *User) ProfileCompleteness() int {
	fields := []bool{
		u.DisplayName != "",
		u.Avatar != "",
		u.Bio != "",
		u.Location != "",
		u.TargetRole != "",
		u.Email != nil && *u.Email != "",
	}

	filled := 0
	for _, ok := range fields {
		if ok {
			filled++
		}
	}
	return filled * 100 / len(fields)
}

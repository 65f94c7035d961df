// models/application.go
package models

import "time"

// Application statuses
const (
	StatusApplied   = "Applied"
	StatusInterview = "Interview"
	StatusOffer     = "Offer"
	StatusRejected  = "Rejected"
)

// Work arrangement types
const (
	TypeRemote = "Remote"
	TypeOnsite = "Onsite"
	TypeHybrid = "Hybrid"
)

// Application represents a single logged job application
type Application struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	User           *User     `gorm:"foreignKey:UserID" json:"-"`
	Company        string    `gorm:"not null;size:200" json:"company"`
	Position       string    `gorm:"not null;size:200" json:"position"`
	DateApplied    time.Time `gorm:"not null;type:date;index" json:"date_applied"`
	Status         string    `gorm:"not null;default:'Applied';size:20;index" json:"status"`
	Type           string    `gorm:"size:20" json:"type"` // Remote, Onsite, Hybrid
	EmploymentType string    `gorm:"size:50" json:"employment_type"`
	Salary         string    `gorm:"size:50" json:"salary"`
	JobURL         string    `gorm:"type:text" json:"job_url"`
	Notes          string    `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Application) TableName() string {
	return "applications"
}

// ValidStatus reports whether s is one of the known application statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// ValidType reports whether t is a known work arrangement type.
func ValidType(t string) bool {
	switch t {
	case "", TypeRemote, TypeOnsite, TypeHybrid:
		return true
	}
	return false
}

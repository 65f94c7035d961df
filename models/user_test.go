package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileCompleteness(t *testing.T) {
	u := User{}
	assert.Equal(t, 0, u.ProfileCompleteness())

	u.DisplayName = "Ada"
	u.Bio = "Looking for backend roles"
	u.TargetRole = "Backend Engineer"
	assert.Equal(t, 50, u.ProfileCompleteness())

	email := "ada@example.com"
	u.Email = &email
	u.Avatar = "https://example.com/a.png"
	u.Location = "Berlin"
	assert.Equal(t, 100, u.ProfileCompleteness())

	// an empty email string does not count as filled
	empty := ""
	u.Email = &empty
	assert.Equal(t, 83, u.ProfileCompleteness())
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusApplied))
	assert.True(t, ValidStatus(StatusInterview))
	assert.True(t, ValidStatus(StatusOffer))
	assert.True(t, ValidStatus(StatusRejected))
	assert.False(t, ValidStatus("Ghosted"))
	assert.False(t, ValidStatus(""))
}

func TestValidType(t *testing.T) {
	assert.True(t, ValidType(TypeRemote))
	assert.True(t, ValidType(TypeOnsite))
	assert.True(t, ValidType(TypeHybrid))
	assert.False(t, ValidType("Moon"))
}

// handlers/users.go
package handlers

import (
	"applytrak/database"
	"applytrak/middleware"
	"applytrak/models"

	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Avatar      *string `json:"avatar"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
	TargetRole  *string `json:"target_role"`
	Email       *string `json:"email"`
}

// GetCurrentUser returns the authenticated user's account
func GetCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success":              true,
		"user":                 user,
		"profile_completeness": user.ProfileCompleteness(),
	})
}

// UpdateCurrentUser updates profile fields. Profile completeness feeds the
// achievement engine, so an evaluation runs after the save.
func UpdateCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.TargetRole != nil {
		user.TargetRole = *req.TargetRole
	}
	if req.Email != nil && *req.Email != "" {
		user.Email = req.Email
	}

	if err := db.Save(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	stats, newUnlocks := evaluateAfterMutation(userID)

	return c.JSON(fiber.Map{
		"success":              true,
		"user":                 user,
		"profile_completeness": user.ProfileCompleteness(),
		"new_achievements":     newUnlocks,
		"stats":                stats,
	})
}

// GetUserProfile returns another user's public profile
func GetUserProfile(c *fiber.Ctx) error {
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":           user.ID,
			"username":     user.Username,
			"display_name": user.DisplayName,
			"avatar":       user.Avatar,
			"bio":          user.Bio,
			"level":        user.Level,
			"total_xp":     user.TotalXP,
			"created_at":   user.CreatedAt,
		},
	})
}

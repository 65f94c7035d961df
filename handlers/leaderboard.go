// handlers/leaderboard.go
package handlers

import (
	"applytrak/database"
	"applytrak/models"
	"applytrak/utils"

	"github.com/gofiber/fiber/v2"
)

type leaderboardEntry struct {
	UserID        uint   `json:"user_id"`
	Username      string `json:"username"`
	DisplayName   string `json:"display_name"`
	Avatar        string `json:"avatar"`
	Level         int    `json:"level"`
	TotalXP       int    `json:"total_xp"`
	DailyStreak   int    `json:"daily_streak"`
	LongestStreak int    `json:"longest_streak"`
}

// GetLeaderboard returns the global ranking
// GET /api/leaderboard?category=xp&limit=100&offset=0
func GetLeaderboard(c *fiber.Ctx) error {
	category := c.Query("category", "xp")
	limit := utils.ClampInt(utils.ParseIntDefault(c.Query("limit"), 100), 1, 100)
	offset := utils.MaxInt(utils.ParseIntDefault(c.Query("offset"), 0), 0)

	var orderBy string
	switch category {
	case "level":
		orderBy = "users.level DESC, users.total_xp DESC"
	case "streak":
		orderBy = "COALESCE(user_metrics.longest_streak, 0) DESC, users.total_xp DESC"
	default:
		category = "xp"
		orderBy = "users.total_xp DESC, users.level DESC"
	}

	db := database.GetDB()

	var entries []leaderboardEntry
	err := db.Model(&models.User{}).
		Select(`users.id AS user_id, users.username, users.display_name, users.avatar,
			users.level, users.total_xp,
			COALESCE(user_metrics.daily_streak, 0) AS daily_streak,
			COALESCE(user_metrics.longest_streak, 0) AS longest_streak`).
		Joins("LEFT JOIN user_metrics ON user_metrics.user_id = users.id").
		Where("users.is_guest = ?", false).
		Order(orderBy).
		Limit(limit).
		Offset(offset).
		Scan(&entries).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch leaderboard"})
	}

	var total int64
	db.Model(&models.User{}).Where("is_guest = ?", false).Count(&total)

	return c.JSON(fiber.Map{
		"success":  true,
		"entries":  entries,
		"category": category,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetUserRank returns a single user's XP rank
func GetUserRank(c *fiber.Ctx) error {
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	var rank int64
	db.Model(&models.User{}).
		Where("is_guest = ? AND total_xp > ?", false, user.TotalXP).
		Count(&rank)

	return c.JSON(fiber.Map{
		"success":  true,
		"user_id":  user.ID,
		"username": user.Username,
		"total_xp": user.TotalXP,
		"level":    user.Level,
		"rank":     rank + 1,
	})
}

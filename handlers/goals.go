// handlers/goals.go
package handlers

import (
	"applytrak/database"
	"applytrak/middleware"
	"applytrak/models"
	"applytrak/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type GoalRequest struct {
	TotalGoal   *int `json:"total_goal"`
	WeeklyGoal  *int `json:"weekly_goal"`
	MonthlyGoal *int `json:"monthly_goal"`
}

// GetGoals returns the user's goal settings and the derived progress snapshot
func GetGoals(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()

	var progress models.GoalProgress
	err = db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		progress, txErr = services.BuildGoalProgress(tx, userID)
		return txErr
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch goals"})
	}

	return c.JSON(fiber.Map{"success": true, "goals": progress})
}

// UpdateGoals changes the user's goal targets and re-runs the achievement
// engine since goal progress percentages shift with the targets
func UpdateGoals(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req GoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := database.GetDB()

	var goal models.Goal
	if err := db.Where("user_id = ?", userID).First(&goal).Error; err != nil {
		goal = models.Goal{UserID: userID, TotalGoal: 100, WeeklyGoal: 5, MonthlyGoal: 20}
	}

	if req.TotalGoal != nil {
		if *req.TotalGoal < 1 {
			return c.Status(400).JSON(fiber.Map{"error": "Goals must be positive"})
		}
		goal.TotalGoal = *req.TotalGoal
	}
	if req.WeeklyGoal != nil {
		if *req.WeeklyGoal < 1 {
			return c.Status(400).JSON(fiber.Map{"error": "Goals must be positive"})
		}
		goal.WeeklyGoal = *req.WeeklyGoal
	}
	if req.MonthlyGoal != nil {
		if *req.MonthlyGoal < 1 {
			return c.Status(400).JSON(fiber.Map{"error": "Goals must be positive"})
		}
		goal.MonthlyGoal = *req.MonthlyGoal
	}

	if err := db.Save(&goal).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update goals"})
	}

	stats, newUnlocks := evaluateAfterMutation(userID)

	return c.JSON(fiber.Map{
		"success":          true,
		"goal":             goal,
		"new_achievements": newUnlocks,
		"stats":            stats,
	})
}

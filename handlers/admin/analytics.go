package admin

import (
	"time"

	"applytrak/database"
	"applytrak/models"

	"github.com/gofiber/fiber/v2"
)

// GetAnalytics returns service-wide counters for the admin dashboard
func GetAnalytics(c *fiber.Ctx) error {
	db := database.GetDB()

	var totalUsers, guestUsers, totalApplications, totalUnlocks int64
	db.Model(&models.User{}).Count(&totalUsers)
	db.Model(&models.User{}).Where("is_guest = ?", true).Count(&guestUsers)
	db.Model(&models.Application{}).Count(&totalApplications)
	db.Model(&models.UnlockEvent{}).Count(&totalUnlocks)

	// Users active in the last 7 days
	cutoff := time.Now().AddDate(0, 0, -7)
	var activeUsers int64
	db.Model(&models.User{}).Where("last_activity > ?", cutoff).Count(&activeUsers)

	// Applications logged in the last 7 days
	var recentApplications int64
	db.Model(&models.Application{}).Where("created_at > ?", cutoff).Count(&recentApplications)

	return c.JSON(fiber.Map{
		"total_users":        totalUsers,
		"guest_users":        guestUsers,
		"active_users_7d":    activeUsers,
		"total_applications": totalApplications,
		"applications_7d":    recentApplications,
		"total_unlocks":      totalUnlocks,
	})
}

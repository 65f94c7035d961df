package admin

import (
	"applytrak/database"
	"applytrak/models"
	"applytrak/utils"

	"github.com/gofiber/fiber/v2"
)

// GetUsers returns all users with pagination
func GetUsers(c *fiber.Ctx) error {
	db := database.GetDB()

	page := utils.MaxInt(utils.ParseIntDefault(c.Query("page"), 1), 1)
	limit := utils.ClampInt(utils.ParseIntDefault(c.Query("limit"), 20), 1, 100)
	search := c.Query("search")

	offset := (page - 1) * limit

	var users []models.User
	var total int64

	query := db.Model(&models.User{})
	if search != "" {
		query = query.Where("username ILIKE ? OR email ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	query.Count(&total)

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	return c.JSON(fiber.Map{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetUser returns a single user by ID
func GetUser(c *fiber.Ctx) error {
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(user)
}

// UpdateUser updates a user's account flags
func UpdateUser(c *fiber.Ctx) error {
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	var updateData struct {
		Username *string `json:"username"`
		IsAdmin  *bool   `json:"is_admin"`
		IsBanned *bool   `json:"is_banned"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if updateData.Username != nil && *updateData.Username != "" {
		user.Username = *updateData.Username
	}
	if updateData.IsAdmin != nil {
		user.IsAdmin = *updateData.IsAdmin
	}
	if updateData.IsBanned != nil {
		user.IsBanned = *updateData.IsBanned
	}

	if err := db.Save(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update user"})
	}

	return c.JSON(user)
}

// BanUser suspends a user account
func BanUser(c *fiber.Ctx) error {
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	user.IsBanned = true
	if err := db.Save(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to ban user"})
	}

	return c.JSON(fiber.Map{"message": "User banned successfully"})
}

// DeleteUser removes a user and all their records
func DeleteUser(c *fiber.Ctx) error {
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	for _, model := range []interface{}{
		&models.Application{},
		&models.Goal{},
		&models.UserMetrics{},
		&models.AchievementState{},
		&models.UnlockEvent{},
	} {
		if err := db.Where("user_id = ?", user.ID).Delete(model).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to delete user data"})
		}
	}

	if err := db.Delete(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete user"})
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

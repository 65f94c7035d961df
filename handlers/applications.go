// handlers/applications.go
package handlers

import (
	"errors"
	"log"
	"time"

	"applytrak/catalog"
	"applytrak/database"
	"applytrak/middleware"
	"applytrak/models"
	"applytrak/services"
	"applytrak/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ApplicationRequest struct {
	Company        string `json:"company"`
	Position       string `json:"position"`
	DateApplied    string `json:"date_applied"` // YYYY-MM-DD
	Status         string `json:"status"`
	Type           string `json:"type"`
	EmploymentType string `json:"employment_type"`
	Salary         string `json:"salary"`
	JobURL         string `json:"job_url"`
	Notes          string `json:"notes"`
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// evaluateAfterMutation re-runs the achievement engine after an application
// change. A state conflict means another evaluation raced ours; retry once,
// the second run sees the settled state.
func evaluateAfterMutation(userID uint) (*services.UserAchievementStats, []catalog.Achievement) {
	svc := services.GetAchievementService()
	if svc == nil {
		return nil, nil
	}
	stats, unlocks, err := svc.Evaluate(userID)
	if errors.Is(err, services.ErrStateConflict) {
		stats, unlocks, err = svc.Evaluate(userID)
	}
	if err != nil {
		log.Printf("Achievement evaluation failed for user %d: %v", userID, err)
		return nil, nil
	}
	return stats, unlocks
}

// ListApplications returns the user's applications with status/type/search
// filters and pagination
func ListApplications(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	limit := utils.ClampInt(utils.ParseIntDefault(c.Query("limit"), 50), 1, 200)
	offset := utils.MaxInt(utils.ParseIntDefault(c.Query("offset"), 0), 0)

	db := database.GetDB()
	query := db.Model(&models.Application{}).Where("user_id = ?", userID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if appType := c.Query("type"); appType != "" {
		query = query.Where("type = ?", appType)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("company ILIKE ? OR position ILIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	var apps []models.Application
	if err := query.Order("date_applied DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&apps).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch applications"})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"applications": apps,
		"total":        total,
		"limit":        limit,
		"offset":       offset,
	})
}

// GetApplication returns a single application
func GetApplication(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var app models.Application
	if err := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&app).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Application not found"})
	}

	return c.JSON(fiber.Map{"success": true, "application": app})
}

// CreateApplication logs a new application and re-runs the achievement engine
func CreateApplication(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req ApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Company == "" || req.Position == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Company and position required"})
	}

	status := req.Status
	if status == "" {
		status = models.StatusApplied
	}
	if !models.ValidStatus(status) {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid status"})
	}
	if !models.ValidType(req.Type) {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid application type"})
	}

	dateApplied := time.Now().UTC()
	if req.DateApplied != "" {
		dateApplied, err = parseDate(req.DateApplied)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date_applied, expected YYYY-MM-DD"})
		}
	}

	app := models.Application{
		UserID:         userID,
		Company:        req.Company,
		Position:       req.Position,
		DateApplied:    dateApplied,
		Status:         status,
		Type:           req.Type,
		EmploymentType: req.EmploymentType,
		Salary:         req.Salary,
		JobURL:         req.JobURL,
		Notes:          req.Notes,
	}

	db := database.GetDB()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&app).Error; err != nil {
			return err
		}
		_, err := services.RecomputeUserMetrics(tx, userID)
		return err
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create application"})
	}

	stats, newUnlocks := evaluateAfterMutation(userID)

	return c.Status(201).JSON(fiber.Map{
		"success":          true,
		"application":      app,
		"new_achievements": newUnlocks,
		"stats":            stats,
	})
}

// UpdateApplication updates an application and re-runs the achievement engine
func UpdateApplication(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var app models.Application
	if err := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&app).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Application not found"})
	}

	var req ApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Company != "" {
		app.Company = req.Company
	}
	if req.Position != "" {
		app.Position = req.Position
	}
	if req.Status != "" {
		if !models.ValidStatus(req.Status) {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid status"})
		}
		app.Status = req.Status
	}
	if req.Type != "" {
		if !models.ValidType(req.Type) {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid application type"})
		}
		app.Type = req.Type
	}
	if req.EmploymentType != "" {
		app.EmploymentType = req.EmploymentType
	}
	if req.Salary != "" {
		app.Salary = req.Salary
	}
	if req.JobURL != "" {
		app.JobURL = req.JobURL
	}
	if req.Notes != "" {
		app.Notes = req.Notes
	}
	if req.DateApplied != "" {
		d, err := parseDate(req.DateApplied)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date_applied, expected YYYY-MM-DD"})
		}
		app.DateApplied = d
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&app).Error; err != nil {
			return err
		}
		_, err := services.RecomputeUserMetrics(tx, userID)
		return err
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update application"})
	}

	stats, newUnlocks := evaluateAfterMutation(userID)

	return c.JSON(fiber.Map{
		"success":          true,
		"application":      app,
		"new_achievements": newUnlocks,
		"stats":            stats,
	})
}

// DeleteApplication removes an application and re-runs the achievement engine
func DeleteApplication(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var app models.Application
	if err := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&app).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Application not found"})
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&app).Error; err != nil {
			return err
		}
		_, err := services.RecomputeUserMetrics(tx, userID)
		return err
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete application"})
	}

	stats, _ := evaluateAfterMutation(userID)

	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
	})
}

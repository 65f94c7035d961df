// handlers/stats.go
package handlers

import (
	"time"

	"applytrak/database"
	"applytrak/middleware"
	"applytrak/models"
	"applytrak/utils"

	"github.com/gofiber/fiber/v2"
)

// GetApplicationStats returns the analytics numbers the tracker's charts
// consume: counts by status and type, conversion rates, and a weekly series.
func GetApplicationStats(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()

	var total int64
	db.Model(&models.Application{}).Where("user_id = ?", userID).Count(&total)

	byStatus := map[string]int64{}
	for _, status := range []string{
		models.StatusApplied, models.StatusInterview, models.StatusOffer, models.StatusRejected,
	} {
		var n int64
		db.Model(&models.Application{}).
			Where("user_id = ? AND status = ?", userID, status).
			Count(&n)
		byStatus[status] = n
	}

	byType := map[string]int64{}
	for _, t := range []string{models.TypeRemote, models.TypeOnsite, models.TypeHybrid} {
		var n int64
		db.Model(&models.Application{}).
			Where("user_id = ? AND type = ?", userID, t).
			Count(&n)
		byType[t] = n
	}

	interviewRate := 0.0
	offerRate := 0.0
	if total > 0 {
		interviewRate = float64(byStatus[models.StatusInterview]+byStatus[models.StatusOffer]) / float64(total) * 100
		offerRate = float64(byStatus[models.StatusOffer]) / float64(total) * 100
	}

	// Weekly counts for the recent activity chart
	weeks := utils.ClampInt(utils.ParseIntDefault(c.Query("weeks"), 8), 1, 52)
	type weekCount struct {
		WeekStart string `json:"week_start"`
		Count     int64  `json:"count"`
	}
	series := make([]weekCount, 0, weeks)
	now := time.Now().UTC()
	for i := weeks - 1; i >= 0; i-- {
		start := weekStartUTC(now).AddDate(0, 0, -7*i)
		end := start.AddDate(0, 0, 7)
		var n int64
		db.Model(&models.Application{}).
			Where("user_id = ? AND date_applied >= ? AND date_applied < ?", userID, start, end).
			Count(&n)
		series = append(series, weekCount{WeekStart: start.Format("2006-01-02"), Count: n})
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"total":          total,
		"by_status":      byStatus,
		"by_type":        byType,
		"interview_rate": interviewRate,
		"offer_rate":     offerRate,
		"weekly":         series,
	})
}

// weekStartUTC returns the Monday of t's week as a UTC date.
func weekStartUTC(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

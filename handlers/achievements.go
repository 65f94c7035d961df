// handlers/achievements.go
package handlers

import (
	"errors"

	"applytrak/catalog"
	"applytrak/middleware"
	"applytrak/services"
	"applytrak/utils"

	"github.com/gofiber/fiber/v2"
)

// GetAchievements returns the catalog joined with the user's unlock state,
// narrowed by optional category/tier/rarity/unlocked/search query params.
// Catalog order is preserved.
func GetAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	filter := catalog.Filter{
		Category: catalog.Category(c.Query("category")),
		Tier:     catalog.Tier(c.Query("tier")),
		Rarity:   catalog.Rarity(c.Query("rarity")),
		Search:   c.Query("search"),
	}
	switch c.Query("unlocked") {
	case "true":
		v := true
		filter.Unlocked = &v
	case "false":
		v := false
		filter.Unlocked = &v
	}

	svc := services.GetAchievementService()
	achievements, err := svc.ListFiltered(userID, filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	unlocked := 0
	for _, a := range achievements {
		if a.Unlocked {
			unlocked++
		}
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": achievements,
		"total":        len(achievements),
		"unlocked":     unlocked,
	})
}

// GetAchievement returns a single catalog entry
func GetAchievement(c *fiber.Ctx) error {
	svc := services.GetAchievementService()

	a, err := svc.Catalog().Get(c.Params("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "Achievement not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievement"})
	}

	return c.JSON(fiber.Map{"success": true, "achievement": a})
}

// EvaluateAchievements re-runs the full evaluation for the current user and
// returns the aggregate stats plus any achievements unlocked by this pass.
// Re-running with no data change is a no-op: same stats, no new unlocks.
func EvaluateAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	svc := services.GetAchievementService()
	stats, newUnlocks, err := svc.Evaluate(userID)
	if errors.Is(err, services.ErrStateConflict) {
		stats, newUnlocks, err = svc.Evaluate(userID)
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to evaluate achievements"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"stats":       stats,
		"new_unlocks": newUnlocks,
	})
}

// GetAchievementStats returns the aggregate stats (running a fresh
// evaluation; evaluation is idempotent so a plain read is safe)
func GetAchievementStats(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	svc := services.GetAchievementService()
	stats, _, err := svc.Evaluate(userID)
	if errors.Is(err, services.ErrStateConflict) {
		stats, _, err = svc.Evaluate(userID)
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute stats"})
	}

	return c.JSON(fiber.Map{"success": true, "stats": stats})
}

// GetStreak returns the user's stored streak columns
func GetStreak(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	svc := services.GetAchievementService()
	streak, err := svc.GetStreak(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch streak"})
	}

	return c.JSON(fiber.Map{"success": true, "streak": streak})
}

// GetRecentUnlocks returns the unlock log, most recent first
func GetRecentUnlocks(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	limit := utils.ParseIntDefault(c.Query("limit"), 20)

	svc := services.GetAchievementService()
	events, err := svc.RecentUnlocks(userID, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch unlock history"})
	}

	return c.JSON(fiber.Map{"success": true, "unlocks": events})
}

// GetCatalogMeta returns the static classification tables the UI uses for
// filter chips and badge styling
func GetCatalogMeta(c *fiber.Ctx) error {
	tiers := fiber.Map{}
	for _, t := range []catalog.Tier{
		catalog.TierBronze, catalog.TierSilver, catalog.TierGold,
		catalog.TierPlatinum, catalog.TierDiamond, catalog.TierLegendary,
	} {
		if info, ok := catalog.TierMeta(t); ok {
			tiers[string(t)] = info
		}
	}

	rarities := fiber.Map{}
	for _, r := range []catalog.Rarity{
		catalog.RarityCommon, catalog.RarityUncommon, catalog.RarityRare,
		catalog.RarityEpic, catalog.RarityLegendary,
	} {
		if info, ok := catalog.RarityMeta(r); ok {
			rarities[string(r)] = info
		}
	}

	categories := fiber.Map{}
	for _, cat := range catalog.Categories() {
		if info, ok := catalog.CategoryMeta(cat); ok {
			categories[string(cat)] = info
		}
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"tiers":      tiers,
		"rarities":   rarities,
		"categories": categories,
		"max_level":  catalog.MaxLevel(),
	})
}

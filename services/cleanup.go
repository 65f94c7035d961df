package services

import (
	"log"
	"time"

	"applytrak/models"

	"gorm.io/gorm"
)

// CleanupService handles background housekeeping: stale guest accounts and
// unlock-log retention.
type CleanupService struct {
	db *gorm.DB
}

var cleanupService *CleanupService

// InitCleanupService initializes the singleton cleanup service.
func InitCleanupService(db *gorm.DB) {
	cleanupService = &CleanupService{db: db}
}

// GetCleanupService returns the initialized cleanup service.
func GetCleanupService() *CleanupService {
	return cleanupService
}

// CleanupStaleGuests removes guest accounts with no activity for 30 days,
// along with their applications, goals, metrics and achievement records.
func (s *CleanupService) CleanupStaleGuests() error {
	cutoff := time.Now().AddDate(0, 0, -30)

	var guests []models.User
	if err := s.db.Where("is_guest = ? AND (last_activity IS NULL OR last_activity < ?) AND created_at < ?",
		true, cutoff, cutoff).Find(&guests).Error; err != nil {
		log.Printf("Error finding stale guests: %v", err)
		return err
	}
	if len(guests) == 0 {
		return nil
	}

	ids := make([]uint, len(guests))
	for i, g := range guests {
		ids[i] = g.ID
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Application{},
			&models.Goal{},
			&models.UserMetrics{},
			&models.AchievementState{},
			&models.UnlockEvent{},
		} {
			if err := tx.Where("user_id IN ?", ids).Delete(model).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.User{}, ids).Error; err != nil {
			return err
		}
		log.Printf("✅ Cleaned up %d stale guest accounts", len(ids))
		return nil
	})
}

// TrimUnlockEvents enforces unlock-log retention: each user keeps their most
// recent keep events, older ones are dropped.
func (s *CleanupService) TrimUnlockEvents(keep int) error {
	if keep < 1 {
		keep = 100
	}

	res := s.db.Exec(`
		DELETE FROM unlock_events
		WHERE id IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (
					PARTITION BY user_id ORDER BY unlocked_at DESC, id DESC
				) AS rn
				FROM unlock_events
			) ranked
			WHERE ranked.rn > ?
		)
	`, keep)
	if res.Error != nil {
		log.Printf("Error trimming unlock events: %v", res.Error)
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("✅ Trimmed %d old unlock events", res.RowsAffected)
	}
	return nil
}

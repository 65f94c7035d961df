// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"applytrak/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Application{},
		&models.Goal{},
		&models.UserMetrics{},
		&models.AchievementState{},
		&models.UnlockEvent{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes beyond what AutoMigrate derives from tags
func createIndexes() {
	db := GetDB()

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_level ON users(level DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_total_xp ON users(total_xp DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")

	// Application indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_applications_user_date ON applications(user_id, date_applied DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_applications_user_status ON applications(user_id, status)")

	// Unlock event indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_unlock_events_user_time ON unlock_events(user_id, unlocked_at DESC)")
}

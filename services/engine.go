// services/engine.go - unlock transition engine
package services

import (
	"errors"
	"time"

	"applytrak/catalog"
	"applytrak/models"

	"gorm.io/gorm"
)

// ErrStateConflict is returned when a concurrent evaluation updated an
// achievement state between our read and write. Callers retry the full
// evaluation.
var ErrStateConflict = errors.New("achievement state modified concurrently")

// Reconcile compares stored per-achievement state against a fresh evaluation
// and produces the unlock transitions. It is pure: no I/O, no clock reads
// beyond the supplied now.
//
// Achievements are visited in dependency order, so an achievement unlocked
// earlier in the pass can satisfy a dependency later in the same pass. An
// achievement whose dependencies are still locked is skipped even when its
// own requirements are met; its progress is still reported. Unlocks are
// monotonic: already-unlocked entries are never touched, so re-running with
// unchanged inputs yields no events.
func Reconcile(cat *catalog.Catalog, states map[string]models.AchievementState, m MetricsSnapshot, now time.Time) (map[string]models.AchievementState, []models.UnlockEvent) {
	updated := make(map[string]models.AchievementState, cat.Len())
	unlocked := make(map[string]bool, len(states))
	for id, st := range states {
		if st.Unlocked {
			unlocked[id] = true
		}
	}

	var events []models.UnlockEvent

	for _, a := range cat.TopoOrder() {
		st := states[a.ID] // zero value creates the state lazily
		st.AchievementID = a.ID

		if st.Unlocked {
			updated[a.ID] = st
			continue
		}

		ev := EvaluateAchievement(m, a)
		st.Progress = ev.Progress

		depsMet := true
		for _, dep := range a.Dependencies {
			if !unlocked[dep] {
				depsMet = false
				break
			}
		}

		if ev.Satisfied && depsMet {
			at := now
			st.Unlocked = true
			st.UnlockedAt = &at
			st.Progress = 100
			unlocked[a.ID] = true
			events = append(events, models.UnlockEvent{
				AchievementID: a.ID,
				XPAwarded:     a.XPReward,
				UnlockedAt:    at,
			})
		}

		updated[a.ID] = st
	}

	return updated, events
}

// CategoryCount is the per-category slice of the aggregate stats.
type CategoryCount struct {
	Total    int `json:"total"`
	Unlocked int `json:"unlocked"`
}

// UserAchievementStats is the derived aggregate handed to the presentation
// layer. It is recomputed on every evaluation, never stored as a source of
// truth.
type UserAchievementStats struct {
	TotalAchievements int                                `json:"total_achievements"`
	UnlockedCount     int                                `json:"unlocked_count"`
	TotalXP           int                                `json:"total_xp"`
	Level             catalog.LevelInfo                  `json:"level"`
	ByCategory        map[catalog.Category]CategoryCount `json:"by_category"`
	RecentUnlocks     []models.UnlockEvent               `json:"recent_unlocks"`
	CurrentStreak     int                                `json:"current_streak"`
	LongestStreak     int                                `json:"longest_streak"`
}

// AchievementView is a catalog entry joined with the user's state.
type AchievementView struct {
	catalog.Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
	Progress   int        `json:"progress"`
}

// AchievementService runs evaluations against the database. Concurrent
// evaluations for the same user are serialized optimistically via the state
// version column; a conflict surfaces as ErrStateConflict.
type AchievementService struct {
	db  *gorm.DB
	cat *catalog.Catalog
}

func NewAchievementService(db *gorm.DB, cat *catalog.Catalog) *AchievementService {
	return &AchievementService{db: db, cat: cat}
}

var achievementService *AchievementService

// InitAchievementService initializes the singleton used by the handlers.
func InitAchievementService(db *gorm.DB, cat *catalog.Catalog) {
	achievementService = NewAchievementService(db, cat)
}

// GetAchievementService returns the initialized singleton.
func GetAchievementService() *AchievementService {
	return achievementService
}

// Catalog exposes the service's catalog.
func (s *AchievementService) Catalog() *catalog.Catalog {
	return s.cat
}

// Evaluate runs a full evaluation for the user: builds a metrics snapshot,
// reconciles every achievement, persists state transitions and unlock events,
// refreshes the denormalized level columns, and returns the aggregate stats
// plus any newly unlocked achievements.
func (s *AchievementService) Evaluate(userID uint) (*UserAchievementStats, []catalog.Achievement, error) {
	var stats *UserAchievementStats
	var newUnlocks []catalog.Achievement

	err := s.db.Transaction(func(tx *gorm.DB) error {
		snapshot, metrics, err := BuildMetricsSnapshot(tx, userID)
		if err != nil {
			return err
		}

		var rows []models.AchievementState
		if err := tx.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
			return err
		}
		states := make(map[string]models.AchievementState, len(rows))
		for _, r := range rows {
			states[r.AchievementID] = r
		}

		updated, events := Reconcile(s.cat, states, snapshot, time.Now().UTC())

		for achievementID, st := range updated {
			prev, existed := states[achievementID]
			if !existed {
				st.UserID = userID
				st.Version = 1
				if err := tx.Create(&st).Error; err != nil {
					return err
				}
				continue
			}
			if st.Progress == prev.Progress && st.Unlocked == prev.Unlocked {
				continue
			}
			res := tx.Model(&models.AchievementState{}).
				Where("id = ? AND version = ?", prev.ID, prev.Version).
				Updates(map[string]interface{}{
					"unlocked":    st.Unlocked,
					"unlocked_at": st.UnlockedAt,
					"progress":    st.Progress,
					"version":     prev.Version + 1,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrStateConflict
			}
		}

		newUnlocks = make([]catalog.Achievement, 0, len(events))
		for i := range events {
			events[i].UserID = userID
			if err := tx.Create(&events[i]).Error; err != nil {
				return err
			}
			a, err := s.cat.Get(events[i].AchievementID)
			if err != nil {
				return err
			}
			newUnlocks = append(newUnlocks, a)
		}

		totalXP := 0
		unlockedCount := 0
		byCategory := make(map[catalog.Category]CategoryCount, len(catalog.Categories()))
		for _, a := range s.cat.All() {
			count := byCategory[a.Category]
			count.Total++
			if st, ok := updated[a.ID]; ok && st.Unlocked {
				count.Unlocked++
				unlockedCount++
				totalXP += a.XPReward
			}
			byCategory[a.Category] = count
		}

		level := catalog.DeriveLevel(totalXP)
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{"total_xp": totalXP, "level": level.Level}).Error; err != nil {
			return err
		}

		var recent []models.UnlockEvent
		if err := tx.Where("user_id = ?", userID).
			Order("unlocked_at DESC, id DESC").
			Limit(10).
			Find(&recent).Error; err != nil {
			return err
		}

		stats = &UserAchievementStats{
			TotalAchievements: s.cat.Len(),
			UnlockedCount:     unlockedCount,
			TotalXP:           totalXP,
			Level:             level,
			ByCategory:        byCategory,
			RecentUnlocks:     recent,
			CurrentStreak:     metrics.DailyStreak,
			LongestStreak:     metrics.LongestStreak,
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return stats, newUnlocks, nil
}

// JoinStates merges catalog entries with stored per-user state and applies
// the unlocked criterion, preserving the order of matched. The catalog itself
// is user-agnostic, so this is where the unlocked half of a filter lands. An
// achievement with no stored state reads as locked with zero progress.
func JoinStates(matched []catalog.Achievement, states map[string]models.AchievementState, f catalog.Filter) []AchievementView {
	out := make([]AchievementView, 0, len(matched))
	for _, a := range matched {
		st := states[a.ID]
		if f.Unlocked != nil && st.Unlocked != *f.Unlocked {
			continue
		}
		out = append(out, AchievementView{
			Achievement: a,
			Unlocked:    st.Unlocked,
			UnlockedAt:  st.UnlockedAt,
			Progress:    st.Progress,
		})
	}
	return out
}

// ListFiltered returns catalog entries matching the criteria joined with the
// user's stored state, preserving catalog order.
func (s *AchievementService) ListFiltered(userID uint, f catalog.Filter) ([]AchievementView, error) {
	var rows []models.AchievementState
	if err := s.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	states := make(map[string]models.AchievementState, len(rows))
	for _, r := range rows {
		states[r.AchievementID] = r
	}
	return JoinStates(s.cat.List(f), states, f), nil
}

// GetStreak returns the stored streak columns for the user. A missing row is
// not an error; it reads as all zeroes.
func (s *AchievementService) GetStreak(userID uint) (StreakResult, error) {
	var m models.UserMetrics
	err := s.db.Where("user_id = ?", userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return StreakResult{}, nil
	}
	if err != nil {
		return StreakResult{}, err
	}
	return StreakResult{
		CurrentStreak:       m.DailyStreak,
		LongestStreak:       m.LongestStreak,
		LastApplicationDate: m.LastApplicationDate,
		StreakStartDate:     m.StreakStartDate,
	}, nil
}

// RecentUnlocks returns the user's unlock log, most recent first.
func (s *AchievementService) RecentUnlocks(userID uint, limit int) ([]models.UnlockEvent, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var events []models.UnlockEvent
	err := s.db.Where("user_id = ?", userID).
		Order("unlocked_at DESC, id DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

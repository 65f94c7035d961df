package services

import (
	"testing"
	"time"

	"applytrak/catalog"
	"applytrak/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Achievement{
		{
			ID: "first", Name: "First", Description: "one application",
			Category: catalog.CategoryMilestone, Tier: catalog.TierBronze, Rarity: catalog.RarityCommon,
			XPReward:     50,
			Requirements: []catalog.Requirement{{Type: catalog.ReqApplications, Value: 1}},
		},
		{
			ID: "tenth", Name: "Tenth", Description: "ten applications",
			Category: catalog.CategoryMilestone, Tier: catalog.TierSilver, Rarity: catalog.RarityUncommon,
			XPReward:     100,
			Requirements: []catalog.Requirement{{Type: catalog.ReqApplications, Value: 10}},
			Dependencies: []string{"first"},
		},
		{
			ID: "week", Name: "Week", Description: "seven day streak",
			Category: catalog.CategoryStreak, Tier: catalog.TierGold, Rarity: catalog.RarityRare,
			XPReward:     200,
			Requirements: []catalog.Requirement{{Type: catalog.ReqStreak, Value: 7}},
		},
	})
	require.NoError(t, err)
	return cat
}

func TestReconcileUnlocksSatisfied(t *testing.T) {
	cat := testCatalog(t)
	now := time.Date(2026, time.July, 1, 12, 0, 0, 0, time.UTC)
	m := MetricsSnapshot{ApplicationCount: 3}

	updated, events := Reconcile(cat, nil, m, now)

	require.Len(t, events, 1)
	assert.Equal(t, "first", events[0].AchievementID)
	assert.Equal(t, 50, events[0].XPAwarded)
	assert.Equal(t, now, events[0].UnlockedAt)

	st := updated["first"]
	assert.True(t, st.Unlocked)
	assert.Equal(t, 100, st.Progress)
	require.NotNil(t, st.UnlockedAt)
	assert.Equal(t, now, *st.UnlockedAt)

	// requirements not yet met: locked but with progress
	st = updated["tenth"]
	assert.False(t, st.Unlocked)
	assert.Equal(t, 30, st.Progress)
	assert.Nil(t, st.UnlockedAt)

	st = updated["week"]
	assert.False(t, st.Unlocked)
	assert.Equal(t, 0, st.Progress)
}

func TestReconcileDependencyGating(t *testing.T) {
	now := time.Now().UTC()

	// tenth's requirements are met but its dependency cannot be satisfied:
	// progress is reported, the unlock is withheld
	gated, err := catalog.New([]catalog.Achievement{
		{
			ID: "first", Name: "First", Description: "unreachable",
			Category: catalog.CategoryMilestone, Tier: catalog.TierBronze, Rarity: catalog.RarityCommon,
			XPReward:     50,
			Requirements: []catalog.Requirement{{Type: catalog.ReqStreak, Value: 99}},
		},
		{
			ID: "tenth", Name: "Tenth", Description: "ten applications",
			Category: catalog.CategoryMilestone, Tier: catalog.TierSilver, Rarity: catalog.RarityUncommon,
			XPReward:     100,
			Requirements: []catalog.Requirement{{Type: catalog.ReqApplications, Value: 10}},
			Dependencies: []string{"first"},
		},
	})
	require.NoError(t, err)

	m := MetricsSnapshot{ApplicationCount: 10}
	updated, events := Reconcile(gated, nil, m, now)
	assert.Empty(t, events)

	st := updated["tenth"]
	assert.False(t, st.Unlocked)
	assert.Equal(t, 100, st.Progress)
}

func TestReconcileSamePassDependencyPropagation(t *testing.T) {
	cat := testCatalog(t)
	now := time.Now().UTC()

	// both first and tenth become satisfied in the same pass; evaluation
	// order lets first's unlock satisfy tenth's dependency immediately
	m := MetricsSnapshot{ApplicationCount: 10}
	updated, events := Reconcile(cat, nil, m, now)

	require.Len(t, events, 2)
	assert.Equal(t, "first", events[0].AchievementID)
	assert.Equal(t, "tenth", events[1].AchievementID)
	assert.True(t, updated["first"].Unlocked)
	assert.True(t, updated["tenth"].Unlocked)
}

func TestReconcileIdempotent(t *testing.T) {
	cat := testCatalog(t)
	now := time.Now().UTC()
	m := MetricsSnapshot{ApplicationCount: 10, DailyStreak: 7}

	first, events := Reconcile(cat, nil, m, now)
	require.Len(t, events, 3)

	// a second pass over unchanged inputs emits nothing and changes nothing
	later := now.Add(time.Hour)
	second, events := Reconcile(cat, first, m, later)
	assert.Empty(t, events)
	assert.Equal(t, first, second)
}

func TestReconcileNeverRelocks(t *testing.T) {
	cat := testCatalog(t)
	now := time.Now().UTC()
	unlockedAt := now.Add(-24 * time.Hour)

	// week was unlocked yesterday; today's streak has reset to zero
	states := map[string]models.AchievementState{
		"week": {AchievementID: "week", Unlocked: true, UnlockedAt: &unlockedAt, Progress: 100},
	}
	m := MetricsSnapshot{DailyStreak: 0}

	updated, events := Reconcile(cat, states, m, now)
	assert.Empty(t, events)

	st := updated["week"]
	assert.True(t, st.Unlocked)
	assert.Equal(t, 100, st.Progress)
	assert.Equal(t, unlockedAt, *st.UnlockedAt)
}

func TestJoinStatesUnlockedFilter(t *testing.T) {
	cat := testCatalog(t)
	now := time.Now().UTC()

	states := map[string]models.AchievementState{
		"first": {AchievementID: "first", Unlocked: true, UnlockedAt: &now, Progress: 100},
		"tenth": {AchievementID: "tenth", Progress: 40},
	}

	unlocked := true
	f := catalog.Filter{Category: catalog.CategoryMilestone, Unlocked: &unlocked}
	views := JoinStates(cat.List(f), states, f)
	require.Len(t, views, 1)
	assert.Equal(t, "first", views[0].ID)
	assert.True(t, views[0].Unlocked)

	locked := false
	f = catalog.Filter{Category: catalog.CategoryMilestone, Unlocked: &locked}
	views = JoinStates(cat.List(f), states, f)
	require.Len(t, views, 1)
	assert.Equal(t, "tenth", views[0].ID)
	assert.Equal(t, 40, views[0].Progress)

	// no stored state reads as locked; unlocked views keep catalog order
	states["week"] = models.AchievementState{AchievementID: "week", Unlocked: true, UnlockedAt: &now, Progress: 100}
	f = catalog.Filter{Unlocked: &unlocked}
	views = JoinStates(cat.List(f), states, f)
	require.Len(t, views, 2)
	assert.Equal(t, "first", views[0].ID)
	assert.Equal(t, "week", views[1].ID)
}

func TestJoinStatesNoCriterion(t *testing.T) {
	cat := testCatalog(t)

	views := JoinStates(cat.List(catalog.Filter{}), nil, catalog.Filter{})
	require.Len(t, views, 3)
	for _, v := range views {
		assert.False(t, v.Unlocked)
		assert.Equal(t, 0, v.Progress)
	}
}

func TestReconcileProgressCanDecrease(t *testing.T) {
	cat := testCatalog(t)
	now := time.Now().UTC()

	// a locked achievement's progress tracks the current snapshot, down
	// as well as up
	states := map[string]models.AchievementState{
		"week": {AchievementID: "week", Progress: 85},
	}
	m := MetricsSnapshot{DailyStreak: 2}

	updated, _ := Reconcile(cat, states, m, now)
	assert.Equal(t, 28, updated["week"].Progress)
}

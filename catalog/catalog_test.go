package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefs() []Achievement {
	return []Achievement{
		{
			ID: "a", Name: "A", Description: "first",
			Category: CategoryMilestone, Tier: TierBronze, Rarity: RarityCommon,
			XPReward: 50, Requirements: req(ReqApplications, 1, "one"),
		},
		{
			ID: "b", Name: "B", Description: "second",
			Category: CategoryMilestone, Tier: TierSilver, Rarity: RarityUncommon,
			XPReward: 100, Requirements: req(ReqApplications, 10, "ten"),
			Dependencies: []string{"a"},
		},
		{
			ID: "c", Name: "C", Description: "streaky",
			Category: CategoryStreak, Tier: TierGold, Rarity: RarityRare,
			XPReward: 200, Requirements: req(ReqStreak, 7, "week"),
		},
	}
}

func TestDefaultCatalogIsValid(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)
	assert.Greater(t, cat.Len(), 0)

	// every dependency precedes its dependent in evaluation order
	seen := map[string]bool{}
	for _, a := range cat.TopoOrder() {
		for _, dep := range a.Dependencies {
			assert.True(t, seen[dep], "%s depends on %s which comes later", a.ID, dep)
		}
		seen[a.ID] = true
	}
}

func TestGet(t *testing.T) {
	cat, err := New(testDefs())
	require.NoError(t, err)

	a, err := cat.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "B", a.Name)

	_, err = cat.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewRejectsDuplicateID(t *testing.T) {
	defs := testDefs()
	defs[2].ID = "a"
	_, err := New(defs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestNewRejectsUnknownTier(t *testing.T) {
	defs := testDefs()
	defs[0].Tier = "wooden"
	_, err := New(defs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tier")
}

func TestNewRejectsUnknownRequirementType(t *testing.T) {
	defs := testDefs()
	defs[0].Requirements = []Requirement{{Type: "vibes", Value: 1}}
	_, err := New(defs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown requirement type")
}

func TestNewRejectsMissingDependency(t *testing.T) {
	defs := testDefs()
	defs[1].Dependencies = []string{"ghost"}
	_, err := New(defs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dependency")
}

func TestNewRejectsDependencyCycle(t *testing.T) {
	defs := testDefs()
	defs[0].Dependencies = []string{"b"} // a -> b -> a
	_, err := New(defs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dependency cycle")
}

func TestNewRejectsNonPositiveXP(t *testing.T) {
	defs := testDefs()
	defs[0].XPReward = 0
	_, err := New(defs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xp reward")
}

func TestListFilters(t *testing.T) {
	cat, err := New(testDefs())
	require.NoError(t, err)

	milestones := cat.List(Filter{Category: CategoryMilestone})
	require.Len(t, milestones, 2)
	assert.Equal(t, "a", milestones[0].ID)
	assert.Equal(t, "b", milestones[1].ID)

	gold := cat.List(Filter{Tier: TierGold})
	require.Len(t, gold, 1)
	assert.Equal(t, "c", gold[0].ID)

	both := cat.List(Filter{Category: CategoryMilestone, Rarity: RarityUncommon})
	require.Len(t, both, 1)
	assert.Equal(t, "b", both[0].ID)

	none := cat.List(Filter{Category: CategoryStreak, Tier: TierBronze})
	assert.Empty(t, none)
}

func TestListSearchMatchesNameAndDescription(t *testing.T) {
	cat, err := New(testDefs())
	require.NoError(t, err)

	byName := cat.List(Filter{Search: "b"})
	require.Len(t, byName, 1)
	assert.Equal(t, "b", byName[0].ID)

	byDesc := cat.List(Filter{Search: "STREAKY"})
	require.Len(t, byDesc, 1)
	assert.Equal(t, "c", byDesc[0].ID)
}

func TestListPreservesCatalogOrder(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	all := cat.All()
	filtered := cat.List(Filter{})
	require.Equal(t, len(all), len(filtered))
	for i := range all {
		assert.Equal(t, all[i].ID, filtered[i].ID)
	}
}

func TestTopoOrderPreservesCatalogOrderForIndependents(t *testing.T) {
	cat, err := New(testDefs())
	require.NoError(t, err)

	order := cat.TopoOrder()
	require.Len(t, order, 3)
	assert.Equal(t, "a", order[0].ID)
	assert.Equal(t, "b", order[1].ID)
	assert.Equal(t, "c", order[2].ID)
}

func TestMetaLookups(t *testing.T) {
	info, ok := TierMeta(TierGold)
	require.True(t, ok)
	assert.Equal(t, "Gold", info.Label)

	_, ok = TierMeta("wooden")
	assert.False(t, ok)

	r, ok := RarityMeta(RarityEpic)
	require.True(t, ok)
	assert.Equal(t, 4, r.Order)

	c, ok := CategoryMeta(CategoryStreak)
	require.True(t, ok)
	assert.Equal(t, "Streaks", c.Label)

	assert.Len(t, Categories(), 6)
}

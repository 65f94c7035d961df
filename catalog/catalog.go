// catalog/catalog.go - static achievement catalog
//
// The catalog is process-wide configuration: built once at startup, validated,
// never mutated afterwards. Malformed definitions are a fatal startup error.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

type Category string

const (
	CategoryMilestone Category = "milestone"
	CategoryStreak    Category = "streak"
	CategoryGoal      Category = "goal"
	CategoryTime      Category = "time"
	CategoryQuality   Category = "quality"
	CategorySpecial   Category = "special"
)

type Tier string

const (
	TierBronze    Tier = "bronze"
	TierSilver    Tier = "silver"
	TierGold      Tier = "gold"
	TierPlatinum  Tier = "platinum"
	TierDiamond   Tier = "diamond"
	TierLegendary Tier = "legendary"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

type RequirementType string

const (
	ReqApplications RequirementType = "applications"
	ReqStreak       RequirementType = "streak"
	ReqGoals        RequirementType = "goals"
	ReqProfile      RequirementType = "profile"
	ReqTime         RequirementType = "time"
	ReqQuality      RequirementType = "quality"
)

// Requirement is a single threshold condition. An achievement unlocks when all
// of its requirements are met and all dependencies are already unlocked.
type Requirement struct {
	Type        RequirementType `json:"type"`
	Value       float64         `json:"value"`
	Description string          `json:"description"`
}

type Achievement struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Category     Category      `json:"category"`
	Tier         Tier          `json:"tier"`
	Rarity       Rarity        `json:"rarity"`
	Icon         string        `json:"icon"`
	XPReward     int           `json:"xp_reward"`
	Requirements []Requirement `json:"requirements"`
	Dependencies []string      `json:"dependencies,omitempty"`
}

// Display metadata for the classification axes. Order increases with
// difficulty (tiers) and scarcity (rarities).
type TierInfo struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

type RarityInfo struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

type CategoryInfo struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var tierInfo = map[Tier]TierInfo{
	TierBronze:    {Label: "Bronze", Color: "#cd7f32", Order: 1},
	TierSilver:    {Label: "Silver", Color: "#c0c0c0", Order: 2},
	TierGold:      {Label: "Gold", Color: "#ffd700", Order: 3},
	TierPlatinum:  {Label: "Platinum", Color: "#e5e4e2", Order: 4},
	TierDiamond:   {Label: "Diamond", Color: "#b9f2ff", Order: 5},
	TierLegendary: {Label: "Legendary", Color: "#ff8c00", Order: 6},
}

var rarityInfo = map[Rarity]RarityInfo{
	RarityCommon:    {Label: "Common", Color: "#9ca3af", Order: 1},
	RarityUncommon:  {Label: "Uncommon", Color: "#22c55e", Order: 2},
	RarityRare:      {Label: "Rare", Color: "#3b82f6", Order: 3},
	RarityEpic:      {Label: "Epic", Color: "#a855f7", Order: 4},
	RarityLegendary: {Label: "Legendary", Color: "#f59e0b", Order: 5},
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryMilestone: {Label: "Milestones", Icon: "🎯"},
	CategoryStreak:    {Label: "Streaks", Icon: "🔥"},
	CategoryGoal:      {Label: "Goals", Icon: "📈"},
	CategoryTime:      {Label: "Dedication", Icon: "⏳"},
	CategoryQuality:   {Label: "Quality", Icon: "💎"},
	CategorySpecial:   {Label: "Special", Icon: "⭐"},
}

// TierMeta returns display metadata for a tier.
func TierMeta(t Tier) (TierInfo, bool) {
	info, ok := tierInfo[t]
	return info, ok
}

// RarityMeta returns display metadata for a rarity.
func RarityMeta(r Rarity) (RarityInfo, bool) {
	info, ok := rarityInfo[r]
	return info, ok
}

// CategoryMeta returns display metadata for a category.
func CategoryMeta(c Category) (CategoryInfo, bool) {
	info, ok := categoryInfo[c]
	return info, ok
}

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{
		CategoryMilestone, CategoryStreak, CategoryGoal,
		CategoryTime, CategoryQuality, CategorySpecial,
	}
}

// ErrNotFound is returned when an achievement id is not in the catalog.
var ErrNotFound = errors.New("achievement not found")

// Filter narrows a catalog listing. Zero values mean "no constraint".
// Unlocked is applied by the caller against per-user state; the catalog itself
// only filters the static axes.
type Filter struct {
	Category Category `json:"category,omitempty"`
	Tier     Tier     `json:"tier,omitempty"`
	Rarity   Rarity   `json:"rarity,omitempty"`
	Search   string   `json:"search,omitempty"`
	Unlocked *bool    `json:"unlocked,omitempty"`
}

func (f Filter) matches(a Achievement) bool {
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	if f.Tier != "" && a.Tier != f.Tier {
		return false
	}
	if f.Rarity != "" && a.Rarity != f.Rarity {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(a.Name), q) &&
			!strings.Contains(strings.ToLower(a.Description), q) {
			return false
		}
	}
	return true
}

// Catalog is the validated, immutable list of achievement definitions.
type Catalog struct {
	list []Achievement
	byID map[string]int
	topo []int // indexes into list, dependencies before dependents
}

// New builds and validates a catalog from the given definitions.
func New(defs []Achievement) (*Catalog, error) {
	c := &Catalog{
		list: make([]Achievement, len(defs)),
		byID: make(map[string]int, len(defs)),
	}
	copy(c.list, defs)

	for i, a := range c.list {
		if a.ID == "" {
			return nil, fmt.Errorf("achievement %q: empty id", a.Name)
		}
		if _, dup := c.byID[a.ID]; dup {
			return nil, fmt.Errorf("achievement %q: duplicate id %q", a.Name, a.ID)
		}
		if a.Name == "" || a.Description == "" {
			return nil, fmt.Errorf("achievement %q: missing name or description", a.ID)
		}
		if _, ok := categoryInfo[a.Category]; !ok {
			return nil, fmt.Errorf("achievement %q: unknown category %q", a.ID, a.Category)
		}
		if _, ok := tierInfo[a.Tier]; !ok {
			return nil, fmt.Errorf("achievement %q: unknown tier %q", a.ID, a.Tier)
		}
		if _, ok := rarityInfo[a.Rarity]; !ok {
			return nil, fmt.Errorf("achievement %q: unknown rarity %q", a.ID, a.Rarity)
		}
		if a.XPReward <= 0 {
			return nil, fmt.Errorf("achievement %q: xp reward must be positive", a.ID)
		}
		if len(a.Requirements) == 0 {
			return nil, fmt.Errorf("achievement %q: no requirements", a.ID)
		}
		for _, r := range a.Requirements {
			switch r.Type {
			case ReqApplications, ReqStreak, ReqGoals, ReqProfile, ReqTime, ReqQuality:
			default:
				return nil, fmt.Errorf("achievement %q: unknown requirement type %q", a.ID, r.Type)
			}
			if r.Value < 0 {
				return nil, fmt.Errorf("achievement %q: negative requirement value", a.ID)
			}
		}
		c.byID[a.ID] = i
	}

	for _, a := range c.list {
		for _, dep := range a.Dependencies {
			if _, ok := c.byID[dep]; !ok {
				return nil, fmt.Errorf("achievement %q: unknown dependency %q", a.ID, dep)
			}
		}
	}

	topo, err := c.sortTopological()
	if err != nil {
		return nil, err
	}
	c.topo = topo

	return c, nil
}

// sortTopological orders achievements so that every dependency comes before
// its dependents, preserving catalog order among independent entries. A cycle
// is a configuration error.
func (c *Catalog) sortTopological() ([]int, error) {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)

	state := make([]int, len(c.list))
	order := make([]int, 0, len(c.list))

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("achievement %q: dependency cycle", c.list[i].ID)
		}
		state[i] = visiting
		for _, dep := range c.list[i].Dependencies {
			if err := visit(c.byID[dep]); err != nil {
				return err
			}
		}
		state[i] = done
		order = append(order, i)
		return nil
	}

	for i := range c.list {
		if err := visit(i); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Get returns the achievement with the given id, or ErrNotFound.
func (c *Catalog) Get(id string) (Achievement, error) {
	i, ok := c.byID[id]
	if !ok {
		return Achievement{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.list[i], nil
}

// All returns every achievement in catalog order.
func (c *Catalog) All() []Achievement {
	out := make([]Achievement, len(c.list))
	copy(out, c.list)
	return out
}

// List returns achievements matching the static axes of the filter,
// preserving catalog order. The Unlocked criterion is applied by the caller.
func (c *Catalog) List(f Filter) []Achievement {
	out := make([]Achievement, 0, len(c.list))
	for _, a := range c.list {
		if f.matches(a) {
			out = append(out, a)
		}
	}
	return out
}

// TopoOrder returns every achievement with dependencies ordered before
// dependents. The unlock engine iterates in this order so an achievement
// unlocked earlier in a pass can satisfy a dependency later in the same pass.
func (c *Catalog) TopoOrder() []Achievement {
	out := make([]Achievement, 0, len(c.topo))
	for _, i := range c.topo {
		out = append(out, c.list[i])
	}
	return out
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.list)
}

var (
	defaultCatalog *Catalog
	defaultOnce    sync.Once
	defaultErr     error
)

// Default returns the built-in catalog, building and validating it on first
// use.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = New(definitions())
	})
	return defaultCatalog, defaultErr
}

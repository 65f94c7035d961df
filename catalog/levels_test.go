package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelThresholdsStrictlyIncreasing(t *testing.T) {
	for i := 1; i < len(levelThresholds); i++ {
		assert.Greater(t, levelThresholds[i], levelThresholds[i-1])
	}
	assert.Equal(t, 0, levelThresholds[0])
}

func TestDeriveLevelBoundaries(t *testing.T) {
	// exactly at a threshold means AT that level
	info := DeriveLevel(100)
	assert.Equal(t, 2, info.Level)

	// one below stays at the previous level
	info = DeriveLevel(99)
	assert.Equal(t, 1, info.Level)
	assert.Equal(t, 1, info.XPToNext)

	info = DeriveLevel(0)
	assert.Equal(t, 1, info.Level)
	assert.Equal(t, 100, info.XPToNext)

	info = DeriveLevel(250)
	assert.Equal(t, 3, info.Level)
	assert.Equal(t, 200, info.XPToNext)
}

func TestDeriveLevelTerminal(t *testing.T) {
	top := levelThresholds[len(levelThresholds)-1]

	info := DeriveLevel(top)
	assert.Equal(t, MaxLevel(), info.Level)
	assert.Equal(t, 0, info.XPToNext)

	// XP past the terminal threshold does not escalate further
	info = DeriveLevel(top + 100000)
	assert.Equal(t, MaxLevel(), info.Level)
	assert.Equal(t, 0, info.XPToNext)
}

func TestDeriveLevelNegativeXP(t *testing.T) {
	info := DeriveLevel(-50)
	assert.Equal(t, 1, info.Level)
	assert.Equal(t, 100, info.XPToNext)
}

func TestDeriveLevelTitleBands(t *testing.T) {
	require.Len(t, levelTitles, len(levelColors))

	assert.Equal(t, "Job Seeker", DeriveLevel(0).Title)

	// level 6 opens the second band
	info := DeriveLevel(levelThresholds[5])
	require.Equal(t, 6, info.Level)
	assert.Equal(t, "Dedicated Applicant", info.Title)

	top := DeriveLevel(levelThresholds[len(levelThresholds)-1])
	assert.Equal(t, "Offer Magnet", top.Title)
}

func TestDeriveLevelMonotonic(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 20000; xp += 50 {
		level := DeriveLevel(xp).Level
		assert.GreaterOrEqual(t, level, prev, "level dropped at %d XP", xp)
		prev = level
	}
}

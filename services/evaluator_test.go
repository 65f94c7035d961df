package services

import (
	"testing"

	"applytrak/catalog"

	"github.com/stretchr/testify/assert"
)

func TestRequirementProgressClamped(t *testing.T) {
	m := MetricsSnapshot{ApplicationCount: 5}

	r := catalog.Requirement{Type: catalog.ReqApplications, Value: 10}
	assert.Equal(t, 50, RequirementProgress(m, r))
	assert.False(t, RequirementSatisfied(m, r))

	// value past the threshold clamps to 100
	r.Value = 2
	assert.Equal(t, 100, RequirementProgress(m, r))
	assert.True(t, RequirementSatisfied(m, r))

	// exactly at the threshold satisfies
	r.Value = 5
	assert.Equal(t, 100, RequirementProgress(m, r))
	assert.True(t, RequirementSatisfied(m, r))
}

func TestRequirementZeroThresholdAlwaysSatisfied(t *testing.T) {
	m := MetricsSnapshot{}
	r := catalog.Requirement{Type: catalog.ReqTime, Value: 0}
	assert.Equal(t, 100, RequirementProgress(m, r))
	assert.True(t, RequirementSatisfied(m, r))
}

func TestMetricValueMapping(t *testing.T) {
	m := MetricsSnapshot{
		ApplicationCount:    7,
		DailyStreak:         3,
		WeeklyGoalProgress:  40,
		MonthlyGoalProgress: 60,
		ProfileCompleteness: 83,
		QualityScore:        25,
		ElapsedDays:         12,
	}

	assert.Equal(t, 7.0, metricValue(m, catalog.ReqApplications))
	assert.Equal(t, 3.0, metricValue(m, catalog.ReqStreak))
	assert.Equal(t, 83.0, metricValue(m, catalog.ReqProfile))
	assert.Equal(t, 25.0, metricValue(m, catalog.ReqQuality))
	assert.Equal(t, 12.0, metricValue(m, catalog.ReqTime))

	// goals reads the further-along of the two goal windows
	assert.Equal(t, 60.0, metricValue(m, catalog.ReqGoals))
	m.WeeklyGoalProgress = 90
	assert.Equal(t, 90.0, metricValue(m, catalog.ReqGoals))
}

func TestEvaluateAchievementMultiRequirement(t *testing.T) {
	a := catalog.Achievement{
		ID: "combo",
		Requirements: []catalog.Requirement{
			{Type: catalog.ReqApplications, Value: 10},
			{Type: catalog.ReqStreak, Value: 4},
		},
	}

	// one requirement met, the other halfway: overall progress is the
	// binding constraint and the achievement is not satisfied
	m := MetricsSnapshot{ApplicationCount: 10, DailyStreak: 2}
	ev := EvaluateAchievement(m, a)
	assert.Equal(t, 50, ev.Progress)
	assert.False(t, ev.Satisfied)

	m.DailyStreak = 4
	ev = EvaluateAchievement(m, a)
	assert.Equal(t, 100, ev.Progress)
	assert.True(t, ev.Satisfied)
}

func TestEvaluateAchievementSingleRequirement(t *testing.T) {
	a := catalog.Achievement{
		ID:           "solo",
		Requirements: []catalog.Requirement{{Type: catalog.ReqProfile, Value: 100}},
	}

	ev := EvaluateAchievement(MetricsSnapshot{ProfileCompleteness: 66}, a)
	assert.Equal(t, 66, ev.Progress)
	assert.False(t, ev.Satisfied)

	ev = EvaluateAchievement(MetricsSnapshot{ProfileCompleteness: 100}, a)
	assert.Equal(t, 100, ev.Progress)
	assert.True(t, ev.Satisfied)
}

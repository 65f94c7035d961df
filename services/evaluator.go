// services/evaluator.go - pure requirement evaluation
package services

import (
	"applytrak/catalog"
)

// MetricsSnapshot is the per-user input to requirement evaluation. It is
// assembled from the data store immediately before each evaluation; the
// evaluator itself touches nothing else.
type MetricsSnapshot struct {
	ApplicationCount    int `json:"application_count"`
	DailyStreak         int `json:"daily_streak"`
	WeeklyGoalProgress  int `json:"weekly_goal_progress"`
	MonthlyGoalProgress int `json:"monthly_goal_progress"`
	ProfileCompleteness int `json:"profile_completeness"`
	QualityScore        int `json:"quality_score"`
	ElapsedDays         int `json:"elapsed_days"`
}

// metricValue maps a requirement type onto the snapshot field it thresholds.
// The "goals" type reads whichever of the weekly/monthly goal progress values
// is further along.
func metricValue(m MetricsSnapshot, t catalog.RequirementType) float64 {
	switch t {
	case catalog.ReqApplications:
		return float64(m.ApplicationCount)
	case catalog.ReqStreak:
		return float64(m.DailyStreak)
	case catalog.ReqGoals:
		if m.WeeklyGoalProgress > m.MonthlyGoalProgress {
			return float64(m.WeeklyGoalProgress)
		}
		return float64(m.MonthlyGoalProgress)
	case catalog.ReqProfile:
		return float64(m.ProfileCompleteness)
	case catalog.ReqTime:
		return float64(m.ElapsedDays)
	case catalog.ReqQuality:
		return float64(m.QualityScore)
	}
	return 0
}

// RequirementProgress returns completion of a single requirement in [0,100].
// A threshold of zero counts as already satisfied.
func RequirementProgress(m MetricsSnapshot, r catalog.Requirement) int {
	if r.Value <= 0 {
		return 100
	}
	p := 100 * metricValue(m, r.Type) / r.Value
	if p >= 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return int(p)
}

// RequirementSatisfied reports whether a single requirement is met.
func RequirementSatisfied(m MetricsSnapshot, r catalog.Requirement) bool {
	if r.Value <= 0 {
		return true
	}
	return metricValue(m, r.Type) >= r.Value
}

// Evaluation is the outcome of evaluating one achievement against a snapshot.
// Satisfied covers the achievement's own requirements only; dependency gating
// happens in the unlock engine, which still reports progress for gated
// achievements.
type Evaluation struct {
	Progress  int
	Satisfied bool
}

// EvaluateAchievement computes overall progress and satisfaction. With
// multiple requirements the overall progress is the minimum across them (the
// binding constraint) and all must be satisfied.
func EvaluateAchievement(m MetricsSnapshot, a catalog.Achievement) Evaluation {
	progress := 100
	satisfied := true
	for _, r := range a.Requirements {
		if p := RequirementProgress(m, r); p < progress {
			progress = p
		}
		if !RequirementSatisfied(m, r) {
			satisfied = false
		}
	}
	return Evaluation{Progress: progress, Satisfied: satisfied}
}

// catalog/defs.go - built-in achievement definitions
package catalog

import "github.com/gosimple/slug"

// id derives a catalog id from an achievement name. Ids are stable as long as
// the name is; renaming an achievement changes its id and orphans stored
// state, so treat names as frozen once shipped.
func id(name string) string {
	return slug.Make(name)
}

func def(name, description string, cat Category, tier Tier, rarity Rarity, icon string, xp int, reqs []Requirement, deps ...string) Achievement {
	return Achievement{
		ID:           id(name),
		Name:         name,
		Description:  description,
		Category:     cat,
		Tier:         tier,
		Rarity:       rarity,
		Icon:         icon,
		XPReward:     xp,
		Requirements: reqs,
		Dependencies: deps,
	}
}

func req(t RequirementType, value float64, description string) []Requirement {
	return []Requirement{{Type: t, Value: value, Description: description}}
}

func definitions() []Achievement {
	return []Achievement{
		// Milestones: total applications logged
		def("First Steps", "Log your first job application",
			CategoryMilestone, TierBronze, RarityCommon, "👣", 50,
			req(ReqApplications, 1, "Log 1 application")),
		def("Getting Started", "Log 10 job applications",
			CategoryMilestone, TierBronze, RarityCommon, "📝", 100,
			req(ReqApplications, 10, "Log 10 applications"),
			id("First Steps")),
		def("Quarter Century", "Log 25 job applications",
			CategoryMilestone, TierSilver, RarityUncommon, "📋", 200,
			req(ReqApplications, 25, "Log 25 applications"),
			id("Getting Started")),
		def("Half Century", "Log 50 job applications",
			CategoryMilestone, TierGold, RarityRare, "🏅", 350,
			req(ReqApplications, 50, "Log 50 applications"),
			id("Quarter Century")),
		def("Centurion", "Log 100 job applications",
			CategoryMilestone, TierPlatinum, RarityEpic, "💯", 600,
			req(ReqApplications, 100, "Log 100 applications"),
			id("Half Century")),
		def("Application Legend", "Log 250 job applications",
			CategoryMilestone, TierLegendary, RarityLegendary, "👑", 1500,
			req(ReqApplications, 250, "Log 250 applications"),
			id("Centurion")),

		// Streaks: consecutive days with at least one application
		def("Warming Up", "Apply on 3 consecutive days",
			CategoryStreak, TierBronze, RarityCommon, "🔥", 75,
			req(ReqStreak, 3, "Reach a 3-day streak")),
		def("On Fire", "Apply on 7 consecutive days",
			CategoryStreak, TierSilver, RarityUncommon, "🚒", 150,
			req(ReqStreak, 7, "Reach a 7-day streak"),
			id("Warming Up")),
		def("Unstoppable", "Apply on 14 consecutive days",
			CategoryStreak, TierGold, RarityRare, "⚡", 300,
			req(ReqStreak, 14, "Reach a 14-day streak"),
			id("On Fire")),
		def("Iron Will", "Apply on 30 consecutive days",
			CategoryStreak, TierDiamond, RarityEpic, "🛡️", 750,
			req(ReqStreak, 30, "Reach a 30-day streak"),
			id("Unstoppable")),

		// Goals: weekly/monthly goal progress
		def("Goal Setter", "Reach half of a weekly or monthly goal",
			CategoryGoal, TierBronze, RarityCommon, "🎯", 50,
			req(ReqGoals, 50, "Reach 50% goal progress")),
		def("Goal Getter", "Fully complete a weekly or monthly goal",
			CategoryGoal, TierSilver, RarityUncommon, "✅", 150,
			req(ReqGoals, 100, "Reach 100% goal progress"),
			id("Goal Setter")),
		def("Overachiever", "Complete a goal while holding a 7-day streak",
			CategoryGoal, TierGold, RarityRare, "🌟", 400,
			[]Requirement{
				{Type: ReqGoals, Value: 100, Description: "Reach 100% goal progress"},
				{Type: ReqStreak, Value: 7, Description: "Hold a 7-day streak"},
			},
			id("Goal Getter"), id("On Fire")),

		// Time: days since signing up
		def("One Week In", "Track your search for a week",
			CategoryTime, TierBronze, RarityCommon, "📅", 50,
			req(ReqTime, 7, "Use ApplyTrak for 7 days")),
		def("Monthly Regular", "Track your search for a month",
			CategoryTime, TierSilver, RarityUncommon, "🗓️", 150,
			req(ReqTime, 30, "Use ApplyTrak for 30 days"),
			id("One Week In")),
		def("Quarterly Veteran", "Track your search for three months",
			CategoryTime, TierGold, RarityRare, "⏳", 300,
			req(ReqTime, 90, "Use ApplyTrak for 90 days"),
			id("Monthly Regular")),
		def("Year One", "Track your search for a full year",
			CategoryTime, TierDiamond, RarityEpic, "🎂", 800,
			req(ReqTime, 365, "Use ApplyTrak for 365 days"),
			id("Quarterly Veteran")),

		// Quality: share of applications progressing past Applied
		def("First Interview", "Advance an application past the initial stage",
			CategoryQuality, TierBronze, RarityUncommon, "🤝", 100,
			req(ReqQuality, 1, "Advance at least one application")),
		def("Conversion Machine", "Advance a quarter of your applications",
			CategoryQuality, TierGold, RarityRare, "📊", 400,
			[]Requirement{
				{Type: ReqQuality, Value: 25, Description: "Reach a 25% advance rate"},
				{Type: ReqApplications, Value: 20, Description: "Log 20 applications"},
			},
			id("First Interview")),

		// Special
		def("Identity Established", "Complete your profile",
			CategorySpecial, TierBronze, RarityCommon, "🪪", 75,
			req(ReqProfile, 100, "Fill in every profile field")),
		def("The Full Package", "A complete profile, 50 applications and a 7-day streak",
			CategorySpecial, TierPlatinum, RarityEpic, "🎁", 1000,
			[]Requirement{
				{Type: ReqProfile, Value: 100, Description: "Complete your profile"},
				{Type: ReqApplications, Value: 50, Description: "Log 50 applications"},
				{Type: ReqStreak, Value: 7, Description: "Hold a 7-day streak"},
			},
			id("Identity Established"), id("Half Century"), id("On Fire")),
		def("Welcome Aboard", "Create an account",
			CategorySpecial, TierBronze, RarityCommon, "🎉", 25,
			req(ReqTime, 0, "Sign up")),
	}
}

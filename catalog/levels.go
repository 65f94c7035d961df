// catalog/levels.go - XP level curve and title bands
package catalog

// levelThresholds[i] is the cumulative XP required to be at level i+1.
// Thresholds are strictly increasing; a user whose total XP equals a
// threshold exactly is AT that level. The last entry is the terminal level.
var levelThresholds = []int{
	0,     // 1
	100,   // 2
	250,   // 3
	450,   // 4
	700,   // 5
	1000,  // 6
	1350,  // 7
	1750,  // 8
	2200,  // 9
	2700,  // 10
	3300,  // 11
	4000,  // 12
	4800,  // 13
	5700,  // 14
	6700,  // 15
	7900,  // 16
	9300,  // 17
	10900, // 18
	12700, // 19
	14700, // 20
}

// Titles and colors are shared across bands of 5 levels (1-5, 6-10, ...).
var levelTitles = []string{
	"Job Seeker",
	"Dedicated Applicant",
	"Career Hunter",
	"Offer Magnet",
}

var levelColors = []string{
	"#9ca3af",
	"#3b82f6",
	"#a855f7",
	"#f59e0b",
}

// LevelInfo is the result of mapping total XP onto the level curve.
type LevelInfo struct {
	Level    int    `json:"level"`
	Title    string `json:"title"`
	Color    string `json:"color"`
	XPToNext int    `json:"xp_to_next"`
}

// MaxLevel is the terminal level; no further title escalation occurs past it.
func MaxLevel() int {
	return len(levelThresholds)
}

// DeriveLevel maps a total XP amount onto the level curve.
func DeriveLevel(totalXP int) LevelInfo {
	if totalXP < 0 {
		totalXP = 0
	}

	level := 1
	for i := len(levelThresholds) - 1; i >= 0; i-- {
		if totalXP >= levelThresholds[i] {
			level = i + 1
			break
		}
	}

	band := (level - 1) / 5
	if band >= len(levelTitles) {
		band = len(levelTitles) - 1
	}

	xpToNext := 0
	if level < len(levelThresholds) {
		xpToNext = levelThresholds[level] - totalXP
		if xpToNext < 0 {
			xpToNext = 0
		}
	}

	return LevelInfo{
		Level:    level,
		Title:    levelTitles[band],
		Color:    levelColors[band],
		XPToNext: xpToNext,
	}
}

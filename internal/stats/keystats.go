package stats

// PositionKeyStats weights the metrics that define performance at each
// position category. The ranking engine scores players on these; the SWOT
// engine classifies them into strengths and weaknesses.
var PositionKeyStats = map[string]map[string]float64{
	"goalkeeper": {
		"gkSaves":                  1.5,
		"gkSavesPercent":           2.0,
		"gkConcededGoals":          1.5,
		"cleanSheets":              1.2,
		"gkExits":                  1.0,
		"gkSuccessfulExitsPercent": 1.0,
		"successfulPassesPercent":  0.8,
		"successfulLongPassesPercent": 0.8,
	},
	"centre_back": {
		"defensiveDuelsWonPercent": 2.0,
		"aerialDuelsWonPercent":    1.8,
		"interceptions":            1.5,
		"clearances":               1.2,
		"shotsBlocked":             1.0,
		"successfulPassesPercent":  1.0,
		"forwardPasses":            0.8,
		"losses":                   1.0,
	},
	"full_back": {
		"crosses":                  1.5,
		"successfulCrossesPercent": 1.2,
		"defensiveDuelsWonPercent": 1.5,
		"progressiveRun":           1.2,
		"interceptions":            1.2,
		"keyPasses":                1.0,
		"accelerations":            1.0,
		"recoveries":               0.8,
	},
	"defensive_midfield": {
		"interceptions":            1.8,
		"defensiveDuelsWonPercent": 1.8,
		"recoveries":               1.5,
		"successfulPassesPercent":  1.5,
		"forwardPasses":            1.2,
		"slidingTackles":           1.0,
		"losses":                   1.2,
	},
	"central_midfield": {
		"passes":                   1.5,
		"successfulPassesPercent":  1.8,
		"progressivePasses":        1.5,
		"keyPasses":                1.2,
		"recoveries":               1.0,
		"duelsWonPercent":          1.0,
		"xgAssist":                 1.0,
	},
	"attacking_midfield": {
		"keyPasses":                 1.8,
		"xgAssist":                  1.8,
		"throughPasses":             1.5,
		"assists":                   1.5,
		"dribbles":                  1.2,
		"goals":                     1.2,
		"touchInBox":                1.0,
	},
	"winger": {
		"dribbles":                  1.8,
		"successfulDribblesPercent": 1.5,
		"crosses":                   1.5,
		"accelerations":             1.2,
		"xgAssist":                  1.2,
		"goals":                     1.2,
		"progressiveRun":            1.5,
	},
	"striker": {
		"goals":                 2.0,
		"xgShot":                1.8,
		"shotsOnTarget":         1.5,
		"goalConversionPercent": 1.5,
		"touchInBox":            1.2,
		"aerialDuelsWonPercent": 1.0,
		"offensiveDuelsWonPercent": 0.8,
	},
}

// KeyStatsForPosition returns the key-stat weight table for a position code.
// Unknown codes fall back to the central midfield profile, the most neutral
// outfield set.
func KeyStatsForPosition(position string) map[string]float64 {
	category, ok := PositionCategory[position]
	if !ok {
		category = "central_midfield"
	}
	if ks, ok := PositionKeyStats[category]; ok {
		return ks
	}
	return PositionKeyStats["central_midfield"]
}

package stats

import "github.com/scoutlens/scoutlens/internal/models"

// MetricBucket maps every known metric name to the bucket it lives in. A
// metric belongs to exactly one bucket; search parameters and profile
// definitions resolve their bucket through this table.
var MetricBucket = map[string]string{
	// total: season-cumulative counts
	"goals":            models.BucketTotal,
	"assists":          models.BucketTotal,
	"matches":          models.BucketTotal,
	"matchesInStart":   models.BucketTotal,
	"minutesOnField":   models.BucketTotal,
	"yellowCards":      models.BucketTotal,
	"redCards":         models.BucketTotal,
	"cleanSheets":      models.BucketTotal,
	"gkConcededGoals":  models.BucketTotal,

	// average: per-90 rates
	"shots":             models.BucketAverage,
	"shotsOnTarget":     models.BucketAverage,
	"xgShot":            models.BucketAverage,
	"xgAssist":          models.BucketAverage,
	"touchInBox":        models.BucketAverage,
	"passes":            models.BucketAverage,
	"forwardPasses":     models.BucketAverage,
	"longPasses":        models.BucketAverage,
	"keyPasses":         models.BucketAverage,
	"throughPasses":     models.BucketAverage,
	"crosses":           models.BucketAverage,
	"progressivePasses": models.BucketAverage,
	"passesToFinalThird": models.BucketAverage,
	"progressiveRun":    models.BucketAverage,
	"dribbles":          models.BucketAverage,
	"accelerations":     models.BucketAverage,
	"duels":             models.BucketAverage,
	"duelsWon":          models.BucketAverage,
	"defensiveDuels":    models.BucketAverage,
	"defensiveDuelsWon": models.BucketAverage,
	"offensiveDuels":    models.BucketAverage,
	"aerialDuels":       models.BucketAverage,
	"interceptions":     models.BucketAverage,
	"slidingTackles":    models.BucketAverage,
	"shotsBlocked":      models.BucketAverage,
	"clearances":        models.BucketAverage,
	"fouls":             models.BucketAverage,
	"losses":            models.BucketAverage,
	"recoveries":        models.BucketAverage,
	"gkSaves":           models.BucketAverage,
	"gkExits":           models.BucketAverage,
	"gkAerialDuels":     models.BucketAverage,

	// percent: pre-computed efficiency ratios
	"successfulPassesPercent":         models.BucketPercent,
	"successfulForwardPassesPercent":  models.BucketPercent,
	"successfulLongPassesPercent":     models.BucketPercent,
	"successfulThroughPassesPercent":  models.BucketPercent,
	"successfulCrossesPercent":        models.BucketPercent,
	"successfulDribblesPercent":       models.BucketPercent,
	"duelsWonPercent":                 models.BucketPercent,
	"defensiveDuelsWonPercent":        models.BucketPercent,
	"offensiveDuelsWonPercent":        models.BucketPercent,
	"aerialDuelsWonPercent":           models.BucketPercent,
	"successfulSlidingTacklesPercent": models.BucketPercent,
	"shotsOnTargetPercent":            models.BucketPercent,
	"goalConversionPercent":           models.BucketPercent,
	"gkSavesPercent":                  models.BucketPercent,
	"gkSuccessfulExitsPercent":        models.BucketPercent,
}

// NegativeMetrics lists metrics where a lower raw value is preferable.
// Percentile and z-score direction is mirrored for these after the base
// computation.
var NegativeMetrics = map[string]bool{
	"yellowCards":     true,
	"redCards":        true,
	"fouls":           true,
	"losses":          true,
	"gkConcededGoals": true,
}

// Position codes grouped into the categories tactical profiles are defined
// against.
var PositionCategory = map[string]string{
	"gk":   "goalkeeper",
	"cb":   "centre_back",
	"lcb":  "centre_back",
	"rcb":  "centre_back",
	"lb":   "full_back",
	"rb":   "full_back",
	"lwb":  "full_back",
	"rwb":  "full_back",
	"dmf":  "defensive_midfield",
	"lcmf": "central_midfield",
	"rcmf": "central_midfield",
	"amf":  "attacking_midfield",
	"ss":   "attacking_midfield",
	"lw":   "winger",
	"rw":   "winger",
	"cf":   "striker",
}

// ValidPositionCodes is the closed set accepted by search parameters.
var ValidPositionCodes = func() map[string]bool {
	codes := make(map[string]bool, len(PositionCategory))
	for code := range PositionCategory {
		codes[code] = true
	}
	return codes
}()

// OutfieldCategories organizes percentile output into football-meaningful
// groups for outfield players.
var OutfieldCategories = map[string][]string{
	"attacking": {
		"goals", "assists", "shots", "shotsOnTarget", "xgShot",
		"goalConversionPercent", "touchInBox",
	},
	"passing": {
		"passes", "successfulPassesPercent", "forwardPasses", "keyPasses",
		"throughPasses", "crosses", "progressivePasses", "passesToFinalThird",
		"xgAssist",
	},
	"defensive": {
		"defensiveDuels", "defensiveDuelsWonPercent", "interceptions",
		"slidingTackles", "successfulSlidingTacklesPercent", "shotsBlocked",
		"clearances", "recoveries",
	},
	"possession": {
		"dribbles", "successfulDribblesPercent", "progressiveRun",
		"offensiveDuelsWonPercent", "losses",
	},
	"physical": {
		"duels", "duelsWon", "duelsWonPercent", "aerialDuels",
		"aerialDuelsWonPercent", "accelerations", "fouls",
	},
}

// GoalkeeperCategories is the category map used when the player's primary
// position is in goal.
var GoalkeeperCategories = map[string][]string{
	"shot_stopping": {
		"gkSaves", "gkSavesPercent", "gkConcededGoals", "cleanSheets",
	},
	"distribution": {
		"passes", "successfulPassesPercent", "longPasses",
		"successfulLongPassesPercent", "forwardPasses",
	},
	"sweeping": {
		"gkExits", "gkSuccessfulExitsPercent",
	},
	"aerial_command": {
		"gkAerialDuels", "aerialDuelsWonPercent",
	},
}

// MetricAliases resolves the naming drift between profile/style definitions
// (snake_case, synonyms) and the bucket-keyed percentile dictionaries
// (camelCase). Values are canonical metric names present in MetricBucket.
var MetricAliases = map[string]string{
	"blocks":               "shotsBlocked",
	"shots_blocked":        "shotsBlocked",
	"tackles":              "slidingTackles",
	"sliding_tackles":      "slidingTackles",
	"pass_accuracy":        "successfulPassesPercent",
	"passing_accuracy":     "successfulPassesPercent",
	"forward_passes":       "forwardPasses",
	"long_passes":          "longPasses",
	"key_passes":           "keyPasses",
	"through_passes":       "throughPasses",
	"progressive_passes":   "progressivePasses",
	"progressive_runs":     "progressiveRun",
	"progressive_run":      "progressiveRun",
	"dribble_success":      "successfulDribblesPercent",
	"aerial_duels_won":     "aerialDuelsWonPercent",
	"aerial_duels":         "aerialDuels",
	"defensive_duels_won":  "defensiveDuelsWonPercent",
	"defensive_duels":      "defensiveDuels",
	"offensive_duels_won":  "offensiveDuelsWonPercent",
	"duels_won":            "duelsWonPercent",
	"ball_losses":          "losses",
	"ball_recoveries":      "recoveries",
	"expected_goals":       "xgShot",
	"expected_assists":     "xgAssist",
	"shot_accuracy":        "shotsOnTargetPercent",
	"goal_conversion":      "goalConversionPercent",
	"touches_in_box":       "touchInBox",
	"saves":                "gkSaves",
	"save_percentage":      "gkSavesPercent",
	"conceded_goals":       "gkConcededGoals",
	"clean_sheets":         "cleanSheets",
	"exits":                "gkExits",
	"cards":                "yellowCards",
}

// CategoriesFor picks the category map matching a position code.
func CategoriesFor(position string) map[string][]string {
	if PositionCategory[position] == "goalkeeper" {
		return GoalkeeperCategories
	}
	return OutfieldCategories
}

// CanonicalMetric resolves an alias to its canonical metric name. Names that
// already are canonical pass through unchanged.
func CanonicalMetric(name string) string {
	if _, ok := MetricBucket[name]; ok {
		return name
	}
	if canonical, ok := MetricAliases[name]; ok {
		return canonical
	}
	return name
}

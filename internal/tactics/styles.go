package tactics

// Style is a statically defined playing style: a global (not per-position)
// weighted metric set a player's percentiles are scored against.
type Style struct {
	Key         string             `json:"style_key"`
	Metrics     map[string]float64 `json:"metrics"`
	Description map[string]string  `json:"description"`
}

// Styles is the playing-style catalogue.
var Styles = map[string]Style{
	"possession_based": {
		Key: "possession_based",
		Metrics: map[string]float64{
			"successfulPassesPercent": 2.0,
			"passes":                  1.5,
			"progressivePasses":       1.2,
			"losses":                  1.2,
			"successfulDribblesPercent": 0.8,
		},
		Description: map[string]string{
			"en": "Patient circulation, territory gained through the pass.",
			"it": "Circolazione paziente, campo guadagnato con il passaggio.",
		},
	},
	"counter_attacking": {
		Key: "counter_attacking",
		Metrics: map[string]float64{
			"accelerations":  1.8,
			"progressiveRun": 1.8,
			"xgShot":         1.2,
			"throughPasses":  1.2,
			"recoveries":     1.0,
		},
		Description: map[string]string{
			"en": "Absorb, win the ball, strike vertically at pace.",
			"it": "Assorbire, recuperare palla, colpire in verticale in velocità.",
		},
	},
	"gegenpressing": {
		Key: "gegenpressing",
		Metrics: map[string]float64{
			"recoveries":               2.0,
			"interceptions":            1.5,
			"defensiveDuelsWonPercent": 1.5,
			"accelerations":            1.2,
			"duels":                    1.0,
		},
		Description: map[string]string{
			"en": "Immediate counter-press, the ball is won back where it was lost.",
			"it": "Riaggressione immediata, palla riconquistata dove è stata persa.",
		},
	},
	"direct_play": {
		Key: "direct_play",
		Metrics: map[string]float64{
			"longPasses":                  1.8,
			"successfulLongPassesPercent": 1.5,
			"aerialDuelsWonPercent":       1.5,
			"forwardPasses":               1.2,
		},
		Description: map[string]string{
			"en": "Fast and vertical, bypasses the midfield when it can.",
			"it": "Veloce e verticale, salta il centrocampo quando possibile.",
		},
	},
	"wing_play": {
		Key: "wing_play",
		Metrics: map[string]float64{
			"crosses":                  2.0,
			"successfulCrossesPercent": 1.5,
			"dribbles":                 1.2,
			"touchInBox":               1.0,
			"aerialDuelsWonPercent":    1.0,
		},
		Description: map[string]string{
			"en": "Width first: beat the full-back, attack the box.",
			"it": "Prima l'ampiezza: saltare il terzino, attaccare l'area.",
		},
	},
	"low_block": {
		Key: "low_block",
		Metrics: map[string]float64{
			"clearances":               1.8,
			"shotsBlocked":             1.5,
			"defensiveDuelsWonPercent": 1.5,
			"interceptions":            1.2,
			"aerialDuelsWonPercent":    1.2,
		},
		Description: map[string]string{
			"en": "Compact and deep, concedes ground but not chances.",
			"it": "Compatto e basso, concede campo ma non occasioni.",
		},
	},
}

package tactics

// Profile is a statically defined tactical role: a weighted set of key stats
// scored against a player's percentiles, scoped to one position category.
type Profile struct {
	PositionCategory string             `json:"position_category"`
	Name             string             `json:"profile_name"`
	KeyStats         map[string]float64 `json:"key_stats"`
	Description      map[string]string  `json:"description"`
}

// Profiles is the full role catalogue, keyed by position category.
var Profiles = map[string][]Profile{
	"goalkeeper": {
		{
			PositionCategory: "goalkeeper",
			Name:             "Shot-Stopper",
			KeyStats: map[string]float64{
				"gkSaves":         1.5,
				"gkSavesPercent":  2.0,
				"gkConcededGoals": 1.5,
				"cleanSheets":     1.0,
			},
			Description: map[string]string{
				"en": "A reflex-first keeper judged on what happens between the posts.",
				"it": "Un portiere di riflessi, giudicato su ciò che accade tra i pali.",
			},
		},
		{
			PositionCategory: "goalkeeper",
			Name:             "Sweeper Keeper",
			KeyStats: map[string]float64{
				"gkExits":                  2.0,
				"gkSuccessfulExitsPercent": 1.5,
				"gkSavesPercent":           1.0,
				"successfulPassesPercent":  1.0,
			},
			Description: map[string]string{
				"en": "Leaves the line early, cleans up behind a high defensive block.",
				"it": "Esce presto dalla linea, ripulisce alle spalle di un blocco alto.",
			},
		},
		{
			PositionCategory: "goalkeeper",
			Name:             "Distributor",
			KeyStats: map[string]float64{
				"successfulPassesPercent":     2.0,
				"successfulLongPassesPercent": 1.5,
				"forwardPasses":               1.2,
				"gkSavesPercent":              0.8,
			},
			Description: map[string]string{
				"en": "First line of the build-up, comfortable under pressure with the ball.",
				"it": "Prima linea della costruzione, a suo agio sotto pressione col pallone.",
			},
		},
	},
	"centre_back": {
		{
			PositionCategory: "centre_back",
			Name:             "Ball-Playing Defender",
			KeyStats: map[string]float64{
				"successfulPassesPercent":  2.0,
				"forwardPasses":            1.5,
				"progressivePasses":        1.5,
				"defensiveDuelsWonPercent": 1.2,
				"losses":                   1.0,
			},
			Description: map[string]string{
				"en": "Starts attacks from the back line; defending is the second skill.",
				"it": "Avvia l'azione dalla linea difensiva; difendere è la seconda abilità.",
			},
		},
		{
			PositionCategory: "centre_back",
			Name:             "Stopper",
			KeyStats: map[string]float64{
				"defensiveDuelsWonPercent": 2.0,
				"slidingTackles":           1.5,
				"aerialDuelsWonPercent":    1.5,
				"interceptions":            1.2,
			},
			Description: map[string]string{
				"en": "Steps out aggressively to kill the attack at its source.",
				"it": "Esce aggressivo per spegnere l'attacco alla fonte.",
			},
		},
		{
			PositionCategory: "centre_back",
			Name:             "Aerial Dominator",
			KeyStats: map[string]float64{
				"aerialDuelsWonPercent": 2.0,
				"clearances":            1.5,
				"shotsBlocked":          1.2,
				"goals":                 0.8,
			},
			Description: map[string]string{
				"en": "Wins everything in the air at both ends of the pitch.",
				"it": "Vince tutto nel gioco aereo in entrambe le aree.",
			},
		},
	},
	"full_back": {
		{
			PositionCategory: "full_back",
			Name:             "Overlapping Full-Back",
			KeyStats: map[string]float64{
				"crosses":                  2.0,
				"successfulCrossesPercent": 1.5,
				"progressiveRun":           1.5,
				"accelerations":            1.2,
				"xgAssist":                 1.0,
			},
			Description: map[string]string{
				"en": "Provides width and delivery, attacks the byline relentlessly.",
				"it": "Garantisce ampiezza e cross, attacca il fondo senza sosta.",
			},
		},
		{
			PositionCategory: "full_back",
			Name:             "Inverted Full-Back",
			KeyStats: map[string]float64{
				"successfulPassesPercent": 1.8,
				"progressivePasses":       1.5,
				"interceptions":           1.2,
				"duelsWonPercent":         1.0,
			},
			Description: map[string]string{
				"en": "Tucks into midfield in possession to overload the centre.",
				"it": "Entra dentro il campo in possesso per sovraccaricare il centro.",
			},
		},
		{
			PositionCategory: "full_back",
			Name:             "Defensive Full-Back",
			KeyStats: map[string]float64{
				"defensiveDuelsWonPercent": 2.0,
				"interceptions":            1.5,
				"recoveries":               1.2,
				"aerialDuelsWonPercent":    1.0,
			},
			Description: map[string]string{
				"en": "Holds the line first; forward runs are the exception.",
				"it": "Prima tiene la posizione; le sovrapposizioni sono l'eccezione.",
			},
		},
	},
	"defensive_midfield": {
		{
			PositionCategory: "defensive_midfield",
			Name:             "Destroyer",
			KeyStats: map[string]float64{
				"interceptions":            1.8,
				"defensiveDuelsWonPercent": 1.8,
				"slidingTackles":           1.5,
				"recoveries":               1.5,
			},
			Description: map[string]string{
				"en": "Breaks opposition play in front of the back line.",
				"it": "Spezza la manovra avversaria davanti alla difesa.",
			},
		},
		{
			PositionCategory: "defensive_midfield",
			Name:             "Deep-Lying Playmaker",
			KeyStats: map[string]float64{
				"successfulPassesPercent": 1.8,
				"progressivePasses":       1.8,
				"forwardPasses":           1.5,
				"longPasses":              1.2,
				"losses":                  1.0,
			},
			Description: map[string]string{
				"en": "Dictates tempo from deep, first outlet of every possession.",
				"it": "Detta i tempi da dietro, primo sbocco di ogni possesso.",
			},
		},
		{
			PositionCategory: "defensive_midfield",
			Name:             "Anchor",
			KeyStats: map[string]float64{
				"interceptions":            1.5,
				"defensiveDuelsWonPercent": 1.5,
				"successfulPassesPercent":  1.2,
				"aerialDuelsWonPercent":    1.0,
				"fouls":                    1.0,
			},
			Description: map[string]string{
				"en": "Screens the defence positionally, rarely leaves the zone.",
				"it": "Protegge la difesa con la posizione, lascia raramente la zona.",
			},
		},
	},
	"central_midfield": {
		{
			PositionCategory: "central_midfield",
			Name:             "Box-to-Box",
			KeyStats: map[string]float64{
				"progressiveRun":  1.5,
				"recoveries":      1.5,
				"duelsWonPercent": 1.2,
				"goals":           1.2,
				"keyPasses":       1.0,
				"accelerations":   1.0,
			},
			Description: map[string]string{
				"en": "Covers both boxes, contributes in every phase.",
				"it": "Copre entrambe le aree, contribuisce in ogni fase.",
			},
		},
		{
			PositionCategory: "central_midfield",
			Name:             "Mezzala",
			KeyStats: map[string]float64{
				"progressiveRun":            1.5,
				"dribbles":                  1.2,
				"keyPasses":                 1.5,
				"xgAssist":                  1.2,
				"touchInBox":                1.0,
			},
			Description: map[string]string{
				"en": "Attacks the half-space, arrives late into the box.",
				"it": "Attacca il mezzo spazio, arriva a rimorchio in area.",
			},
		},
		{
			PositionCategory: "central_midfield",
			Name:             "Tempo Controller",
			KeyStats: map[string]float64{
				"passes":                  1.5,
				"successfulPassesPercent": 2.0,
				"progressivePasses":       1.2,
				"losses":                  1.2,
			},
			Description: map[string]string{
				"en": "Keeps the ball moving, sets the rhythm of possession.",
				"it": "Fa girare il pallone, detta il ritmo del possesso.",
			},
		},
	},
	"attacking_midfield": {
		{
			PositionCategory: "attacking_midfield",
			Name:             "Classic No.10",
			KeyStats: map[string]float64{
				"keyPasses":     2.0,
				"throughPasses": 1.8,
				"xgAssist":      1.8,
				"assists":       1.5,
				"dribbles":      1.0,
			},
			Description: map[string]string{
				"en": "The creative hub between the lines, final-pass specialist.",
				"it": "Il fulcro creativo tra le linee, specialista dell'ultimo passaggio.",
			},
		},
		{
			PositionCategory: "attacking_midfield",
			Name:             "Shadow Striker",
			KeyStats: map[string]float64{
				"goals":       1.8,
				"xgShot":      1.8,
				"touchInBox":  1.5,
				"shotsOnTarget": 1.2,
				"accelerations": 1.0,
			},
			Description: map[string]string{
				"en": "A second forward in disguise, attacks the box off the ball.",
				"it": "Una seconda punta mascherata, attacca l'area senza palla.",
			},
		},
		{
			PositionCategory: "attacking_midfield",
			Name:             "Advanced Playmaker",
			KeyStats: map[string]float64{
				"keyPasses":               1.8,
				"successfulPassesPercent": 1.5,
				"xgAssist":                1.5,
				"progressivePasses":       1.2,
				"successfulDribblesPercent": 1.0,
			},
			Description: map[string]string{
				"en": "Finds pockets high up and keeps the attack connected.",
				"it": "Trova le zolle alte e tiene collegato l'attacco.",
			},
		},
	},
	"winger": {
		{
			PositionCategory: "winger",
			Name:             "Classic Winger",
			KeyStats: map[string]float64{
				"crosses":                  2.0,
				"successfulCrossesPercent": 1.5,
				"dribbles":                 1.5,
				"accelerations":            1.2,
				"xgAssist":                 1.2,
			},
			Description: map[string]string{
				"en": "Hugs the touchline, beats the man, delivers.",
				"it": "Sta largo sulla linea, salta l'uomo, mette in mezzo.",
			},
		},
		{
			PositionCategory: "winger",
			Name:             "Inverted Winger",
			KeyStats: map[string]float64{
				"goals":                     1.8,
				"xgShot":                    1.5,
				"dribbles":                  1.5,
				"successfulDribblesPercent": 1.2,
				"touchInBox":                1.2,
			},
			Description: map[string]string{
				"en": "Cuts inside onto the stronger foot looking for goal.",
				"it": "Rientra sul piede forte cercando la porta.",
			},
		},
		{
			PositionCategory: "winger",
			Name:             "Wide Playmaker",
			KeyStats: map[string]float64{
				"keyPasses":               1.8,
				"xgAssist":                1.8,
				"successfulPassesPercent": 1.2,
				"throughPasses":           1.2,
				"progressiveRun":          1.0,
			},
			Description: map[string]string{
				"en": "Creates from wide areas rather than attacking the byline.",
				"it": "Crea dalle zone laterali invece di attaccare il fondo.",
			},
		},
	},
	"striker": {
		{
			PositionCategory: "striker",
			Name:             "Poacher",
			KeyStats: map[string]float64{
				"goals":                 2.0,
				"goalConversionPercent": 1.8,
				"touchInBox":            1.5,
				"shotsOnTarget":         1.2,
			},
			Description: map[string]string{
				"en": "Lives on the last shoulder, finishes what others build.",
				"it": "Vive sull'ultimo difensore, finalizza ciò che costruiscono gli altri.",
			},
		},
		{
			PositionCategory: "striker",
			Name:             "Target Man",
			KeyStats: map[string]float64{
				"aerialDuelsWonPercent":    2.0,
				"offensiveDuelsWonPercent": 1.5,
				"goals":                    1.2,
				"assists":                  1.0,
			},
			Description: map[string]string{
				"en": "The physical reference up front, holds the ball and brings others in.",
				"it": "Il riferimento fisico davanti, protegge palla e fa salire la squadra.",
			},
		},
		{
			PositionCategory: "striker",
			Name:             "False 9",
			KeyStats: map[string]float64{
				"keyPasses":               1.8,
				"successfulPassesPercent": 1.5,
				"dribbles":                1.2,
				"xgAssist":                1.5,
				"goals":                   1.0,
			},
			Description: map[string]string{
				"en": "Drops between the lines, a striker who plays like a playmaker.",
				"it": "Si abbassa tra le linee, una punta che gioca da rifinitore.",
			},
		},
	},
}

// ProfilesForCategory returns the roles defined for a position category.
func ProfilesForCategory(category string) []Profile {
	return Profiles[category]
}

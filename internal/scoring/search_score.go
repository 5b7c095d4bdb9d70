package scoring

import (
	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/stats"
)

// DescriptionWordWeights boosts individual search parameters when the query
// carried a matching description word, per position. Keys at the innermost
// level are parameter names ("min_<metric>"). Parameters without an entry
// weigh 1.0.
var DescriptionWordWeights = map[string]map[string]map[string]float64{
	"cf": {
		"clinical": {"min_goals": 1.8, "min_goalConversionPercent": 1.5, "min_shotsOnTarget": 1.3},
		"physical": {"min_aerialDuelsWonPercent": 1.6, "min_duelsWon": 1.4},
		"mobile":   {"min_accelerations": 1.5, "min_progressiveRun": 1.3},
	},
	"cb": {
		"aggressive": {"min_defensiveDuelsWon": 1.6, "min_slidingTackles": 1.4, "min_interceptions": 1.3},
		"composed":   {"min_successfulPassesPercent": 1.6, "min_forwardPasses": 1.3, "max_losses": 1.4},
		"dominant":   {"min_aerialDuelsWonPercent": 1.8, "min_clearances": 1.3},
	},
	"dmf": {
		"destroyer": {"min_interceptions": 1.6, "min_defensiveDuelsWon": 1.5, "min_recoveries": 1.4},
		"deep_playmaker": {"min_successfulPassesPercent": 1.6, "min_progressivePasses": 1.5, "min_forwardPasses": 1.3},
	},
	"amf": {
		"creative": {"min_keyPasses": 1.7, "min_throughPasses": 1.5, "min_xgAssist": 1.5},
	},
	"lw": {
		"direct": {"min_dribbles": 1.6, "min_accelerations": 1.4, "min_progressiveRun": 1.4},
	},
	"rw": {
		"direct": {"min_dribbles": 1.6, "min_accelerations": 1.4, "min_progressiveRun": 1.4},
	},
}

// PositionScore tags a search-relevance score with the position it was
// computed at.
type PositionScore struct {
	Position string  `json:"position"`
	Score    float64 `json:"score"`
}

// Engine computes search-query relevance scores. Deliberately ratio-based
// rather than percentile-based: dividing the raw value by the position
// average rewards raw outperformance and stays defined even when the
// population has no variance. The percentile path exists separately for
// profile fit; the two scoring models must not be unified.
type Engine struct {
	logger *logrus.Logger
}

func NewEngine(logger *logrus.Logger) *Engine {
	return &Engine{logger: logger}
}

// Score computes one player's relevance for one query at one position. For
// every active statistical parameter the contribution is the player/average
// ratio times the description-word weight; "max_" parameters invert the
// contribution to penalize exceeding an undesired stat.
func (e *Engine) Score(p *models.Player, params *models.SearchParameters, position string, agg stats.PositionAggregates) float64 {
	total := 0.0
	for _, param := range params.ActiveStatParams() {
		prefix, metric, ok := models.StatParamMetric(param)
		if !ok {
			continue
		}
		metric = stats.CanonicalMetric(metric)
		bucket, ok := stats.MetricBucket[metric]
		if !ok {
			continue
		}
		value, ok := p.Stat(bucket, metric)
		if !ok {
			continue
		}
		ma, _ := agg.Lookup(position, bucket, metric)
		if ma.Average <= 0 {
			continue
		}

		contribution := (value / ma.Average) * e.paramWeight(position, params.KeyDescriptionWords, param)
		if prefix == "max" {
			if contribution <= 2.0 {
				contribution = 2.0 - contribution
			} else {
				contribution = 0
			}
		}
		total += contribution
	}
	return total
}

// ScoreAcrossPositions evaluates the player at every searched position and
// keeps the best score, tagged with the position that produced it.
func (e *Engine) ScoreAcrossPositions(p *models.Player, params *models.SearchParameters, agg stats.PositionAggregates) PositionScore {
	best := PositionScore{}
	for i, position := range params.PositionCodes {
		score := e.Score(p, params, position, agg)
		if i == 0 || score > best.Score {
			best = PositionScore{Position: position, Score: score}
		}
	}
	return best
}

func (e *Engine) paramWeight(position string, descriptionWords []string, param string) float64 {
	byWord, ok := DescriptionWordWeights[position]
	if !ok {
		return 1.0
	}
	for _, word := range descriptionWords {
		if weights, ok := byWord[word]; ok {
			if w, ok := weights[param]; ok {
				return w
			}
		}
	}
	return 1.0
}

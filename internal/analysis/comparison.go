package analysis

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/stats"
)

// DefaultMetricWeights is the fallback weight table for the overall-winner
// aggregation, used when the caller supplies no search-derived weights for a
// metric.
var DefaultMetricWeights = map[string]float64{
	"goals":                    2.0,
	"assists":                  1.8,
	"xgShot":                   1.5,
	"xgAssist":                 1.5,
	"keyPasses":                1.4,
	"successfulPassesPercent":  1.4,
	"progressivePasses":        1.3,
	"defensiveDuelsWonPercent": 1.4,
	"interceptions":            1.3,
	"aerialDuelsWonPercent":    1.3,
	"duelsWonPercent":          1.2,
	"successfulDribblesPercent": 1.2,
	"recoveries":               1.2,
	"gkSavesPercent":           1.8,
	"gkConcededGoals":          1.5,
	"losses":                   1.2,
	"yellowCards":              0.8,
	"fouls":                    0.8,
}

// Winner labels used throughout comparison results.
const (
	WinnerPlayer1 = "player1"
	WinnerPlayer2 = "player2"
	WinnerTie     = "tie"
)

// MetricComparison is the head-to-head outcome on one metric.
type MetricComparison struct {
	Metric string  `json:"metric"`
	Value1 float64 `json:"value1"`
	Value2 float64 `json:"value2"`
	Winner string  `json:"winner"`
	Weight float64 `json:"weight"`
}

// OverallResult aggregates metric wins into a single verdict.
type OverallResult struct {
	Winner        string  `json:"winner"`
	Player1Score  float64 `json:"player1_score"`
	Player2Score  float64 `json:"player2_score"`
	MarginPercent float64 `json:"margin_percent"`
}

// ComparisonResult is the full output of comparing two players.
type ComparisonResult struct {
	Player1ID          int                           `json:"player1_id"`
	Player2ID          int                           `json:"player2_id"`
	MetricWinners      []MetricComparison            `json:"metric_winners"`
	Overall            OverallResult                 `json:"overall_winner"`
	CategorizedMetrics map[string][]MetricComparison `json:"categorized_metrics"`
	CategoryWinners    map[string]string             `json:"category_winners"`
}

// ComparisonEngine decides per-metric, per-category and overall winners
// between exactly two players. It operates directly on raw stat values; the
// percentile machinery is not involved.
type ComparisonEngine struct {
	logger *logrus.Logger
}

func NewComparisonEngine(logger *logrus.Logger) *ComparisonEngine {
	return &ComparisonEngine{logger: logger}
}

// Compare evaluates the two players over their common metrics. Metrics absent
// from either side are excluded entirely, not scored as ties. searchWeights
// may be nil; per-metric weight resolution is caller weights, then the
// default table, then 1.0.
func (e *ComparisonEngine) Compare(p1, p2 *models.Player, searchWeights map[string]float64) *ComparisonResult {
	stats1 := p1.FlatStats()
	stats2 := p2.FlatStats()

	var common []string
	for metric := range stats1 {
		if _, ok := stats2[metric]; ok {
			common = append(common, metric)
		}
	}
	sort.Strings(common)

	result := &ComparisonResult{
		Player1ID:          p1.ID,
		Player2ID:          p2.ID,
		CategorizedMetrics: make(map[string][]MetricComparison),
		CategoryWinners:    make(map[string]string),
	}

	score1, score2 := 0.0, 0.0
	byMetric := make(map[string]MetricComparison, len(common))

	for _, metric := range common {
		v1, v2 := stats1[metric], stats2[metric]
		mc := MetricComparison{
			Metric: metric,
			Value1: v1,
			Value2: v2,
			Winner: metricWinner(metric, v1, v2),
			Weight: metricWeight(metric, searchWeights),
		}
		result.MetricWinners = append(result.MetricWinners, mc)
		byMetric[metric] = mc

		switch mc.Winner {
		case WinnerPlayer1:
			score1 += mc.Weight
		case WinnerPlayer2:
			score2 += mc.Weight
		}
	}

	result.Overall = overallResult(score1, score2)
	e.categorize(result, byMetric)

	return result
}

func metricWinner(metric string, v1, v2 float64) string {
	if v1 == v2 {
		return WinnerTie
	}
	lowerWins := stats.NegativeMetrics[metric]
	if (v1 < v2) == lowerWins {
		return WinnerPlayer1
	}
	return WinnerPlayer2
}

func metricWeight(metric string, searchWeights map[string]float64) float64 {
	if w, ok := searchWeights[metric]; ok {
		return w
	}
	if w, ok := DefaultMetricWeights[metric]; ok {
		return w
	}
	return 1.0
}

func overallResult(score1, score2 float64) OverallResult {
	result := OverallResult{Player1Score: score1, Player2Score: score2}
	switch {
	case score1 > score2:
		result.Winner = WinnerPlayer1
	case score2 > score1:
		result.Winner = WinnerPlayer2
	default:
		result.Winner = WinnerTie
	}
	if total := score1 + score2; total > 0 {
		result.MarginPercent = math.Abs(score1-score2) / total * 100
	}
	return result
}

// categorize groups compared metrics into football categories and decides
// each category by majority of metric wins. Categories with no compared
// metrics are dropped.
func (e *ComparisonEngine) categorize(result *ComparisonResult, byMetric map[string]MetricComparison) {
	categories := mergedCategories()
	for category, metrics := range categories {
		wins1, wins2 := 0, 0
		var compared []MetricComparison
		for _, metric := range metrics {
			mc, ok := byMetric[metric]
			if !ok {
				continue
			}
			compared = append(compared, mc)
			switch mc.Winner {
			case WinnerPlayer1:
				wins1++
			case WinnerPlayer2:
				wins2++
			}
		}
		if len(compared) == 0 {
			continue
		}
		result.CategorizedMetrics[category] = compared
		switch {
		case wins1 > wins2:
			result.CategoryWinners[category] = WinnerPlayer1
		case wins2 > wins1:
			result.CategoryWinners[category] = WinnerPlayer2
		default:
			result.CategoryWinners[category] = WinnerTie
		}
	}
}

// mergedCategories joins the outfield and goalkeeper category maps so a
// comparison involving a keeper still categorizes the gk metrics.
func mergedCategories() map[string][]string {
	merged := make(map[string][]string, len(stats.OutfieldCategories)+len(stats.GoalkeeperCategories))
	for k, v := range stats.OutfieldCategories {
		merged[k] = v
	}
	for k, v := range stats.GoalkeeperCategories {
		merged[k] = v
	}
	return merged
}

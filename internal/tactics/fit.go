package tactics

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/stats"
)

const (
	strengthThreshold = 70.0
	weaknessThreshold = 40.0

	// A role fit at or above this counts toward the versatility metric.
	versatileFitThreshold = 60.0
)

// MetricContribution is one metric's part in a fit score.
type MetricContribution struct {
	Metric     string  `json:"metric"`
	Percentile float64 `json:"percentile"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
}

// FitResult is the outcome of scoring one player against one role or style.
type FitResult struct {
	Name       string               `json:"name"`
	Score      float64              `json:"score"`
	Label      string               `json:"label"`
	Strengths  []MetricContribution `json:"strengths"`
	Weaknesses []MetricContribution `json:"weaknesses"`
}

// PositionFitTable is every role fit at one position, sorted best first.
type PositionFitTable struct {
	Position string      `json:"position"`
	Category string      `json:"category"`
	Roles    []FitResult `json:"roles"`
}

// RoleRanking is one entry of the cross-position role list.
type RoleRanking struct {
	Position string    `json:"position"`
	Role     FitResult `json:"role"`
}

// PlayerProfile is the complete tactical evaluation of one player.
type PlayerProfile struct {
	PlayerID       int                   `json:"player_id"`
	PositionTables []PositionFitTable    `json:"position_tables"`
	TopRoles       []RoleRanking         `json:"top_roles"`     // global top 5 across positions
	OptimalRole    *RoleRanking          `json:"optimal_role"`  // rank-1 entry of TopRoles
	StyleFits      []FitResult           `json:"style_fits"`    // global styles, sorted best first
	Versatility    VersatilityMetrics    `json:"versatility"`
}

// VersatilityMetrics summarizes how widely a player can be deployed.
type VersatilityMetrics struct {
	Positions     int `json:"positions"`
	ViableRoles   int `json:"viable_roles"` // role fits scoring >= 60
}

// FitEngine computes percentile-based role and style fit scores. This is the
// population-rank scoring model; the ratio-based search score is a separate,
// intentionally different path.
type FitEngine struct {
	percentile *stats.PercentileEngine
	logger     *logrus.Logger
}

func NewFitEngine(percentile *stats.PercentileEngine, logger *logrus.Logger) *FitEngine {
	return &FitEngine{percentile: percentile, logger: logger}
}

// RoleFit scores a percentile report against one role. The weighted mean
// skips metrics with no located percentile entirely: they leave both
// numerator and denominator, so a player measured on one metric out of five
// scores that metric's own percentile, not a fifth of it.
func (e *FitEngine) RoleFit(report *stats.PercentileReport, profile Profile) FitResult {
	weightedSum := 0.0
	weightTotal := 0.0
	var contributions []MetricContribution

	for metric, weight := range profile.KeyStats {
		pct := report.PercentileOrZero(metric, "")
		if pct <= 0 {
			continue
		}
		weightedSum += pct * weight
		weightTotal += weight
		contributions = append(contributions, MetricContribution{
			Metric:     metric,
			Percentile: pct,
			Weight:     weight,
			Weighted:   pct * weight,
		})
	}

	score := 0.0
	if weightTotal > 0 {
		score = weightedSum / weightTotal
	}

	return FitResult{
		Name:       profile.Name,
		Score:      math.Round(score*100) / 100,
		Label:      FitLabel(score),
		Strengths:  pickStrengths(contributions),
		Weaknesses: pickWeaknesses(contributions),
	}
}

// StyleFit scores a report against a playing style. Same skip-missing policy;
// the normalization divides by the maximum attainable weighted sum over the
// matched metrics, then scales back to 0-100 and rounds to an integer score.
func (e *FitEngine) StyleFit(report *stats.PercentileReport, style Style) FitResult {
	weightedSum := 0.0
	maxSum := 0.0
	var contributions []MetricContribution

	for metric, weight := range style.Metrics {
		pct := report.PercentileOrZero(metric, "")
		if pct <= 0 {
			continue
		}
		weightedSum += pct * weight
		maxSum += 100 * weight
		contributions = append(contributions, MetricContribution{
			Metric:     metric,
			Percentile: pct,
			Weight:     weight,
			Weighted:   pct * weight,
		})
	}

	score := 0.0
	if maxSum > 0 {
		score = math.Round(100 * weightedSum / maxSum)
	}

	return FitResult{
		Name:       style.Key,
		Score:      score,
		Label:      FitLabel(score),
		Strengths:  pickStrengths(contributions),
		Weaknesses: pickWeaknesses(contributions),
	}
}

// Profile evaluates a player at every listed position: one role fit table per
// position, the cross-position top-5, the optimal role, style fits, and
// versatility counts.
func (e *FitEngine) Profile(p *models.Player, agg stats.PositionAggregates, minMinutes int) (*PlayerProfile, error) {
	result := &PlayerProfile{PlayerID: p.ID}

	var allRoles []RoleRanking
	viable := 0

	for _, position := range p.Positions {
		category, ok := stats.PositionCategory[position]
		if !ok {
			continue
		}
		report, err := e.percentile.PercentilesAt(p, position, agg, minMinutes)
		if err != nil {
			return nil, err
		}

		table := PositionFitTable{Position: position, Category: category}
		for _, profile := range ProfilesForCategory(category) {
			fit := e.RoleFit(report, profile)
			table.Roles = append(table.Roles, fit)
			allRoles = append(allRoles, RoleRanking{Position: position, Role: fit})
			if fit.Score >= versatileFitThreshold {
				viable++
			}
		}
		sort.SliceStable(table.Roles, func(i, j int) bool { return table.Roles[i].Score > table.Roles[j].Score })
		result.PositionTables = append(result.PositionTables, table)
	}

	sort.SliceStable(allRoles, func(i, j int) bool { return allRoles[i].Role.Score > allRoles[j].Role.Score })
	if len(allRoles) > 5 {
		result.TopRoles = allRoles[:5]
	} else {
		result.TopRoles = allRoles
	}
	if len(result.TopRoles) > 0 {
		result.OptimalRole = &result.TopRoles[0]
	}

	// Styles score against the primary position's percentiles.
	if report, err := e.percentile.Percentiles(p, agg, minMinutes); err == nil {
		for _, style := range Styles {
			result.StyleFits = append(result.StyleFits, e.StyleFit(report, style))
		}
		sort.SliceStable(result.StyleFits, func(i, j int) bool {
			if result.StyleFits[i].Score != result.StyleFits[j].Score {
				return result.StyleFits[i].Score > result.StyleFits[j].Score
			}
			return result.StyleFits[i].Name < result.StyleFits[j].Name
		})
	}

	result.Versatility = VersatilityMetrics{
		Positions:   len(result.PositionTables),
		ViableRoles: viable,
	}

	return result, nil
}

// FitLabel maps a 0-100 fit score onto the fixed seven-tier scheme.
func FitLabel(score float64) string {
	switch {
	case score >= 85:
		return "Perfect"
	case score >= 75:
		return "Excellent"
	case score >= 65:
		return "Very good"
	case score >= 55:
		return "Good"
	case score >= 45:
		return "Average"
	case score >= 35:
		return "Below average"
	default:
		return "Inadequate"
	}
}

func pickStrengths(contributions []MetricContribution) []MetricContribution {
	var out []MetricContribution
	for _, c := range contributions {
		if c.Percentile >= strengthThreshold {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Weighted > out[j].Weighted })
	return out
}

func pickWeaknesses(contributions []MetricContribution) []MetricContribution {
	var out []MetricContribution
	for _, c := range contributions {
		if c.Percentile <= weaknessThreshold {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Weighted < out[j].Weighted })
	return out
}

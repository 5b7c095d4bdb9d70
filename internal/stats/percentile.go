package stats

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/scoutlens/scoutlens/internal/models"
)

// ErrInsufficientData marks a player below the minutes threshold. Callers
// must render a degraded response ("statistics unreliable"), never crash.
var ErrInsufficientData = errors.New("insufficient minutes played for reliable statistics")

// MetricPercentile is one metric's standing relative to same-position peers.
type MetricPercentile struct {
	ZScore     float64 `json:"z_score"`
	Percentile float64 `json:"percentile"`
}

// PercentileReport holds a single player's percentiles for one analysis
// request. It is a fresh value per computation; nothing in it aliases the
// shared population snapshot.
type PercentileReport struct {
	PlayerID int    `json:"player_id"`
	Position string `json:"position"`

	// bucket -> metric -> percentile record
	Buckets map[string]map[string]MetricPercentile `json:"buckets"`

	// category -> metric -> percentile, organized per the position group's
	// static category map
	Categories map[string]map[string]float64 `json:"football_categories"`
}

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// PercentileEngine converts raw player statistics into position-relative
// z-scores and normal-CDF percentiles.
type PercentileEngine struct {
	logger *logrus.Logger
}

func NewPercentileEngine(logger *logrus.Logger) *PercentileEngine {
	return &PercentileEngine{logger: logger}
}

// Percentiles computes the full percentile report for one player against
// their primary position's aggregates. Returns ErrInsufficientData below the
// minutes threshold.
func (e *PercentileEngine) Percentiles(p *models.Player, agg PositionAggregates, minMinutes int) (*PercentileReport, error) {
	return e.PercentilesAt(p, p.PrimaryPosition(), agg, minMinutes)
}

// PercentilesAt computes the report against an arbitrary position's
// aggregates, used when a player is evaluated at a secondary position.
func (e *PercentileEngine) PercentilesAt(p *models.Player, position string, agg PositionAggregates, minMinutes int) (*PercentileReport, error) {
	if p.MinutesOnField() < float64(minMinutes) {
		return nil, fmt.Errorf("player %s has %.0f minutes, need %d: %w",
			p.Name, p.MinutesOnField(), minMinutes, ErrInsufficientData)
	}
	report := &PercentileReport{
		PlayerID: p.ID,
		Position: position,
		Buckets: map[string]map[string]MetricPercentile{
			models.BucketTotal:   {},
			models.BucketAverage: {},
			models.BucketPercent: {},
		},
	}

	e.fillBucket(report, agg, position, models.BucketTotal, p.Total)
	e.fillBucket(report, agg, position, models.BucketAverage, p.Average)
	e.fillBucket(report, agg, position, models.BucketPercent, p.Percent)

	report.Categories = organizeCategories(report, position)

	return report, nil
}

func (e *PercentileEngine) fillBucket(report *PercentileReport, agg PositionAggregates, position, bucket string, values map[string]float64) {
	for metric, value := range values {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}
		ma, ok := agg.Lookup(position, bucket, metric)
		if !ok {
			continue
		}
		report.Buckets[bucket][metric] = computePercentile(value, ma, NegativeMetrics[metric])
	}
}

// computePercentile derives z and 100*Phi(z); std=0 yields the neutral z=0,
// percentile 50. Negative metrics are mirrored after the base computation.
func computePercentile(value float64, ma MetricAggregate, negative bool) MetricPercentile {
	var z float64
	if ma.Std > 0 {
		z = (value - ma.Average) / ma.Std
	}
	percentile := round2(100 * stdNormal.CDF(z))
	if negative {
		z = -z
		percentile = round2(100 - percentile)
	}
	return MetricPercentile{ZScore: z, Percentile: percentile}
}

func organizeCategories(report *PercentileReport, position string) map[string]map[string]float64 {
	categories := CategoriesFor(position)
	out := make(map[string]map[string]float64, len(categories))
	for category, metrics := range categories {
		for _, metric := range metrics {
			bucket, ok := MetricBucket[metric]
			if !ok {
				continue
			}
			mp, ok := report.Buckets[bucket][metric]
			if !ok {
				continue
			}
			if out[category] == nil {
				out[category] = make(map[string]float64)
			}
			out[category][metric] = mp.Percentile
		}
	}
	return out
}

// Percentile is the universal accessor over a report. It resolves a metric
// name that may come from any of the profile/style/search naming conventions,
// trying in order: direct lookup in the requested category, lookup across all
// categories, alias-resolved bucket lookup, and finally a fuzzy substring
// match against known keys. The boolean is false when nothing matched.
func (r *PercentileReport) Percentile(metric, category string) (float64, bool) {
	canonical := CanonicalMetric(metric)

	if category != "" {
		if byMetric, ok := r.Categories[category]; ok {
			if v, ok := byMetric[canonical]; ok {
				return v, true
			}
		}
	}

	for _, byMetric := range r.Categories {
		if v, ok := byMetric[canonical]; ok {
			return v, true
		}
	}

	if bucket, ok := MetricBucket[canonical]; ok {
		if mp, ok := r.Buckets[bucket][canonical]; ok {
			return mp.Percentile, true
		}
	}

	// Last resort: substring match against every bucket key. Metric naming
	// across data sources was never normalized, so "duelsWon" must still find
	// "defensiveDuelsWon" style keys.
	needle := strings.ToLower(canonical)
	for _, byMetric := range r.Buckets {
		for name, mp := range byMetric {
			lower := strings.ToLower(name)
			if strings.Contains(lower, needle) || strings.Contains(needle, lower) {
				return mp.Percentile, true
			}
		}
	}

	return 0, false
}

// PercentileOrZero keeps the historical 0-on-miss contract used by the fit
// and SWOT scoring paths.
func (r *PercentileReport) PercentileOrZero(metric, category string) float64 {
	v, _ := r.Percentile(metric, category)
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package stats

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/scoutlens/scoutlens/internal/models"
)

// MetricAggregate holds the population mean and population standard deviation
// of one metric at one position.
type MetricAggregate struct {
	Average float64 `json:"average"`
	Std     float64 `json:"std"`
}

// PositionAggregates is the per-position reference table percentiles and
// search scores are computed against: position -> bucket -> metric.
// Computed offline and read-only at request time.
type PositionAggregates map[string]map[string]map[string]MetricAggregate

// Lookup returns the aggregate for a position/bucket/metric triple. Missing
// entries come back as the neutral zero aggregate so downstream lookups never
// fail on a key; std=0 then forces the neutral percentile.
func (a PositionAggregates) Lookup(position, bucket, metric string) (MetricAggregate, bool) {
	if byBucket, ok := a[position]; ok {
		if byMetric, ok := byBucket[bucket]; ok {
			if agg, ok := byMetric[metric]; ok {
				return agg, true
			}
		}
	}
	return MetricAggregate{}, false
}

// Aggregator computes position-level statistic aggregates from the player
// population.
type Aggregator struct {
	logger *logrus.Logger
}

func NewAggregator(logger *logrus.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// ComputeAggregates builds the mean/std table for every position observed as
// some player's primary position. Only players at or above the minutes
// threshold contribute. Standard deviation is the population form (divide by
// n); with one or zero samples std is 0, which downstream treats as
// non-discriminating.
func (a *Aggregator) ComputeAggregates(players []*models.Player, minMinutes int) PositionAggregates {
	// position -> bucket -> metric -> collected values
	values := make(map[string]map[string]map[string][]float64)

	eligible := 0
	for _, p := range players {
		pos := p.PrimaryPosition()
		if pos == "" {
			continue
		}
		// Register the position before the minutes gate: a position whose
		// players are all below the threshold still gets the neutral backfill,
		// so percentile lookups there resolve to 50 rather than going missing.
		if values[pos] == nil {
			values[pos] = map[string]map[string][]float64{
				models.BucketTotal:   {},
				models.BucketAverage: {},
				models.BucketPercent: {},
			}
		}
		if p.MinutesOnField() < float64(minMinutes) {
			continue
		}
		eligible++

		collectBucket(values[pos][models.BucketTotal], p.Total)
		collectBucket(values[pos][models.BucketAverage], p.Average)
		collectBucket(values[pos][models.BucketPercent], p.Percent)
	}

	aggregates := make(PositionAggregates, len(values))
	for pos, byBucket := range values {
		aggregates[pos] = make(map[string]map[string]MetricAggregate, len(byBucket))
		for bucket, byMetric := range byBucket {
			aggregates[pos][bucket] = make(map[string]MetricAggregate, len(byMetric))
			for metric, samples := range byMetric {
				aggregates[pos][bucket][metric] = aggregate(samples)
			}
		}
	}

	// Every known metric gets an entry for every observed position, defaulted
	// to {0, 0}, so lookups fail soft as "neutral" rather than hard as
	// "missing key".
	for pos := range aggregates {
		for metric, bucket := range MetricBucket {
			if _, ok := aggregates[pos][bucket][metric]; !ok {
				aggregates[pos][bucket][metric] = MetricAggregate{}
			}
		}
	}

	if a.logger != nil {
		a.logger.WithFields(logrus.Fields{
			"positions":        len(aggregates),
			"eligible_players": eligible,
			"min_minutes":      minMinutes,
		}).Info("Position aggregates computed")
	}

	return aggregates
}

func collectBucket(dest map[string][]float64, bucket map[string]float64) {
	for metric, v := range bucket {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		dest[metric] = append(dest[metric], v)
	}
}

func aggregate(samples []float64) MetricAggregate {
	if len(samples) == 0 {
		return MetricAggregate{}
	}
	mean := stat.Mean(samples, nil)
	if len(samples) <= 1 {
		return MetricAggregate{Average: mean}
	}
	return MetricAggregate{
		Average: mean,
		Std:     stat.PopStdDev(samples, nil),
	}
}

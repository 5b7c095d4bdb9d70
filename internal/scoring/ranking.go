package scoring

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/stats"
	"github.com/scoutlens/scoutlens/internal/store"
)

// PositionRank is the player's standing at one of their listed positions.
type PositionRank struct {
	Position           string             `json:"position"`
	Rank               int                `json:"rank"`
	PoolSize           int                `json:"pool_size"`
	Score              float64            `json:"score"`
	KeyMetrics         []string           `json:"key_metrics"`
	MetricsPercentiles map[string]float64 `json:"metrics_percentiles"`
}

// RankingEngine places a player within the eligible population at each
// position they can play. The position score here is the percentile-weighted
// variant over the static per-position key-stat tables, not the ratio-based
// search score.
type RankingEngine struct {
	store      *store.Store
	percentile *stats.PercentileEngine
	logger     *logrus.Logger
}

func NewRankingEngine(s *store.Store, percentile *stats.PercentileEngine, logger *logrus.Logger) *RankingEngine {
	return &RankingEngine{store: s, percentile: percentile, logger: logger}
}

// Rank computes the player's 1-based rank at every listed position. Returns
// stats.ErrInsufficientData when the player is below the minutes threshold.
func (e *RankingEngine) Rank(p *models.Player, minMinutes int) ([]PositionRank, error) {
	if p.MinutesOnField() < float64(minMinutes) {
		return nil, fmt.Errorf("cannot rank %s: %w", p.Name, stats.ErrInsufficientData)
	}

	agg := e.store.Aggregates()
	ranks := make([]PositionRank, 0, len(p.Positions))

	for _, position := range p.Positions {
		keyStats := stats.KeyStatsForPosition(position)

		type scored struct {
			id    int
			score float64
		}
		var pool []scored
		for _, candidate := range e.store.PlayersWithPosition(position) {
			if candidate.MinutesOnField() < float64(minMinutes) {
				continue
			}
			pool = append(pool, scored{candidate.ID, e.positionScore(candidate, position, keyStats, agg, minMinutes)})
		}

		playerScore := e.positionScore(p, position, keyStats, agg, minMinutes)

		found := false
		for _, c := range pool {
			if c.id == p.ID {
				found = true
				break
			}
		}
		if !found {
			// The player passed the minutes filter above but is absent from
			// their own candidate pool: the snapshot's position index and the
			// player's position list disagree. Patch the pool but surface the
			// inconsistency, it points at a filter-criteria mismatch upstream.
			e.logger.WithFields(logrus.Fields{
				"player_id": p.ID,
				"position":  position,
			}).Warn("Player missing from own ranking pool, inserting")
			pool = append(pool, scored{p.ID, playerScore})
		}

		// Stable sort: ties keep snapshot order, which makes ranks
		// deterministic across calls.
		sort.SliceStable(pool, func(i, j int) bool { return pool[i].score > pool[j].score })

		rank := 0
		for i, c := range pool {
			if c.id == p.ID {
				rank = i + 1
				break
			}
		}

		metricsPercentiles := e.keyMetricPercentiles(p, position, keyStats, agg, minMinutes)
		keyMetrics := make([]string, 0, len(keyStats))
		for metric := range keyStats {
			keyMetrics = append(keyMetrics, metric)
		}
		sort.Strings(keyMetrics)

		ranks = append(ranks, PositionRank{
			Position:           position,
			Rank:               rank,
			PoolSize:           len(pool),
			Score:              playerScore,
			KeyMetrics:         keyMetrics,
			MetricsPercentiles: metricsPercentiles,
		})
	}

	return ranks, nil
}

// positionScore is the weighted mean of the player's key-stat percentiles at
// the ranked position, skipping metrics with no located percentile. Everyone
// in a pool is measured against the same position baseline, regardless of
// their own primary position.
func (e *RankingEngine) positionScore(p *models.Player, position string, keyStats map[string]float64, agg stats.PositionAggregates, minMinutes int) float64 {
	report, err := e.percentile.PercentilesAt(p, position, agg, minMinutes)
	if err != nil {
		return 0
	}

	weightedSum := 0.0
	weightTotal := 0.0
	for metric, weight := range keyStats {
		pct := report.PercentileOrZero(metric, "")
		if pct <= 0 {
			continue
		}
		weightedSum += pct * weight
		weightTotal += weight
	}
	if weightTotal == 0 {
		return 0
	}
	return weightedSum / weightTotal
}

func (e *RankingEngine) keyMetricPercentiles(p *models.Player, position string, keyStats map[string]float64, agg stats.PositionAggregates, minMinutes int) map[string]float64 {
	out := make(map[string]float64, len(keyStats))
	report, err := e.percentile.PercentilesAt(p, position, agg, minMinutes)
	if err != nil {
		return out
	}
	for metric := range keyStats {
		if v, ok := report.Percentile(metric, ""); ok {
			out[metric] = v
		}
	}
	return out
}

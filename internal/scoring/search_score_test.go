package scoring

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/stats"
)

func scoreFixture() (*models.Player, stats.PositionAggregates) {
	player := &models.Player{
		ID:        1,
		Name:      "Test Forward",
		Positions: []string{"cf", "amf"},
		Total: map[string]float64{
			"minutesOnField": 1800,
			"goals":          20,
		},
		Average: map[string]float64{
			"losses":    5,
			"keyPasses": 2,
		},
		Percent: map[string]float64{},
	}
	agg := stats.PositionAggregates{
		"cf": {
			models.BucketTotal:   {"goals": {Average: 10, Std: 4}},
			models.BucketAverage: {"losses": {Average: 10, Std: 3}, "keyPasses": {Average: 2, Std: 1}},
			models.BucketPercent: {},
		},
		"amf": {
			models.BucketTotal:   {"goals": {Average: 5, Std: 3}},
			models.BucketAverage: {"losses": {Average: 8, Std: 2}, "keyPasses": {Average: 4, Std: 1}},
			models.BucketPercent: {},
		},
	}
	return player, agg
}

func TestScoreRatioBased(t *testing.T) {
	player, agg := scoreFixture()
	engine := NewEngine(logrus.New())

	params := &models.SearchParameters{
		PositionCodes: []string{"cf"},
		Stats:         map[string]any{"min_goals": true},
	}

	// 20 goals against a position average of 10: ratio 2.0, weight 1.0.
	score := engine.Score(player, params, "cf", agg)
	assert.InDelta(t, 2.0, score, 1e-9)
}

func TestScoreDescriptionWordBoost(t *testing.T) {
	player, agg := scoreFixture()
	engine := NewEngine(logrus.New())

	params := &models.SearchParameters{
		PositionCodes:       []string{"cf"},
		KeyDescriptionWords: []string{"clinical"},
		Stats:               map[string]any{"min_goals": true},
	}

	score := engine.Score(player, params, "cf", agg)
	assert.InDelta(t, 3.6, score, 1e-9) // 2.0 ratio * 1.8 boost
}

func TestScoreMaxParamInverted(t *testing.T) {
	player, agg := scoreFixture()
	engine := NewEngine(logrus.New())

	params := &models.SearchParameters{
		PositionCodes: []string{"cf"},
		Stats:         map[string]any{"max_losses": true},
	}

	// losses 5 against average 10: contribution 0.5, inverted to 1.5.
	score := engine.Score(player, params, "cf", agg)
	assert.InDelta(t, 1.5, score, 1e-9)
}

func TestScoreMaxParamFloorsAtZero(t *testing.T) {
	player, agg := scoreFixture()
	player.Average["losses"] = 30
	engine := NewEngine(logrus.New())

	params := &models.SearchParameters{
		PositionCodes: []string{"cf"},
		Stats:         map[string]any{"max_losses": true},
	}

	// Ratio 3.0 exceeds the inversion ceiling: contribution clamps to 0.
	score := engine.Score(player, params, "cf", agg)
	assert.Equal(t, 0.0, score)
}

func TestScoreSkipsZeroAverage(t *testing.T) {
	player, agg := scoreFixture()
	agg["cf"][models.BucketTotal]["goals"] = stats.MetricAggregate{}
	engine := NewEngine(logrus.New())

	params := &models.SearchParameters{
		PositionCodes: []string{"cf"},
		Stats:         map[string]any{"min_goals": true},
	}

	assert.Equal(t, 0.0, engine.Score(player, params, "cf", agg))
}

func TestScoreIgnoresFalsyParams(t *testing.T) {
	player, agg := scoreFixture()
	engine := NewEngine(logrus.New())

	params := &models.SearchParameters{
		PositionCodes: []string{"cf"},
		Stats: map[string]any{
			"min_goals":     false,
			"min_keyPasses": nil,
		},
	}

	assert.Equal(t, 0.0, engine.Score(player, params, "cf", agg))
}

func TestScoreAcrossPositionsKeepsBest(t *testing.T) {
	player, agg := scoreFixture()
	engine := NewEngine(logrus.New())

	params := &models.SearchParameters{
		PositionCodes: []string{"cf", "amf"},
		Stats:         map[string]any{"min_goals": true},
	}

	// cf ratio is 2.0, amf ratio is 4.0: amf wins and is tagged.
	best := engine.ScoreAcrossPositions(player, params, agg)
	assert.Equal(t, "amf", best.Position)
	assert.InDelta(t, 4.0, best.Score, 1e-9)
}

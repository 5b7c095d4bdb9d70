package analysis

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlens/scoutlens/internal/models"
)

func comparisonPlayers() (*models.Player, *models.Player) {
	p1 := &models.Player{
		ID:        1,
		Name:      "First Striker",
		Positions: []string{"cf"},
		Total: map[string]float64{
			"goals":       20,
			"yellowCards": 8,
		},
		Average: map[string]float64{
			"xgShot":    0.6,
			"keyPasses": 1.0,
		},
		Percent: map[string]float64{},
	}
	p2 := &models.Player{
		ID:        2,
		Name:      "Second Striker",
		Positions: []string{"cf"},
		Total: map[string]float64{
			"goals":       12,
			"yellowCards": 2,
		},
		Average: map[string]float64{
			"xgShot":    0.4,
			"keyPasses": 1.0,
		},
		Percent: map[string]float64{},
	}
	return p1, p2
}

func TestCompareCommonMetricsOnly(t *testing.T) {
	p1, p2 := comparisonPlayers()
	p1.Average["dribbles"] = 5 // only on one side, must be excluded
	engine := NewComparisonEngine(logrus.New())

	result := engine.Compare(p1, p2, nil)

	for _, mc := range result.MetricWinners {
		assert.NotEqual(t, "dribbles", mc.Metric)
	}
}

func TestCompareNegativeMetricLowerWins(t *testing.T) {
	p1, p2 := comparisonPlayers()
	engine := NewComparisonEngine(logrus.New())

	result := engine.Compare(p1, p2, nil)

	var cards MetricComparison
	for _, mc := range result.MetricWinners {
		if mc.Metric == "yellowCards" {
			cards = mc
		}
	}
	require.Equal(t, "yellowCards", cards.Metric)
	// Fewer cards is better: player2 wins the metric.
	assert.Equal(t, WinnerPlayer2, cards.Winner)
}

func TestCompareEqualValuesTie(t *testing.T) {
	p1, p2 := comparisonPlayers()
	engine := NewComparisonEngine(logrus.New())

	result := engine.Compare(p1, p2, nil)

	for _, mc := range result.MetricWinners {
		if mc.Metric == "keyPasses" {
			assert.Equal(t, WinnerTie, mc.Winner)
		}
	}
}

func TestCompareOverallWinnerAndMargin(t *testing.T) {
	p1, p2 := comparisonPlayers()
	engine := NewComparisonEngine(logrus.New())

	result := engine.Compare(p1, p2, nil)

	assert.Equal(t, WinnerPlayer1, result.Overall.Winner)
	assert.Greater(t, result.Overall.Player1Score, result.Overall.Player2Score)

	expected := (result.Overall.Player1Score - result.Overall.Player2Score) /
		(result.Overall.Player1Score + result.Overall.Player2Score) * 100
	assert.InDelta(t, expected, result.Overall.MarginPercent, 0.01)
}

func TestCompareSymmetric(t *testing.T) {
	p1, p2 := comparisonPlayers()
	engine := NewComparisonEngine(logrus.New())

	forward := engine.Compare(p1, p2, nil)
	backward := engine.Compare(p2, p1, nil)

	assert.Equal(t, WinnerPlayer1, forward.Overall.Winner)
	assert.Equal(t, WinnerPlayer2, backward.Overall.Winner)
	assert.InDelta(t, forward.Overall.MarginPercent, backward.Overall.MarginPercent, 1e-9)
}

func TestCompareSearchWeightsOverrideDefaults(t *testing.T) {
	p1, p2 := comparisonPlayers()
	engine := NewComparisonEngine(logrus.New())

	result := engine.Compare(p1, p2, map[string]float64{"goals": 5.0})

	for _, mc := range result.MetricWinners {
		if mc.Metric == "goals" {
			assert.Equal(t, 5.0, mc.Weight)
		}
	}
}

func TestCompareCategoryWinners(t *testing.T) {
	p1, p2 := comparisonPlayers()
	engine := NewComparisonEngine(logrus.New())

	result := engine.Compare(p1, p2, nil)

	// goals and xgShot both favor player1 within the attacking category.
	winner, ok := result.CategoryWinners["attacking"]
	require.True(t, ok)
	assert.Equal(t, WinnerPlayer1, winner)
}

package tactics

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/stats"
)

// reportWith builds a percentile report carrying exactly the given
// category-organized percentiles.
func reportWith(categories map[string]map[string]float64) *stats.PercentileReport {
	return &stats.PercentileReport{
		PlayerID:   1,
		Position:   "cf",
		Buckets:    map[string]map[string]stats.MetricPercentile{},
		Categories: categories,
	}
}

func TestRoleFitSkipsMissingMetrics(t *testing.T) {
	engine := NewFitEngine(stats.NewPercentileEngine(logrus.New()), logrus.New())

	profile := Profile{
		Name: "Test Role",
		KeyStats: map[string]float64{
			"goals":  1.0,
			"shots":  1.0, // not in the report
		},
	}
	report := reportWith(map[string]map[string]float64{
		"attacking": {"goals": 80},
	})

	fit := engine.RoleFit(report, profile)

	// The missing metric leaves both numerator and denominator: 80, not 40.
	assert.Equal(t, 80.0, fit.Score)
}

func TestRoleFitWeightedMean(t *testing.T) {
	engine := NewFitEngine(stats.NewPercentileEngine(logrus.New()), logrus.New())

	profile := Profile{
		Name: "Test Role",
		KeyStats: map[string]float64{
			"goals":  2.0,
			"xgShot": 1.0,
		},
	}
	report := reportWith(map[string]map[string]float64{
		"attacking": {"goals": 90, "xgShot": 60},
	})

	fit := engine.RoleFit(report, profile)
	assert.InDelta(t, 80.0, fit.Score, 1e-9) // (90*2 + 60*1) / 3
}

func TestRoleFitNoMetricsScoresZero(t *testing.T) {
	engine := NewFitEngine(stats.NewPercentileEngine(logrus.New()), logrus.New())

	profile := Profile{Name: "Test Role", KeyStats: map[string]float64{"shots": 1.0}}
	fit := engine.RoleFit(reportWith(map[string]map[string]float64{}), profile)

	assert.Equal(t, 0.0, fit.Score)
	assert.Equal(t, "Inadequate", fit.Label)
}

func TestStyleFitNormalization(t *testing.T) {
	engine := NewFitEngine(stats.NewPercentileEngine(logrus.New()), logrus.New())

	style := Style{
		Key: "test_style",
		Metrics: map[string]float64{
			"goals":  2.0,
			"passes": 1.0, // missing, excluded from the maximum too
		},
	}
	report := reportWith(map[string]map[string]float64{
		"attacking": {"goals": 80},
	})

	fit := engine.StyleFit(report, style)
	assert.Equal(t, 80.0, fit.Score) // 100 * (80*2) / (100*2)
}

func TestFitLabels(t *testing.T) {
	tests := []struct {
		score float64
		label string
	}{
		{90, "Perfect"},
		{85, "Perfect"},
		{80, "Excellent"},
		{70, "Very good"},
		{60, "Good"},
		{50, "Average"},
		{40, "Below average"},
		{20, "Inadequate"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.label, FitLabel(tt.score), "score %.0f", tt.score)
	}
}

func TestRoleFitStrengthsAndWeaknesses(t *testing.T) {
	engine := NewFitEngine(stats.NewPercentileEngine(logrus.New()), logrus.New())

	profile := Profile{
		Name: "Test Role",
		KeyStats: map[string]float64{
			"goals":   1.0,
			"xgShot":  1.0,
			"dribbles": 1.0,
		},
	}
	report := reportWith(map[string]map[string]float64{
		"attacking":  {"goals": 85, "xgShot": 55},
		"possession": {"dribbles": 20},
	})

	fit := engine.RoleFit(report, profile)

	require.Len(t, fit.Strengths, 1)
	assert.Equal(t, "goals", fit.Strengths[0].Metric)
	require.Len(t, fit.Weaknesses, 1)
	assert.Equal(t, "dribbles", fit.Weaknesses[0].Metric)
}

func TestProfileEvaluatesEveryPosition(t *testing.T) {
	players := []*models.Player{
		{
			ID:        1,
			Name:      "Versatile Forward",
			Positions: []string{"cf", "amf"},
			Total:     map[string]float64{"minutesOnField": 1800, "goals": 20},
			Average:   map[string]float64{"xgShot": 0.6, "keyPasses": 2.5, "dribbles": 4},
			Percent:   map[string]float64{"goalConversionPercent": 28},
		},
		{
			ID:        2,
			Name:      "Baseline Forward",
			Positions: []string{"cf"},
			Total:     map[string]float64{"minutesOnField": 1800, "goals": 8},
			Average:   map[string]float64{"xgShot": 0.3, "keyPasses": 1.0, "dribbles": 2},
			Percent:   map[string]float64{"goalConversionPercent": 15},
		},
		{
			ID:        3,
			Name:      "Baseline Playmaker",
			Positions: []string{"amf"},
			Total:     map[string]float64{"minutesOnField": 1800, "goals": 4},
			Average:   map[string]float64{"xgShot": 0.2, "keyPasses": 2.0, "dribbles": 3},
			Percent:   map[string]float64{"goalConversionPercent": 10},
		},
	}
	agg := stats.NewAggregator(logrus.New()).ComputeAggregates(players, 180)
	engine := NewFitEngine(stats.NewPercentileEngine(logrus.New()), logrus.New())

	profile, err := engine.Profile(players[0], agg, 180)
	require.NoError(t, err)

	assert.Len(t, profile.PositionTables, 2)
	assert.Equal(t, 2, profile.Versatility.Positions)
	require.NotNil(t, profile.OptimalRole)
	assert.NotEmpty(t, profile.TopRoles)
	assert.LessOrEqual(t, len(profile.TopRoles), 5)
	assert.NotEmpty(t, profile.StyleFits)

	// Tables are sorted best first.
	for _, table := range profile.PositionTables {
		for i := 1; i < len(table.Roles); i++ {
			assert.GreaterOrEqual(t, table.Roles[i-1].Score, table.Roles[i].Score)
		}
	}
}

func TestProfileInsufficientMinutes(t *testing.T) {
	player := &models.Player{
		ID:        1,
		Positions: []string{"cf"},
		Total:     map[string]float64{"minutesOnField": 45},
		Average:   map[string]float64{},
		Percent:   map[string]float64{},
	}
	agg := stats.PositionAggregates{"cf": {models.BucketTotal: {}, models.BucketAverage: {}, models.BucketPercent: {}}}
	engine := NewFitEngine(stats.NewPercentileEngine(logrus.New()), logrus.New())

	_, err := engine.Profile(player, agg, 180)
	assert.ErrorIs(t, err, stats.ErrInsufficientData)
}

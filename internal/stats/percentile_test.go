package stats

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlens/scoutlens/internal/models"
)

func percentileFixture() (*models.Player, PositionAggregates) {
	player := &models.Player{
		ID:        1,
		Name:      "Test Striker",
		Positions: []string{"cf"},
		Total: map[string]float64{
			"minutesOnField": 1800,
			"goals":          20,
			"yellowCards":    5,
		},
		Average: map[string]float64{
			"xgShot": 0.5,
		},
		Percent: map[string]float64{
			"goalConversionPercent": 25,
		},
	}
	agg := PositionAggregates{
		"cf": {
			models.BucketTotal: {
				"minutesOnField": {Average: 1500, Std: 400},
				"goals":          {Average: 10, Std: 5},
				"yellowCards":    {Average: 3, Std: 1},
			},
			models.BucketAverage: {
				"xgShot": {Average: 0.3, Std: 0.1},
			},
			models.BucketPercent: {
				"goalConversionPercent": {Average: 25, Std: 0},
			},
		},
	}
	return player, agg
}

func TestPercentilesZScoreTwo(t *testing.T) {
	player, agg := percentileFixture()
	engine := NewPercentileEngine(logrus.New())

	report, err := engine.Percentiles(player, agg, 180)
	require.NoError(t, err)

	// xgShot 0.5 against mean 0.3 std 0.1: z=2, percentile 97.72
	mp := report.Buckets[models.BucketAverage]["xgShot"]
	assert.InDelta(t, 2.0, mp.ZScore, 1e-9)
	assert.Equal(t, 97.72, mp.Percentile)
}

func TestPercentilesZeroStdIsNeutral(t *testing.T) {
	player, agg := percentileFixture()
	engine := NewPercentileEngine(logrus.New())

	report, err := engine.Percentiles(player, agg, 180)
	require.NoError(t, err)

	mp := report.Buckets[models.BucketPercent]["goalConversionPercent"]
	assert.Equal(t, 0.0, mp.ZScore)
	assert.Equal(t, 50.0, mp.Percentile)
}

func TestPercentilesNegativeMetricMirrored(t *testing.T) {
	player, agg := percentileFixture()
	engine := NewPercentileEngine(logrus.New())

	report, err := engine.Percentiles(player, agg, 180)
	require.NoError(t, err)

	// 5 yellow cards against mean 3 std 1: raw z=2 mirrors to -2, and the
	// 97.72 percentile mirrors to 2.28.
	mp := report.Buckets[models.BucketTotal]["yellowCards"]
	assert.InDelta(t, -2.0, mp.ZScore, 1e-9)
	assert.Equal(t, 2.28, mp.Percentile)
}

func TestPercentilesInsufficientMinutes(t *testing.T) {
	player, agg := percentileFixture()
	player.Total["minutesOnField"] = 90
	engine := NewPercentileEngine(logrus.New())

	_, err := engine.Percentiles(player, agg, 180)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestPercentilesIdempotent(t *testing.T) {
	player, agg := percentileFixture()
	engine := NewPercentileEngine(logrus.New())

	first, err := engine.Percentiles(player, agg, 180)
	require.NoError(t, err)
	second, err := engine.Percentiles(player, agg, 180)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAccessorCategoryLookup(t *testing.T) {
	player, agg := percentileFixture()
	engine := NewPercentileEngine(logrus.New())
	report, err := engine.Percentiles(player, agg, 180)
	require.NoError(t, err)

	v, ok := report.Percentile("goals", "attacking")
	assert.True(t, ok)
	assert.Equal(t, 97.72, v)
}

func TestAccessorSearchesAllCategories(t *testing.T) {
	player, agg := percentileFixture()
	engine := NewPercentileEngine(logrus.New())
	report, err := engine.Percentiles(player, agg, 180)
	require.NoError(t, err)

	// Wrong category still resolves through the all-categories pass.
	v, ok := report.Percentile("goals", "defensive")
	assert.True(t, ok)
	assert.Equal(t, 97.72, v)
}

func TestAccessorResolvesAliases(t *testing.T) {
	player, agg := percentileFixture()
	engine := NewPercentileEngine(logrus.New())
	report, err := engine.Percentiles(player, agg, 180)
	require.NoError(t, err)

	v, ok := report.Percentile("expected_goals", "")
	assert.True(t, ok)
	assert.Equal(t, 97.72, v)
}

func TestAccessorFuzzyFallback(t *testing.T) {
	player, agg := percentileFixture()
	engine := NewPercentileEngine(logrus.New())
	report, err := engine.Percentiles(player, agg, 180)
	require.NoError(t, err)

	// "conversion" matches goalConversionPercent by substring only.
	v, ok := report.Percentile("conversion", "")
	assert.True(t, ok)
	assert.Equal(t, 50.0, v)
}

func TestAccessorMiss(t *testing.T) {
	player, agg := percentileFixture()
	engine := NewPercentileEngine(logrus.New())
	report, err := engine.Percentiles(player, agg, 180)
	require.NoError(t, err)

	_, ok := report.Percentile("nosuchmetric", "")
	assert.False(t, ok)
	assert.Equal(t, 0.0, report.PercentileOrZero("nosuchmetric", ""))
}

func TestPercentilesNeutralAtThinPosition(t *testing.T) {
	// Aggregates built while every cf player sat below the minutes
	// threshold. An eligible player evaluated later still gets an entry for
	// each metric, at the neutral percentile.
	agg := NewAggregator(logrus.New()).ComputeAggregates(
		[]*models.Player{testPlayer(1, "cf", 90, 4)}, 180)

	veteran := testPlayer(2, "cf", 1800, 12)
	report, err := NewPercentileEngine(logrus.New()).Percentiles(veteran, agg, 180)
	require.NoError(t, err)

	mp, ok := report.Buckets[models.BucketTotal]["goals"]
	require.True(t, ok)
	assert.Equal(t, 0.0, mp.ZScore)
	assert.Equal(t, 50.0, mp.Percentile)
}

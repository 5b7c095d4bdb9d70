package scoring

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/stats"
	"github.com/scoutlens/scoutlens/internal/store"
)

func rankingStriker(id int, name string, goals, xg float64) *models.Player {
	return &models.Player{
		ID:        id,
		Name:      name,
		Positions: []string{"cf"},
		Total: map[string]float64{
			"minutesOnField": 1800,
			"goals":          goals,
		},
		Average: map[string]float64{
			"xgShot": xg,
		},
		Percent: map[string]float64{},
	}
}

func rankingFixture(t *testing.T) (*store.Store, *RankingEngine) {
	t.Helper()
	players := []*models.Player{
		rankingStriker(1, "Elite Nine", 25, 0.7),
		rankingStriker(2, "Solid Nine", 15, 0.5),
		rankingStriker(3, "Backup Nine", 5, 0.2),
	}
	s := store.NewFromPlayers(players, 180, logrus.New())
	engine := NewRankingEngine(s, stats.NewPercentileEngine(logrus.New()), logrus.New())
	return s, engine
}

func TestRankOrdersByScore(t *testing.T) {
	s, engine := rankingFixture(t)

	mid, err := s.GetPlayer(2)
	require.NoError(t, err)

	ranks, err := engine.Rank(mid, 180)
	require.NoError(t, err)
	require.Len(t, ranks, 1)

	assert.Equal(t, "cf", ranks[0].Position)
	assert.Equal(t, 2, ranks[0].Rank)
	assert.Equal(t, 3, ranks[0].PoolSize)
	assert.Contains(t, ranks[0].KeyMetrics, "goals")
}

func TestRankTopAndBottom(t *testing.T) {
	s, engine := rankingFixture(t)

	top, _ := s.GetPlayer(1)
	bottom, _ := s.GetPlayer(3)

	topRanks, err := engine.Rank(top, 180)
	require.NoError(t, err)
	assert.Equal(t, 1, topRanks[0].Rank)

	bottomRanks, err := engine.Rank(bottom, 180)
	require.NoError(t, err)
	assert.Equal(t, 3, bottomRanks[0].Rank)
}

func TestRankDeterministic(t *testing.T) {
	s, engine := rankingFixture(t)
	p, _ := s.GetPlayer(2)

	first, err := engine.Rank(p, 180)
	require.NoError(t, err)
	second, err := engine.Rank(p, 180)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRankInsufficientMinutes(t *testing.T) {
	_, engine := rankingFixture(t)

	bench := rankingStriker(9, "Bench Nine", 2, 0.1)
	bench.Total["minutesOnField"] = 45

	_, err := engine.Rank(bench, 180)
	assert.ErrorIs(t, err, stats.ErrInsufficientData)
}

func TestRankInsertsMissingPlayer(t *testing.T) {
	_, engine := rankingFixture(t)

	// A player eligible by minutes but absent from the snapshot's position
	// index still gets ranked against the pool.
	outsider := rankingStriker(42, "Unlisted Nine", 30, 0.9)

	ranks, err := engine.Rank(outsider, 180)
	require.NoError(t, err)
	require.Len(t, ranks, 1)
	assert.Equal(t, 4, ranks[0].PoolSize)
	assert.GreaterOrEqual(t, ranks[0].Rank, 1)
}

func TestRankScoresAgainstRankedPositionBaseline(t *testing.T) {
	creator := func(id int, name string, positions []string, keyPasses, xgAssist float64) *models.Player {
		return &models.Player{
			ID:        id,
			Name:      name,
			Positions: positions,
			Total: map[string]float64{
				"minutesOnField": 1800,
				"goals":          18,
				"assists":        12,
			},
			Average: map[string]float64{
				"keyPasses": keyPasses,
				"xgAssist":  xgAssist,
			},
			Percent: map[string]float64{},
		}
	}

	// Two identical cf twins plus two modest amf regulars. The dual-position
	// twin must be ranked at amf against the amf population, not against the
	// cf baseline where his twin pins every percentile at 50.
	players := []*models.Player{
		creator(1, "Dual Threat", []string{"cf", "amf"}, 3.5, 0.45),
		creator(2, "Twin Nine", []string{"cf"}, 3.5, 0.45),
		creator(3, "Steady Ten", []string{"amf"}, 1.2, 0.15),
		creator(4, "Backup Ten", []string{"amf"}, 0.8, 0.10),
	}
	s := store.NewFromPlayers(players, 180, logrus.New())
	engine := NewRankingEngine(s, stats.NewPercentileEngine(logrus.New()), logrus.New())

	dual, err := s.GetPlayer(1)
	require.NoError(t, err)

	ranks, err := engine.Rank(dual, 180)
	require.NoError(t, err)
	require.Len(t, ranks, 2)

	var amfRank *PositionRank
	for i := range ranks {
		if ranks[i].Position == "amf" {
			amfRank = &ranks[i]
		}
	}
	require.NotNil(t, amfRank)

	assert.Equal(t, 1, amfRank.Rank)
	assert.Equal(t, 3, amfRank.PoolSize)
	assert.Greater(t, amfRank.MetricsPercentiles["keyPasses"], 90.0)
	assert.Greater(t, amfRank.Score, 60.0)
}

package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlens/scoutlens/internal/models"
)

func storeFixture(t *testing.T) *Store {
	t.Helper()
	players := []*models.Player{
		{
			ID: 1, Name: "Lautaro Martinez", Positions: []string{"cf"},
			Total:   map[string]float64{"minutesOnField": 1800, "goals": 20},
			Average: map[string]float64{}, Percent: map[string]float64{},
		},
		{
			ID: 2, Name: "Lautaro Gianetti", Positions: []string{"cb"},
			Total:   map[string]float64{"minutesOnField": 1500},
			Average: map[string]float64{}, Percent: map[string]float64{},
		},
		{
			ID: 3, Name: "Marcus Thuram", Positions: []string{"cf", "lw"},
			Total:   map[string]float64{"minutesOnField": 1600, "goals": 12},
			Average: map[string]float64{}, Percent: map[string]float64{},
		},
	}
	return NewFromPlayers(players, 180, logrus.New())
}

func TestGetPlayer(t *testing.T) {
	s := storeFixture(t)

	p, err := s.GetPlayer(1)
	require.NoError(t, err)
	assert.Equal(t, "Lautaro Martinez", p.Name)

	_, err = s.GetPlayer(99)
	assert.Error(t, err)
}

func TestGetPlayerByNameExact(t *testing.T) {
	s := storeFixture(t)

	p, err := s.GetPlayerByName("Marcus Thuram")
	require.NoError(t, err)
	assert.Equal(t, 3, p.ID)
}

func TestGetPlayerByNameCaseInsensitive(t *testing.T) {
	s := storeFixture(t)

	p, err := s.GetPlayerByName("marcus thuram")
	require.NoError(t, err)
	assert.Equal(t, 3, p.ID)
}

func TestGetPlayerByNameSubstring(t *testing.T) {
	s := storeFixture(t)

	p, err := s.GetPlayerByName("thuram")
	require.NoError(t, err)
	assert.Equal(t, 3, p.ID)
}

func TestGetPlayerByNameAmbiguousIsDeterministic(t *testing.T) {
	s := storeFixture(t)

	// Two players match "lautaro"; the alphabetically first wins.
	p, err := s.GetPlayerByName("lautaro")
	require.NoError(t, err)
	assert.Equal(t, "Lautaro Gianetti", p.Name)
}

func TestGetPlayerByNameMiss(t *testing.T) {
	s := storeFixture(t)

	_, err := s.GetPlayerByName("Nonexistent Player")
	assert.Error(t, err)
}

func TestPlayersWithPosition(t *testing.T) {
	s := storeFixture(t)

	cfs := s.PlayersWithPosition("cf")
	assert.Len(t, cfs, 2)

	// Secondary positions are indexed too.
	lws := s.PlayersWithPosition("lw")
	assert.Len(t, lws, 1)
}

func TestRefreshAggregatesSwaps(t *testing.T) {
	s := storeFixture(t)

	before := s.Aggregates()
	s.RefreshAggregates(180)
	after := s.Aggregates()

	// Same content, freshly computed.
	assert.Equal(t, before, after)
}

func TestLoadFromSnapshot(t *testing.T) {
	players := []*models.Player{
		{
			ID: 7, Name: "Snapshot Player", Positions: []string{"cf"},
			Total:   map[string]float64{"minutesOnField": 900, "goals": 9},
			Average: map[string]float64{}, Percent: map[string]float64{},
		},
	}
	data, err := json.Marshal(players)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "players.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	s, err := Load(path, 180, logrus.New())
	require.NoError(t, err)
	assert.Equal(t, 1, s.Size())

	p, err := s.GetPlayer(7)
	require.NoError(t, err)
	assert.Equal(t, "Snapshot Player", p.Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/players.json", 180, logrus.New())
	assert.Error(t, err)
}

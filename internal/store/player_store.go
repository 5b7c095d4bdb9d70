package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/stats"
)

// Store is the read-only view over the player population snapshot. The
// snapshot is loaded once and never mutated; position aggregates are the only
// part that gets recomputed, swapped atomically behind the mutex by the
// background refresher.
type Store struct {
	mu         sync.RWMutex
	players    []*models.Player
	byID       map[int]*models.Player
	byPosition map[string][]*models.Player
	aggregates stats.PositionAggregates

	logger *logrus.Logger
}

// Load reads the population snapshot from disk and computes the initial
// position aggregates.
func Load(path string, minMinutes int, logger *logrus.Logger) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read player snapshot: %w", err)
	}

	var players []*models.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("failed to parse player snapshot: %w", err)
	}

	s := NewFromPlayers(players, minMinutes, logger)
	logger.WithFields(logrus.Fields{
		"path":    path,
		"players": len(players),
	}).Info("Player snapshot loaded")
	return s, nil
}

// NewFromPlayers builds a store over an in-memory population. Used directly
// by tests and by the snapshot importer.
func NewFromPlayers(players []*models.Player, minMinutes int, logger *logrus.Logger) *Store {
	s := &Store{
		players:    players,
		byID:       make(map[int]*models.Player, len(players)),
		byPosition: make(map[string][]*models.Player),
		logger:     logger,
	}
	for _, p := range players {
		s.byID[p.ID] = p
		for _, pos := range p.Positions {
			s.byPosition[pos] = append(s.byPosition[pos], p)
		}
	}
	s.aggregates = stats.NewAggregator(logger).ComputeAggregates(players, minMinutes)
	return s
}

// GetPlayer returns the player with the given snapshot id.
func (s *Store) GetPlayer(id int) (*models.Player, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("player %d not found", id)
	}
	return p, nil
}

// GetPlayerByName resolves a name with decreasing strictness: exact,
// case-insensitive, then substring. Ambiguous substring matches resolve to
// the alphabetically first candidate for determinism.
func (s *Store) GetPlayerByName(name string) (*models.Player, error) {
	for _, p := range s.players {
		if p.Name == name {
			return p, nil
		}
	}
	lower := strings.ToLower(name)
	for _, p := range s.players {
		if strings.ToLower(p.Name) == lower {
			return p, nil
		}
	}
	var candidates []*models.Player
	for _, p := range s.players {
		if strings.Contains(strings.ToLower(p.Name), lower) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("player %q not found", name)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
	return candidates[0], nil
}

// PlayersWithPosition returns every player listing the position code
// (primary or secondary), in snapshot order.
func (s *Store) PlayersWithPosition(code string) []*models.Player {
	return s.byPosition[code]
}

// AllPlayers returns the whole population in snapshot order.
func (s *Store) AllPlayers() []*models.Player {
	return s.players
}

// Aggregates returns the current position aggregate table.
func (s *Store) Aggregates() stats.PositionAggregates {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.aggregates
}

// RefreshAggregates recomputes the aggregate table, called by the scheduled
// refresher. The new table replaces the old one atomically; in-flight
// requests keep the snapshot they already read.
func (s *Store) RefreshAggregates(minMinutes int) {
	aggregates := stats.NewAggregator(s.logger).ComputeAggregates(s.players, minMinutes)
	s.mu.Lock()
	s.aggregates = aggregates
	s.mu.Unlock()
}

// Size reports the population size, used by the health endpoint.
func (s *Store) Size() int {
	return len(s.players)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/analysis"
	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/scoring"
	"github.com/scoutlens/scoutlens/internal/stats"
	"github.com/scoutlens/scoutlens/internal/store"
	"github.com/scoutlens/scoutlens/internal/tactics"
	"github.com/scoutlens/scoutlens/pkg/config"
	"github.com/scoutlens/scoutlens/pkg/logger"
)

// PlayerAnalysisService serves the per-player analytical endpoints: tactical
// profile, positional rankings and SWOT.
type PlayerAnalysisService struct {
	store      *store.Store
	percentile *stats.PercentileEngine
	fit        *tactics.FitEngine
	ranking    *scoring.RankingEngine
	swot       *analysis.SwotEngine
	cache      *CacheService
	cfg        *config.Config
	logger     *logrus.Logger
}

func NewPlayerAnalysisService(
	s *store.Store,
	percentile *stats.PercentileEngine,
	fit *tactics.FitEngine,
	ranking *scoring.RankingEngine,
	swot *analysis.SwotEngine,
	cache *CacheService,
	cfg *config.Config,
	logger *logrus.Logger,
) *PlayerAnalysisService {
	return &PlayerAnalysisService{
		store:      s,
		percentile: percentile,
		fit:        fit,
		ranking:    ranking,
		swot:       swot,
		cache:      cache,
		cfg:        cfg,
		logger:     logger,
	}
}

// TacticalProfile builds the full role and style fit profile for a player.
func (s *PlayerAnalysisService) TacticalProfile(ctx context.Context, playerID int) (*tactics.PlayerProfile, error) {
	player, err := s.store.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}

	cacheKey := ProfileCacheKey(playerID)
	if s.cache != nil {
		var cached tactics.PlayerProfile
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	profile, err := s.fit.Profile(player, s.store.Aggregates(), s.cfg.MinMinutesPlayed)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, profile, 6*time.Hour); err != nil {
			s.logger.WithError(err).Debug("Failed to cache tactical profile")
		}
	}
	return profile, nil
}

// Rankings returns the player's rank within each of their listed positions.
func (s *PlayerAnalysisService) Rankings(playerID int) ([]scoring.PositionRank, error) {
	player, err := s.store.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}
	return s.ranking.Rank(player, s.cfg.MinMinutesPlayed)
}

// Swot builds the four-quadrant report. Players below the minutes threshold
// get the canned low-confidence report rather than an error.
func (s *PlayerAnalysisService) Swot(ctx context.Context, playerID int, language string) (*analysis.SwotAnalysis, error) {
	player, err := s.store.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}
	if language != "it" {
		language = "en"
	}

	cacheKey := SwotCacheKey(playerID, language)
	if s.cache != nil {
		var cached analysis.SwotAnalysis
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	report, err := s.percentile.Percentiles(player, s.store.Aggregates(), s.cfg.MinMinutesPlayed)
	if err != nil && !errors.Is(err, stats.ErrInsufficientData) {
		return nil, fmt.Errorf("failed to compute percentiles: %w", err)
	}

	result := s.swot.Analyze(ctx, player, report, language)
	if result.Degraded {
		logger.WithPlayer(player.ID, player.Name).Warn("SWOT served without model narrative")
	}

	if s.cache != nil && !result.Degraded {
		ttl := time.Duration(s.cfg.AICacheExpiration) * time.Second
		if err := s.cache.Set(ctx, cacheKey, result, ttl); err != nil {
			s.logger.WithError(err).Debug("Failed to cache SWOT analysis")
		}
	}
	return result, nil
}

// Percentiles exposes the raw percentile report for a player, primarily for
// the player detail endpoint.
func (s *PlayerAnalysisService) Percentiles(playerID int) (*stats.PercentileReport, error) {
	player, err := s.store.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}
	return s.percentile.Percentiles(player, s.store.Aggregates(), s.cfg.MinMinutesPlayed)
}

// ResolvePlayer finds a player by name for handlers that accept names
// instead of IDs.
func (s *PlayerAnalysisService) ResolvePlayer(name string) (*models.Player, error) {
	return s.store.GetPlayerByName(name)
}

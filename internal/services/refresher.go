package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/store"
	"github.com/scoutlens/scoutlens/pkg/config"
)

// RefresherService runs the scheduled maintenance jobs: recomputing position
// aggregates and pruning expired scout reports.
type RefresherService struct {
	store     *store.Store
	reports   *ScoutReportService
	cache     *CacheService
	cfg       *config.Config
	logger    *logrus.Logger
	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

func NewRefresherService(s *store.Store, reports *ScoutReportService, cache *CacheService, cfg *config.Config, logger *logrus.Logger) *RefresherService {
	return &RefresherService{
		store:   s,
		reports: reports,
		cache:   cache,
		cfg:     cfg,
		logger:  logger,
		cron:    cron.New(),
	}
}

// Start schedules the maintenance jobs. Aggregates are also recomputed once
// immediately so the first requests never see stale numbers after a restart.
func (s *RefresherService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("refresher is already running")
	}

	_, err := s.cron.AddFunc(s.cfg.AggregateRefreshSchedule, s.refreshAggregates)
	if err != nil {
		return fmt.Errorf("failed to schedule aggregate refresh: %w", err)
	}

	_, err = s.cron.AddFunc("0 3 * * *", s.pruneReports) // 3 AM daily
	if err != nil {
		return fmt.Errorf("failed to schedule report cleanup: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	go s.refreshAggregates()

	s.logger.Info("Refresher service started")
	return nil
}

// Stop halts the scheduled jobs and waits for any running one to finish.
func (s *RefresherService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.logger.Info("Refresher service stopped")
}

func (s *RefresherService) refreshAggregates() {
	start := time.Now()
	s.store.RefreshAggregates(s.cfg.MinMinutesPlayed)

	// Cached profiles, SWOTs, comparisons and search results were computed
	// against the previous aggregates.
	invalidated := int64(0)
	if s.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		var err error
		if invalidated, err = s.cache.InvalidateAnalysisCaches(ctx); err != nil {
			s.logger.WithError(err).Warn("Failed to invalidate analysis caches after aggregate refresh")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"players":           s.store.Size(),
		"cache_invalidated": invalidated,
		"duration":          time.Since(start).String(),
	}).Info("Position aggregates refreshed")
}

func (s *RefresherService) pruneReports() {
	if s.reports == nil {
		return
	}
	deleted, err := s.reports.PruneOlderThan(s.cfg.ReportRetentionDays)
	if err != nil {
		s.logger.Errorf("Failed to prune scout reports: %v", err)
		return
	}
	if deleted > 0 {
		s.logger.WithField("deleted", deleted).Info("Expired scout reports pruned")
	}
}

// Status reports the scheduler state for the health endpoint.
func (s *RefresherService) Status() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]interface{}{
		"running":   s.isRunning,
		"cron_jobs": len(s.cron.Entries()),
	}
}

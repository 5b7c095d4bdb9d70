package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/analysis"
	"github.com/scoutlens/scoutlens/internal/llm"
	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/store"
	"github.com/scoutlens/scoutlens/pkg/config"
)

// ComparisonReport is a head-to-head report with an optional narrative.
type ComparisonReport struct {
	Result    *analysis.ComparisonResult `json:"result"`
	Narrative string                     `json:"narrative,omitempty"`
	Degraded  bool                       `json:"degraded,omitempty"`
}

// ComparisonService resolves player names, runs the comparison engine and
// narrates the outcome.
type ComparisonService struct {
	store  *store.Store
	engine *analysis.ComparisonEngine
	model  llm.LanguageModel
	cache  *CacheService
	cfg    *config.Config
	logger *logrus.Logger
}

func NewComparisonService(s *store.Store, engine *analysis.ComparisonEngine, model llm.LanguageModel, cache *CacheService, cfg *config.Config, logger *logrus.Logger) *ComparisonService {
	return &ComparisonService{
		store:  s,
		engine: engine,
		model:  model,
		cache:  cache,
		cfg:    cfg,
		logger: logger,
	}
}

// CompareByName resolves two player names and compares them. Name
// resolution failures are returned as-is so the handler can report which
// name was not found.
func (s *ComparisonService) CompareByName(ctx context.Context, name1, name2, language string) (*ComparisonReport, error) {
	p1, err := s.store.GetPlayerByName(name1)
	if err != nil {
		return nil, fmt.Errorf("player %q: %w", name1, err)
	}
	p2, err := s.store.GetPlayerByName(name2)
	if err != nil {
		return nil, fmt.Errorf("player %q: %w", name2, err)
	}
	return s.Compare(ctx, p1, p2, language)
}

// Compare runs the head-to-head and attaches a narrative. The numeric
// comparison never depends on the language model.
func (s *ComparisonService) Compare(ctx context.Context, p1, p2 *models.Player, language string) (*ComparisonReport, error) {
	if p1.ID == p2.ID {
		return nil, fmt.Errorf("cannot compare a player with themselves")
	}

	cacheKey := ComparisonCacheKey(p1.ID, p2.ID) + ":" + language
	if s.cache != nil {
		var cached ComparisonReport
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	result := s.engine.Compare(p1, p2, nil)
	report := &ComparisonReport{Result: result}

	narrative, err := s.narrative(ctx, p1, p2, result, language)
	if err != nil {
		s.logger.WithError(err).Warn("Comparison narrative generation failed, returning numbers only")
		report.Degraded = true
	} else {
		report.Narrative = narrative
	}

	if s.cache != nil && !report.Degraded {
		ttl := time.Duration(s.cfg.AICacheExpiration) * time.Second
		if err := s.cache.Set(ctx, cacheKey, report, ttl); err != nil {
			s.logger.WithError(err).Debug("Failed to cache comparison")
		}
	}

	return report, nil
}

func (s *ComparisonService) narrative(ctx context.Context, p1, p2 *models.Player, result *analysis.ComparisonResult, language string) (string, error) {
	if s.model == nil {
		return "", fmt.Errorf("no language model configured")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Head-to-head: %s (%s) vs %s (%s).\n", p1.Name, p1.PrimaryPosition(), p2.Name, p2.PrimaryPosition())
	fmt.Fprintf(&b, "Overall winner: %s (margin %.1f%%).\n", winnerName(result.Overall.Winner, p1, p2), result.Overall.MarginPercent)

	b.WriteString("Category winners:\n")
	categories := make([]string, 0, len(result.CategoryWinners))
	for category := range result.CategoryWinners {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		fmt.Fprintf(&b, "- %s: %s\n", category, winnerName(result.CategoryWinners[category], p1, p2))
	}

	b.WriteString("\nWrite a short scouting verdict (3 to 4 sentences) on this comparison. Note where each player holds the edge. Do not invent statistics.")
	if language == "it" {
		b.WriteString(" Answer in Italian.")
	}

	system := "You are a football scouting assistant. Compare players factually, grounded only in the provided numbers."
	return s.model.Complete(ctx, system, []llm.Message{{Role: "user", Content: b.String()}})
}

func winnerName(winner string, p1, p2 *models.Player) string {
	switch winner {
	case analysis.WinnerPlayer1:
		return p1.Name
	case analysis.WinnerPlayer2:
		return p2.Name
	default:
		return "even"
	}
}

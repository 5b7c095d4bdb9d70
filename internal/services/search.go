package services

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/llm"
	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/scoring"
	"github.com/scoutlens/scoutlens/internal/store"
	"github.com/scoutlens/scoutlens/pkg/config"
)

// SearchCandidate is one scored entry of a search response.
type SearchCandidate struct {
	PlayerID    int     `json:"player_id"`
	Name        string  `json:"name"`
	Age         int     `json:"age"`
	Club        string  `json:"club"`
	Nationality string  `json:"nationality"`
	Position    string  `json:"position"`
	Score       float64 `json:"score"`

	// Raw values for the metrics the query asked about, for the response
	// table.
	Highlights map[string]float64 `json:"highlights,omitempty"`
}

// SearchResult is the full response of one search query.
type SearchResult struct {
	Query      string                   `json:"query"`
	Parameters *models.SearchParameters `json:"parameters"`
	Candidates []SearchCandidate        `json:"candidates"`
	Narrative  string                   `json:"narrative,omitempty"`
	Degraded   bool                     `json:"degraded,omitempty"`
}

// SearchService turns extracted search parameters into a ranked shortlist
// with an optional narrative summary.
type SearchService struct {
	store  *store.Store
	engine *scoring.Engine
	model  llm.LanguageModel
	cache  *CacheService
	cfg    *config.Config
	logger *logrus.Logger
}

func NewSearchService(s *store.Store, engine *scoring.Engine, model llm.LanguageModel, cache *CacheService, cfg *config.Config, logger *logrus.Logger) *SearchService {
	return &SearchService{
		store:  s,
		engine: engine,
		model:  model,
		cache:  cache,
		cfg:    cfg,
		logger: logger,
	}
}

// Search filters the snapshot by the bio criteria, scores every surviving
// player against the statistical parameters, and returns the top K with a
// narrative. The numeric shortlist never depends on the language model; a
// model failure only degrades the narrative.
func (s *SearchService) Search(ctx context.Context, query string, params *models.SearchParameters, language string) (*SearchResult, error) {
	if params == nil {
		return nil, fmt.Errorf("no search parameters extracted")
	}

	cacheKey := SearchCacheKey(searchHash(params, language))
	if s.cache != nil {
		var cached SearchResult
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	pool := s.filterPool(params)
	agg := s.store.Aggregates()

	candidates := make([]SearchCandidate, 0, len(pool))
	for _, p := range pool {
		ps := s.engine.ScoreAcrossPositions(p, params, agg)
		if ps.Score <= 0 {
			continue
		}
		candidates = append(candidates, SearchCandidate{
			PlayerID:    p.ID,
			Name:        p.Name,
			Age:         p.Age,
			Club:        p.Club,
			Nationality: p.Nationality,
			Position:    ps.Position,
			Score:       ps.Score,
			Highlights:  highlightValues(p, params),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Name < candidates[j].Name
	})

	topK := s.cfg.SearchTopK
	if topK <= 0 {
		topK = 5
	}
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	result := &SearchResult{
		Query:      query,
		Parameters: params,
		Candidates: candidates,
	}

	narrative, err := s.narrative(ctx, query, candidates, language)
	if err != nil {
		s.logger.WithError(err).Warn("Search narrative generation failed, returning numeric shortlist only")
		result.Degraded = true
	} else {
		result.Narrative = narrative
	}

	if s.cache != nil && !result.Degraded {
		ttl := time.Duration(s.cfg.AICacheExpiration) * time.Second
		if err := s.cache.SetWithRetry(ctx, cacheKey, result, ttl, 3); err != nil {
			s.logger.WithError(err).Debug("Failed to cache search result")
		}
	}

	return result, nil
}

// filterPool applies the non-statistical criteria. Position filtering keeps
// players listing ANY requested code; the score decides which position best
// explains the match.
func (s *SearchService) filterPool(params *models.SearchParameters) []*models.Player {
	var pool []*models.Player
	for _, p := range s.store.AllPlayers() {
		if !matchesBio(p, params) {
			continue
		}
		pool = append(pool, p)
	}
	return pool
}

func matchesBio(p *models.Player, params *models.SearchParameters) bool {
	if len(params.PositionCodes) > 0 {
		found := false
		for _, code := range params.PositionCodes {
			if p.HasPosition(code) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if params.MinAge > 0 && p.Age < params.MinAge {
		return false
	}
	if params.MaxAge > 0 && p.Age > params.MaxAge {
		return false
	}
	if params.MinHeight > 0 && p.Height < params.MinHeight {
		return false
	}
	if params.MaxHeight > 0 && p.Height > params.MaxHeight {
		return false
	}
	if params.MinWeight > 0 && p.Weight < params.MinWeight {
		return false
	}
	if params.MaxWeight > 0 && p.Weight > params.MaxWeight {
		return false
	}
	if params.Foot != "" && !strings.EqualFold(p.Foot, params.Foot) {
		return false
	}
	if params.ContractExpiration != "" && p.ContractExpiration > params.ContractExpiration {
		return false
	}
	return true
}

// highlightValues collects the raw values behind the query's statistical
// parameters so the response can show why each candidate matched.
func highlightValues(p *models.Player, params *models.SearchParameters) map[string]float64 {
	flat := p.FlatStats()
	out := make(map[string]float64)
	for _, param := range params.ActiveStatParams() {
		_, metric, ok := models.StatParamMetric(param)
		if !ok {
			continue
		}
		if v, present := flat[metric]; present {
			out[metric] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (s *SearchService) narrative(ctx context.Context, query string, candidates []SearchCandidate, language string) (string, error) {
	if s.model == nil {
		return "", fmt.Errorf("no language model configured")
	}
	if len(candidates) == 0 {
		if language == "it" {
			return "Nessun giocatore soddisfa i criteri richiesti.", nil
		}
		return "No players match the requested criteria.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Scouting query: %s\n\nShortlist (best match first):\n", query)
	for i, c := range candidates {
		fmt.Fprintf(&b, "%d. %s (%s, age %d, %s), relevance %.2f", i+1, c.Name, c.Position, c.Age, c.Club, c.Score)
		if len(c.Highlights) > 0 {
			parts := make([]string, 0, len(c.Highlights))
			for metric, v := range c.Highlights {
				parts = append(parts, fmt.Sprintf("%s %.2f", metric, v))
			}
			sort.Strings(parts)
			fmt.Fprintf(&b, " [%s]", strings.Join(parts, ", "))
		}
		b.WriteString("\n")
	}
	b.WriteString("\nWrite a short scouting note (3 to 5 sentences) presenting this shortlist. Mention what sets the top candidate apart. Do not invent statistics.")
	if language == "it" {
		b.WriteString(" Answer in Italian.")
	}

	system := "You are a football scouting assistant. Present shortlists factually, grounded only in the provided numbers."
	return s.model.Complete(ctx, system, []llm.Message{{Role: "user", Content: b.String()}})
}

func searchHash(params *models.SearchParameters, language string) string {
	payload, _ := json.Marshal(struct {
		P *models.SearchParameters `json:"p"`
		L string                   `json:"l"`
	}{params, language})
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("%x", sum[:12])
}

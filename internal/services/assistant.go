package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/llm"
	"github.com/scoutlens/scoutlens/pkg/config"
)

// AssistantReply is the response to one natural-language query, whatever
// intent it resolved to.
type AssistantReply struct {
	Intent     string            `json:"intent"`
	Message    string            `json:"message,omitempty"`
	Search     *SearchResult     `json:"search,omitempty"`
	Comparison *ComparisonReport `json:"comparison,omitempty"`
	Explain    *Explanation      `json:"explanation,omitempty"`
	Degraded   bool              `json:"degraded,omitempty"`
}

// AssistantService is the conversational front of the scouting engine. It
// classifies each query and dispatches to the matching service.
type AssistantService struct {
	router     *IntentRouter
	search     *SearchService
	comparison *ComparisonService
	explain    *ExplainService
	reports    *ScoutReportService
	limiter    *AIRateLimiter
	model      llm.LanguageModel
	cfg        *config.Config
	logger     *logrus.Logger
}

func NewAssistantService(
	router *IntentRouter,
	search *SearchService,
	comparison *ComparisonService,
	explain *ExplainService,
	reports *ScoutReportService,
	limiter *AIRateLimiter,
	model llm.LanguageModel,
	cfg *config.Config,
	logger *logrus.Logger,
) *AssistantService {
	return &AssistantService{
		router:     router,
		search:     search,
		comparison: comparison,
		explain:    explain,
		reports:    reports,
		limiter:    limiter,
		model:      model,
		cfg:        cfg,
		logger:     logger,
	}
}

// Handle answers one query for one user. Rate limiting applies to the whole
// query since every intent may spend model tokens.
func (s *AssistantService) Handle(ctx context.Context, userID uint, query, language string) (*AssistantReply, error) {
	switch language {
	case "en", "it":
	default:
		language = s.cfg.DefaultLanguage
		if language != "it" {
			language = "en"
		}
	}

	if s.limiter != nil {
		if err := s.limiter.Allow(ctx, fmt.Sprintf("%d", userID)); err != nil {
			return nil, err
		}
	}

	intent, classifyErr := s.router.Classify(ctx, query)
	if intent == nil {
		return nil, classifyErr
	}
	reply := &AssistantReply{Intent: intent.Intent}

	switch intent.Intent {
	case IntentSearch:
		result, err := s.search.Search(ctx, query, intent.Search, language)
		if err != nil {
			return nil, err
		}
		reply.Search = result
		reply.Degraded = result.Degraded
		s.record(userID, 0, "", "search", language, query, result, result.Narrative, result.Degraded)

	case IntentCompare:
		if len(intent.PlayerNames) < 2 {
			reply.Message = "Please name the two players to compare."
			if language == "it" {
				reply.Message = "Indica i due giocatori da confrontare."
			}
			return reply, nil
		}
		report, err := s.comparison.CompareByName(ctx, intent.PlayerNames[0], intent.PlayerNames[1], language)
		if err != nil {
			return nil, err
		}
		reply.Comparison = report
		reply.Degraded = report.Degraded
		s.record(userID, report.Result.Player1ID, intent.PlayerNames[0], "comparison", language, query, report, report.Narrative, report.Degraded)

	case IntentExplain:
		topic := intent.Topic
		if topic == "" {
			topic = query
		}
		explanation := s.explain.Explain(ctx, topic, language)
		reply.Explain = explanation
		reply.Degraded = explanation.Degraded
		s.record(userID, 0, "", "explain", language, query, explanation, explanation.Text, explanation.Degraded)

	default:
		message, err := s.chat(ctx, query, language)
		if err != nil {
			s.logger.WithError(err).Warn("Chat completion failed")
			reply.Degraded = true
			reply.Message = "The assistant is temporarily unavailable. Structured endpoints (search, compare, analysis) still work."
			if language == "it" {
				reply.Message = "L'assistente non e al momento disponibile. Gli endpoint strutturati (ricerca, confronto, analisi) restano attivi."
			}
			return reply, nil
		}
		reply.Message = message
	}

	if classifyErr != nil {
		reply.Degraded = true
	}
	return reply, nil
}

func (s *AssistantService) chat(ctx context.Context, query, language string) (string, error) {
	if s.model == nil {
		return "", fmt.Errorf("no language model configured")
	}
	system := "You are a football scouting assistant. Answer questions about football and scouting concisely. " +
		"For player searches, comparisons or analyses, tell the user what you can do rather than inventing data."
	if language == "it" {
		system += " Respond in Italian."
	}
	return s.model.Complete(ctx, system, []llm.Message{{Role: "user", Content: query}})
}

func (s *AssistantService) record(userID uint, playerID int, playerName, reportType, language string, request, response any, narrative string, degraded bool) {
	if s.reports == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Errorf("Report recording panicked: %v", r)
			}
		}()
		s.reports.Record(userID, playerID, playerName, reportType, language, request, response, narrative, degraded)
	}()
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/llm"
	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/stats"
)

// ErrUnknownPositions marks a search whose position codes could not be
// resolved to any code the snapshot uses, even after model-assisted
// correction. Handlers render it as a validation error, not a server error.
var ErrUnknownPositions = errors.New("unrecognized position codes")

// Intents the assistant can route a query to.
const (
	IntentSearch  = "search"
	IntentCompare = "compare"
	IntentExplain = "explain"
	IntentChat    = "chat"
)

// IntentResult is the structured reading of one natural-language query.
type IntentResult struct {
	Intent string `json:"intent"`

	// Populated for search intents.
	Search *models.SearchParameters `json:"search,omitempty"`

	// Populated for compare intents, and for explain intents that name a
	// player.
	PlayerNames []string `json:"player_names,omitempty"`

	// Populated for explain intents: the metric or concept to explain.
	Topic string `json:"topic,omitempty"`
}

// Shorthand the model tends to emit for positions that the snapshot does not
// use. Corrected before the result reaches any engine.
var positionCorrections = map[string]string{
	"st":  "cf",
	"cdm": "dmf",
	"cam": "amf",
	"lm":  "lw",
	"rm":  "rw",
	"lwf": "lw",
	"rwf": "rw",
}

// IntentRouter classifies queries and extracts their entities through the
// language model, with a keyword fallback when the model is unavailable.
type IntentRouter struct {
	model  llm.LanguageModel
	logger *logrus.Logger
}

func NewIntentRouter(model llm.LanguageModel, logger *logrus.Logger) *IntentRouter {
	return &IntentRouter{model: model, logger: logger}
}

var intentTool = llm.ToolSchema{
	Name:        "record_query_intent",
	Description: "Record the intent of a football scouting query and the entities it mentions",
	InputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"intent": map[string]any{
				"type": "string",
				"enum": []string{IntentSearch, IntentCompare, IntentExplain, IntentChat},
				"description": "search: find players matching criteria. compare: head-to-head between named players. explain: define a metric or concept. chat: anything else.",
			},
			"player_names": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Player names mentioned in the query, in order of appearance",
			},
			"topic": map[string]any{
				"type":        "string",
				"description": "For explain intents, the metric or concept to explain",
			},
			"search": map[string]any{
				"type":        "object",
				"description": "For search intents, the extracted criteria",
				"properties": map[string]any{
					"position_codes": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Position codes: gk, cb, lcb, rcb, lb, rb, lwb, rwb, dmf, lcmf, rcmf, amf, ss, lw, rw, cf",
					},
					"key_description_word": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Playing-style words from the query, e.g. finisher, playmaker, aggressive",
					},
					"min_age":             map[string]any{"type": "number"},
					"max_age":             map[string]any{"type": "number"},
					"min_height":          map[string]any{"type": "number"},
					"max_height":          map[string]any{"type": "number"},
					"foot":                map[string]any{"type": "string"},
					"contract_expiration": map[string]any{"type": "string"},
					"stats": map[string]any{
						"type":        "object",
						"description": "Statistical thresholds as min_<metric> or max_<metric> keys with numeric values, e.g. min_goals: 10",
						"additionalProperties": true,
					},
				},
			},
		},
		"required": []string{"intent"},
	},
}

const intentSystemPrompt = "You are the query router of a football scouting assistant. " +
	"Classify each query and extract the entities it mentions. " +
	"Use only the listed position codes. Express statistical requirements as min_/max_ prefixed metric names."

// Classify reads the query through the model and normalizes the result. A
// model failure degrades to keyword classification so the request can still
// be served.
func (r *IntentRouter) Classify(ctx context.Context, query string) (*IntentResult, error) {
	var result IntentResult
	err := r.model.CompleteStructured(ctx, intentSystemPrompt, []llm.Message{{Role: "user", Content: query}}, intentTool, &result)
	if err != nil {
		r.logger.WithError(err).Warn("Intent classification failed, falling back to keyword routing")
		return r.keywordFallback(query), err
	}

	result.Intent = strings.ToLower(strings.TrimSpace(result.Intent))
	switch result.Intent {
	case IntentSearch, IntentCompare, IntentExplain, IntentChat:
	default:
		result.Intent = IntentChat
	}
	if result.Search != nil {
		unknown := normalizeSearch(result.Search)
		if len(unknown) > 0 {
			r.correctPositions(ctx, result.Search, unknown)
		}
		if len(result.Search.PositionCodes) == 0 && len(unknown) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPositions, strings.Join(unknown, ", "))
		}
	}
	return &result, nil
}

// normalizeSearch corrects position shorthand against the static table and
// keeps only codes the snapshot uses. Codes neither valid nor in the table
// are returned for the model-assisted correction pass.
func normalizeSearch(params *models.SearchParameters) []string {
	if len(params.PositionCodes) == 0 {
		return nil
	}
	corrected := make([]string, 0, len(params.PositionCodes))
	seen := make(map[string]bool, len(params.PositionCodes))
	var unknown []string
	for _, code := range params.PositionCodes {
		code = strings.ToLower(strings.TrimSpace(code))
		if fixed, ok := positionCorrections[code]; ok {
			code = fixed
		}
		if !stats.ValidPositionCodes[code] {
			if code != "" {
				unknown = append(unknown, code)
			}
			continue
		}
		if seen[code] {
			continue
		}
		seen[code] = true
		corrected = append(corrected, code)
	}
	params.PositionCodes = corrected
	return unknown
}

var positionCorrectionTool = llm.ToolSchema{
	Name:        "record_position_codes",
	Description: "Record the valid position codes closest in meaning to the given shorthand",
	InputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"codes": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Valid codes only: gk, cb, lcb, rcb, lb, rb, lwb, rwb, dmf, lcmf, rcmf, amf, ss, lw, rw, cf. Omit shorthand with no close equivalent.",
			},
		},
		"required": []string{"codes"},
	},
}

// correctPositions asks the model to map shorthand the static table does not
// cover onto valid codes. Best effort: a model failure just leaves the
// unknown codes dropped.
func (r *IntentRouter) correctPositions(ctx context.Context, params *models.SearchParameters, unknown []string) {
	var fix struct {
		Codes []string `json:"codes"`
	}
	prompt := "Map football position shorthand to the closest valid position code."
	content := "Shorthand to resolve: " + strings.Join(unknown, ", ")
	if err := r.model.CompleteStructured(ctx, prompt, []llm.Message{{Role: "user", Content: content}}, positionCorrectionTool, &fix); err != nil {
		r.logger.WithError(err).WithField("codes", unknown).Warn("Position code correction failed")
		return
	}

	seen := make(map[string]bool, len(params.PositionCodes))
	for _, code := range params.PositionCodes {
		seen[code] = true
	}
	for _, code := range fix.Codes {
		code = strings.ToLower(strings.TrimSpace(code))
		if !stats.ValidPositionCodes[code] || seen[code] {
			continue
		}
		seen[code] = true
		params.PositionCodes = append(params.PositionCodes, code)
	}
}

// keywordFallback is the degraded router used when the model call fails.
// It cannot extract search criteria, so searches degrade to chat.
func (r *IntentRouter) keywordFallback(query string) *IntentResult {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, " vs ") || strings.Contains(q, " versus ") ||
		strings.Contains(q, "compare") || strings.Contains(q, "confronta"):
		return &IntentResult{Intent: IntentCompare}
	case strings.HasPrefix(q, "what is") || strings.HasPrefix(q, "what does") ||
		strings.HasPrefix(q, "explain") || strings.HasPrefix(q, "cosa significa") ||
		strings.HasPrefix(q, "spiega"):
		return &IntentResult{Intent: IntentExplain, Topic: query}
	default:
		return &IntentResult{Intent: IntentChat}
	}
}

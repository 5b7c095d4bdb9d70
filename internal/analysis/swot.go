package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/llm"
	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/stats"
)

const (
	swotStrengthThreshold = 75.0
	swotWeaknessThreshold = 30.0
)

// SwotItem is one metric flagged as a strength or weakness, with the
// percentile that earned it the flag.
type SwotItem struct {
	Metric     string  `json:"metric"`
	Percentile float64 `json:"percentile"`
}

// SwotAnalysis is the full four-quadrant report. Strengths and weaknesses
// are computed numerically from percentiles; opportunities, threats and the
// summary are narrative.
type SwotAnalysis struct {
	PlayerID      int        `json:"player_id"`
	PlayerName    string     `json:"player_name"`
	Position      string     `json:"position"`
	Strengths     []SwotItem `json:"strengths"`
	Weaknesses    []SwotItem `json:"weaknesses"`
	Opportunities []string   `json:"opportunities"`
	Threats       []string   `json:"threats"`
	Summary       string     `json:"summary"`
	Degraded      bool       `json:"degraded,omitempty"`
}

type swotNarrative struct {
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
	Summary       string   `json:"summary"`
}

// SwotEngine builds SWOT reports. The numeric quadrants never depend on the
// language model; only the narrative half degrades when it is unavailable.
type SwotEngine struct {
	model  llm.LanguageModel
	logger *logrus.Logger
}

func NewSwotEngine(model llm.LanguageModel, logger *logrus.Logger) *SwotEngine {
	return &SwotEngine{model: model, logger: logger}
}

// Analyze produces the SWOT report for a player from their percentile
// report. A nil report (insufficient minutes) yields the canned
// low-confidence analysis instead of an error.
func (e *SwotEngine) Analyze(ctx context.Context, player *models.Player, report *stats.PercentileReport, language string) *SwotAnalysis {
	if report == nil {
		return e.insufficientData(player, language)
	}

	result := &SwotAnalysis{
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Position:   player.PrimaryPosition(),
	}
	result.Strengths, result.Weaknesses = e.numericQuadrants(report)

	narrative, err := e.narrative(ctx, player, result, language)
	if err != nil {
		e.logger.WithFields(logrus.Fields{
			"player_id": player.ID,
			"error":     err.Error(),
		}).Warn("SWOT narrative generation failed, using static fallback")
		narrative = staticNarrative(player, result, language)
		result.Degraded = true
	}
	result.Opportunities = narrative.Opportunities
	result.Threats = narrative.Threats
	result.Summary = narrative.Summary

	return result
}

// numericQuadrants selects strengths and weaknesses among the key metrics
// of the player's position. Metrics absent from the report are skipped
// rather than treated as zero.
func (e *SwotEngine) numericQuadrants(report *stats.PercentileReport) ([]SwotItem, []SwotItem) {
	keyStats := stats.KeyStatsForPosition(report.Position)

	strengths := make([]SwotItem, 0, 4)
	weaknesses := make([]SwotItem, 0, 4)
	for metric := range keyStats {
		pct, ok := report.Percentile(metric, "")
		if !ok {
			continue
		}
		switch {
		case pct >= swotStrengthThreshold:
			strengths = append(strengths, SwotItem{Metric: metric, Percentile: pct})
		case pct <= swotWeaknessThreshold:
			weaknesses = append(weaknesses, SwotItem{Metric: metric, Percentile: pct})
		}
	}

	sort.Slice(strengths, func(i, j int) bool {
		if strengths[i].Percentile != strengths[j].Percentile {
			return strengths[i].Percentile > strengths[j].Percentile
		}
		return strengths[i].Metric < strengths[j].Metric
	})
	sort.Slice(weaknesses, func(i, j int) bool {
		if weaknesses[i].Percentile != weaknesses[j].Percentile {
			return weaknesses[i].Percentile < weaknesses[j].Percentile
		}
		return weaknesses[i].Metric < weaknesses[j].Metric
	})

	return strengths, weaknesses
}

var swotTool = llm.ToolSchema{
	Name:        "record_swot_narrative",
	Description: "Record the narrative half of a SWOT analysis for a football player",
	InputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"opportunities": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Development opportunities grounded in the player's profile, 2 to 4 items",
			},
			"threats": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Risks that could limit the player's trajectory, 2 to 4 items",
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "A scouting summary of 2 to 3 sentences",
			},
		},
		"required": []string{"opportunities", "threats", "summary"},
	},
}

func (e *SwotEngine) narrative(ctx context.Context, player *models.Player, numeric *SwotAnalysis, language string) (*swotNarrative, error) {
	if e.model == nil {
		return nil, fmt.Errorf("no language model configured")
	}

	prompt := buildSwotPrompt(player, numeric, language)
	var narrative swotNarrative
	err := e.model.CompleteStructured(ctx, swotSystemPrompt(language), []llm.Message{{Role: "user", Content: prompt}}, swotTool, &narrative)
	if err != nil {
		return nil, err
	}
	if len(narrative.Opportunities) == 0 || len(narrative.Threats) == 0 || narrative.Summary == "" {
		return nil, fmt.Errorf("narrative missing required quadrants: %w", llm.ErrMalformedResponse)
	}
	return &narrative, nil
}

func swotSystemPrompt(language string) string {
	base := "You are a professional football scout writing concise, evidence-based player assessments. " +
		"Ground every statement in the statistical profile you are given. Do not invent statistics."
	if language == "it" {
		return base + " Respond in Italian."
	}
	return base
}

func buildSwotPrompt(player *models.Player, numeric *SwotAnalysis, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Player: %s, age %d, position %s.\n", player.Name, player.Age, numeric.Position)

	b.WriteString("Statistical strengths (percentile vs position peers):\n")
	if len(numeric.Strengths) == 0 {
		b.WriteString("- none above the strength threshold\n")
	}
	for _, s := range numeric.Strengths {
		fmt.Fprintf(&b, "- %s: %.0f\n", s.Metric, s.Percentile)
	}

	b.WriteString("Statistical weaknesses (percentile vs position peers):\n")
	if len(numeric.Weaknesses) == 0 {
		b.WriteString("- none below the weakness threshold\n")
	}
	for _, w := range numeric.Weaknesses {
		fmt.Fprintf(&b, "- %s: %.0f\n", w.Metric, w.Percentile)
	}

	b.WriteString("\nProvide opportunities, threats and a summary for this player.")
	if language == "it" {
		b.WriteString(" Answer in Italian.")
	}
	return b.String()
}

// staticNarrative is the deterministic fallback used when the language
// model cannot be reached. It is intentionally generic but references the
// player's actual flagged metrics where possible.
func staticNarrative(player *models.Player, numeric *SwotAnalysis, language string) *swotNarrative {
	if language == "it" {
		n := &swotNarrative{
			Opportunities: []string{
				"Margini di crescita con un programma di sviluppo mirato sulle aree statisticamente deboli",
				"Potenziale aumento di valore con maggiore continuita di impiego",
			},
			Threats: []string{
				"La concorrenza nel ruolo potrebbe limitare il minutaggio",
				"Le lacune evidenziate potrebbero essere sfruttate da avversari di livello superiore",
			},
			Summary: fmt.Sprintf("%s presenta %d punti di forza e %d debolezze statistiche rispetto ai pari ruolo. Analisi narrativa non disponibile, valutazione basata sui soli dati numerici.",
				player.Name, len(numeric.Strengths), len(numeric.Weaknesses)),
		}
		return n
	}
	return &swotNarrative{
		Opportunities: []string{
			"Room to grow through targeted development of the statistically weak areas",
			"Value upside with more consistent playing time",
		},
		Threats: []string{
			"Positional competition could limit minutes",
			"Highlighted gaps may be exposed against stronger opposition",
		},
		Summary: fmt.Sprintf("%s shows %d statistical strengths and %d weaknesses relative to positional peers. Narrative analysis unavailable, assessment is based on the numbers alone.",
			player.Name, len(numeric.Strengths), len(numeric.Weaknesses)),
	}
}

// insufficientData returns the canned low-confidence report for players
// below the minutes threshold.
func (e *SwotEngine) insufficientData(player *models.Player, language string) *SwotAnalysis {
	summary := fmt.Sprintf("%s has not played enough minutes this season for a reliable statistical profile. No SWOT quadrants can be computed.", player.Name)
	opportunities := []string{"A larger sample of minutes would enable a full statistical assessment"}
	threats := []string{"Any evaluation at this sample size carries high uncertainty"}
	if language == "it" {
		summary = fmt.Sprintf("%s non ha giocato abbastanza minuti in questa stagione per un profilo statistico affidabile. Impossibile calcolare i quadranti SWOT.", player.Name)
		opportunities = []string{"Un campione piu ampio di minuti permetterebbe una valutazione statistica completa"}
		threats = []string{"Ogni valutazione su questo campione comporta un'incertezza elevata"}
	}
	return &SwotAnalysis{
		PlayerID:      player.ID,
		PlayerName:    player.Name,
		Position:      player.PrimaryPosition(),
		Strengths:     []SwotItem{},
		Weaknesses:    []SwotItem{},
		Opportunities: opportunities,
		Threats:       threats,
		Summary:       summary,
		Degraded:      true,
	}
}

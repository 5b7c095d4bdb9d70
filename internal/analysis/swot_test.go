package analysis

import (
	"context"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlens/scoutlens/internal/llm"
	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/stats"
)

// fakeModel implements llm.LanguageModel with canned behavior.
type fakeModel struct {
	fail      bool
	narrative swotNarrative
}

func (m *fakeModel) Complete(ctx context.Context, systemPrompt string, messages []llm.Message) (string, error) {
	if m.fail {
		return "", fmt.Errorf("upstream unavailable")
	}
	return "ok", nil
}

func (m *fakeModel) CompleteStructured(ctx context.Context, systemPrompt string, messages []llm.Message, tool llm.ToolSchema, dest any) error {
	if m.fail {
		return fmt.Errorf("upstream unavailable")
	}
	n := dest.(*swotNarrative)
	*n = m.narrative
	return nil
}

func swotPlayer() *models.Player {
	return &models.Player{
		ID:        1,
		Name:      "Test Striker",
		Age:       24,
		Positions: []string{"cf"},
		Total:     map[string]float64{"minutesOnField": 1800},
		Average:   map[string]float64{},
		Percent:   map[string]float64{},
	}
}

// swotReport places goals high and goalConversionPercent low among the
// striker key stats.
func swotReport() *stats.PercentileReport {
	return &stats.PercentileReport{
		PlayerID: 1,
		Position: "cf",
		Buckets:  map[string]map[string]stats.MetricPercentile{},
		Categories: map[string]map[string]float64{
			"attacking": {
				"goals":                 92,
				"xgShot":                60,
				"goalConversionPercent": 12,
			},
		},
	}
}

func TestSwotNumericQuadrants(t *testing.T) {
	model := &fakeModel{narrative: swotNarrative{
		Opportunities: []string{"op"},
		Threats:       []string{"th"},
		Summary:       "summary",
	}}
	engine := NewSwotEngine(model, logrus.New())

	result := engine.Analyze(context.Background(), swotPlayer(), swotReport(), "en")

	require.Len(t, result.Strengths, 1)
	assert.Equal(t, "goals", result.Strengths[0].Metric)
	require.Len(t, result.Weaknesses, 1)
	assert.Equal(t, "goalConversionPercent", result.Weaknesses[0].Metric)
	assert.False(t, result.Degraded)
	assert.Equal(t, "summary", result.Summary)
}

func TestSwotStaticFallbackOnModelFailure(t *testing.T) {
	engine := NewSwotEngine(&fakeModel{fail: true}, logrus.New())

	result := engine.Analyze(context.Background(), swotPlayer(), swotReport(), "en")

	// Numeric quadrants survive, narrative degrades.
	require.Len(t, result.Strengths, 1)
	assert.True(t, result.Degraded)
	assert.NotEmpty(t, result.Opportunities)
	assert.NotEmpty(t, result.Threats)
	assert.NotEmpty(t, result.Summary)
}

func TestSwotInsufficientData(t *testing.T) {
	engine := NewSwotEngine(&fakeModel{}, logrus.New())

	result := engine.Analyze(context.Background(), swotPlayer(), nil, "en")

	assert.True(t, result.Degraded)
	assert.Empty(t, result.Strengths)
	assert.Empty(t, result.Weaknesses)
	assert.Contains(t, result.Summary, "enough minutes")
}

func TestSwotIncompleteNarrativeFallsBack(t *testing.T) {
	model := &fakeModel{narrative: swotNarrative{Summary: "only a summary"}}
	engine := NewSwotEngine(model, logrus.New())

	result := engine.Analyze(context.Background(), swotPlayer(), swotReport(), "en")

	assert.True(t, result.Degraded)
	assert.NotEmpty(t, result.Opportunities)
}

func TestSwotItalianFallback(t *testing.T) {
	engine := NewSwotEngine(&fakeModel{fail: true}, logrus.New())

	result := engine.Analyze(context.Background(), swotPlayer(), swotReport(), "it")

	assert.True(t, result.Degraded)
	assert.Contains(t, result.Summary, "punti di forza")
}

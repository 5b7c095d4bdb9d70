package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlens/scoutlens/pkg/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		AnthropicAPIKey:         "test-key",
		AnthropicModel:          "test-model",
		CircuitBreakerThreshold: 10,
	}
	client := NewClient(cfg, logrus.New())
	client.SetBaseURL(server.URL)
	return client
}

func textResponse(text string) map[string]any {
	return map[string]any{
		"id":    "msg_test",
		"model": "test-model",
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
		"stop_reason": "end_turn",
	}
}

func TestCompleteReturnsText(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		json.NewEncoder(w).Encode(textResponse("a scouting note"))
	})

	text, err := client.Complete(context.Background(), "system", []Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "a scouting note", text)
}

func TestCompleteEmptyContentIsMalformed(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"content": []any{}})
	})

	_, err := client.Complete(context.Background(), "system", []Message{{Role: "user", Content: "hi"}})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestCompleteRetriesTransientErrors(t *testing.T) {
	attempts := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(textResponse("recovered"))
	})

	text, err := client.Complete(context.Background(), "system", []Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
	assert.Equal(t, 2, attempts)
}

func TestCompleteDoesNotRetryBadRequest(t *testing.T) {
	attempts := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "invalid_request_error", "message": "bad prompt"},
		})
	})

	_, err := client.Complete(context.Background(), "system", []Message{{Role: "user", Content: "hi"}})
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Equal(t, 1, attempts)
}

func TestCompleteUnauthorizedIsTyped(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Complete(context.Background(), "system", []Message{{Role: "user", Content: "hi"}})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCompleteExhaustedRetriesIsUpstream(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Complete(context.Background(), "system", []Message{{Role: "user", Content: "hi"}})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestCompleteStructuredUnmarshalsToolInput(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		assert.NotEmpty(t, req["tools"])

		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{
					"type":  "tool_use",
					"name":  "record_result",
					"input": map[string]any{"verdict": "buy", "confidence": 0.8},
				},
			},
		})
	})

	tool := ToolSchema{
		Name:        "record_result",
		InputSchema: map[string]any{"type": "object"},
	}
	var dest struct {
		Verdict    string  `json:"verdict"`
		Confidence float64 `json:"confidence"`
	}
	err := client.CompleteStructured(context.Background(), "system", []Message{{Role: "user", Content: "hi"}}, tool, &dest)
	require.NoError(t, err)
	assert.Equal(t, "buy", dest.Verdict)
	assert.Equal(t, 0.8, dest.Confidence)
}

func TestCompleteStructuredMissingToolCall(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(textResponse("free text instead of a tool call"))
	})

	tool := ToolSchema{Name: "record_result", InputSchema: map[string]any{"type": "object"}}
	var dest struct{}
	err := client.CompleteStructured(context.Background(), "system", []Message{{Role: "user", Content: "hi"}}, tool, &dest)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestCircuitStateReporting(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(textResponse("ok"))
	})

	assert.True(t, client.IsHealthy())
	assert.Equal(t, "closed", client.CircuitState())
}

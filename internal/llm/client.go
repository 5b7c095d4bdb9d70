package llm

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/scoutlens/scoutlens/pkg/config"
)

// Typed failure modes. Transient errors are retried with backoff; content
// errors are not, callers degrade per their own fallback rules.
var (
	// ErrUpstream marks a transient upstream failure that survived all retries.
	ErrUpstream = errors.New("language model upstream error")
	// ErrMalformedResponse marks unparseable or schema-violating model output.
	ErrMalformedResponse = errors.New("language model returned malformed content")
	// ErrUnauthorized marks invalid API credentials.
	ErrUnauthorized = errors.New("language model credentials rejected")
)

// Message is one turn of the conversation sent to the model.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ToolSchema constrains the model to produce an object matching a JSON
// schema, via the Anthropic tool-use mechanism.
type ToolSchema struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

// LanguageModel is the capability consumed by every component that needs
// prose or structured extraction. Implementations must degrade per the
// caller's fallback rules, never panic through to the request boundary.
type LanguageModel interface {
	Complete(ctx context.Context, systemPrompt string, messages []Message) (string, error)
	CompleteStructured(ctx context.Context, systemPrompt string, messages []Message, tool ToolSchema, dest any) error
}

// ResponseCache is the minimal cache surface the client needs. Satisfied by
// the Redis-backed cache service.
type ResponseCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

type anthropicRequest struct {
	Model      string          `json:"model"`
	MaxTokens  int             `json:"max_tokens"`
	Temperature float64        `json:"temperature,omitempty"`
	System     string          `json:"system,omitempty"`
	Messages   []Message       `json:"messages"`
	Tools      []ToolSchema    `json:"tools,omitempty"`
	ToolChoice map[string]any  `json:"tool_choice,omitempty"`
}

type anthropicResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Content []struct {
		Type  string          `json:"type"` // "text" or "tool_use"
		Text  string          `json:"text"`
		Name  string          `json:"name"`
		Input json.RawMessage `json:"input"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type anthropicError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client talks to the Anthropic messages API with a circuit breaker, a
// token-bucket rate limiter, bounded retry with exponential backoff for
// transient errors, and an optional response cache.
type Client struct {
	httpClient     *http.Client
	logger         *logrus.Logger
	cache          ResponseCache
	apiKey         string
	baseURL        string
	model          string
	limiter        *rate.Limiter
	circuitBreaker *gobreaker.CircuitBreaker
	retryAttempts  int
	cacheTTL       time.Duration
}

// NewClient builds the Claude API client from service configuration.
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	threshold := uint32(cfg.CircuitBreakerThreshold)
	if threshold == 0 {
		threshold = 3
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "anthropic-api",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"circuit":    name,
				"from_state": from.String(),
				"to_state":   to.String(),
			}).Info("Language model circuit breaker state changed")
		},
	})

	timeout := cfg.ExternalAPITimeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		logger:         logger,
		apiKey:         cfg.AnthropicAPIKey,
		baseURL:        "https://api.anthropic.com/v1",
		model:          cfg.AnthropicModel,
		limiter:        rate.NewLimiter(rate.Every(time.Second), 2),
		circuitBreaker: cb,
		retryAttempts:  3,
		cacheTTL:       time.Duration(cfg.AICacheExpiration) * time.Second,
	}
}

// SetCache attaches a response cache. Without one every call goes upstream.
func (c *Client) SetCache(cache ResponseCache) {
	c.cache = cache
}

// SetBaseURL overrides the API endpoint, used by tests.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// Complete sends a free-text request and returns the concatenated text
// blocks of the response.
func (c *Client) Complete(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
	request := anthropicRequest{
		Model:     c.model,
		MaxTokens: 2048,
		System:    systemPrompt,
		Messages:  messages,
	}

	if cached, ok := c.cachedText(ctx, request); ok {
		return cached, nil
	}

	resp, err := c.send(ctx, request)
	if err != nil {
		return "", err
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("response carried no text blocks: %w", ErrMalformedResponse)
	}

	c.cacheText(ctx, request, text)
	return text, nil
}

// CompleteStructured forces the model through a single tool whose input
// schema is the wanted output shape, and unmarshals the tool input into
// dest. Schema violations surface as ErrMalformedResponse and are never
// retried.
func (c *Client) CompleteStructured(ctx context.Context, systemPrompt string, messages []Message, tool ToolSchema, dest any) error {
	request := anthropicRequest{
		Model:      c.model,
		MaxTokens:  2048,
		System:     systemPrompt,
		Messages:   messages,
		Tools:      []ToolSchema{tool},
		ToolChoice: map[string]any{"type": "tool", "name": tool.Name},
	}

	resp, err := c.send(ctx, request)
	if err != nil {
		return err
	}

	for _, block := range resp.Content {
		if block.Type == "tool_use" && block.Name == tool.Name {
			if err := json.Unmarshal(block.Input, dest); err != nil {
				return fmt.Errorf("tool input does not match schema: %v: %w", err, ErrMalformedResponse)
			}
			return nil
		}
	}
	return fmt.Errorf("response carried no %s tool call: %w", tool.Name, ErrMalformedResponse)
}

// send pushes one request through the limiter, circuit breaker and retry
// loop.
func (c *Client) send(ctx context.Context, request anthropicRequest) (*anthropicResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter interrupted: %w", err)
	}

	result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doWithRetry(ctx, request)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("circuit open: %w", ErrUpstream)
		}
		return nil, err
	}
	return result.(*anthropicResponse), nil
}

func (c *Client) doWithRetry(ctx context.Context, request anthropicRequest) (*anthropicResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.retryAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, retryable, err := c.doOnce(ctx, body)
		if err == nil {
			return resp, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err

		c.logger.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"error":   err.Error(),
		}).Warn("Language model call failed, retrying")
	}

	return nil, fmt.Errorf("failed after %d attempts: %v: %w", c.retryAttempts, lastErr, ErrUpstream)
}

// doOnce performs a single HTTP exchange. The second return reports whether
// the failure is transient and worth another attempt.
func (c *Client) doOnce(ctx context.Context, body []byte) (*anthropicResponse, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		var parsed anthropicResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return nil, false, fmt.Errorf("failed to decode response: %v: %w", err, ErrMalformedResponse)
		}
		return &parsed, false, nil
	}

	raw, _ := io.ReadAll(resp.Body)
	var apiErr anthropicError
	_ = json.Unmarshal(raw, &apiErr)
	message := apiErr.Error.Message
	if message == "" {
		message = string(raw)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, false, fmt.Errorf("%s: %w", message, ErrUnauthorized)
	case http.StatusBadRequest:
		return nil, false, fmt.Errorf("bad request: %s: %w", message, ErrMalformedResponse)
	case http.StatusTooManyRequests:
		return nil, true, fmt.Errorf("rate limited upstream: %s", message)
	default:
		if resp.StatusCode >= 500 {
			return nil, true, fmt.Errorf("upstream error (status %d): %s", resp.StatusCode, message)
		}
		return nil, false, fmt.Errorf("unexpected status %d: %s: %w", resp.StatusCode, message, ErrUpstream)
	}
}

// IsHealthy reports whether the circuit is closed.
func (c *Client) IsHealthy() bool {
	return c.circuitBreaker.State() == gobreaker.StateClosed
}

// CircuitState exposes the breaker state for the health endpoint.
func (c *Client) CircuitState() string {
	return c.circuitBreaker.State().String()
}

func (c *Client) cachedText(ctx context.Context, request anthropicRequest) (string, bool) {
	if c.cache == nil {
		return "", false
	}
	var text string
	if err := c.cache.Get(ctx, promptCacheKey(request), &text); err != nil {
		return "", false
	}
	return text, true
}

func (c *Client) cacheText(ctx context.Context, request anthropicRequest, text string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, promptCacheKey(request), text, c.cacheTTL); err != nil {
		c.logger.WithError(err).Debug("Failed to cache language model response")
	}
}

func promptCacheKey(request anthropicRequest) string {
	payload, _ := json.Marshal(request)
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("llm:response:%x", sum[:12])
}

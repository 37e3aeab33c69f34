package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.groq.com"
	defaultModel   = "llama-3.1-8b-instant"

	completionTemperature = 0.3
	completionMaxTokens   = 512
)

// ErrNotConfigured is returned when no API key is available.
var ErrNotConfigured = errors.New("llm api key is not configured")

// Message is one entry in the ordered prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is the LLM Provider contract: an ordered message list in, free-form
// text out.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// HTTPClient calls an OpenAI-compatible chat-completions endpoint.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// Option configures the HTTP client.
type Option func(*HTTPClient)

// WithBaseURL overrides the completion endpoint base URL (used in tests).
func WithBaseURL(baseURL string) Option {
	return func(c *HTTPClient) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithModel selects the completion model.
func WithModel(model string) Option {
	return func(c *HTTPClient) {
		if model != "" {
			c.model = model
		}
	}
}

// NewHTTPClient builds a chat-completion client. The injected http.Client
// carries the upstream timeout.
func NewHTTPClient(client *http.Client, apiKey string, opts ...Option) *HTTPClient {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	c := &HTTPClient{
		client:  client,
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   defaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type completionRequest struct {
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Messages    []Message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the messages and returns the first choice's content.
func (c *HTTPClient) Complete(ctx context.Context, messages []Message) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(completionRequest{
		Model:       c.model,
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
		Messages:    messages,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/openai/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	var payload completionResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if resp.StatusCode >= 400 {
		if payload.Error != nil && payload.Error.Message != "" {
			return "", fmt.Errorf("completion error: %s", payload.Error.Message)
		}
		return "", fmt.Errorf("completion returned status %d", resp.StatusCode)
	}
	if len(payload.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return payload.Choices[0].Message.Content, nil
}

var _ Client = (*HTTPClient)(nil)

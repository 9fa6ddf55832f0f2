// Package cohere adapts Cohere's chat API as a free-text analysis
// provider. The adapter performs no parsing of the model output; raw text
// flows back to the orchestrator, which normalizes it into a Result.
package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"legalease/internal/domain/analysis"
	"legalease/internal/infra/ai/normalize"
	"legalease/internal/infra/ai/prompt"
)

const defaultBaseURL = "https://api.cohere.com"

// Config carries the provider credentials and the tunable prompt budgets.
type Config struct {
	APIKey         string
	Model          string
	BaseURL        string
	AnalyzeExcerpt int
	AnswerExcerpt  int
	SummaryExcerpt int
	Timeout        time.Duration
}

type Client struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = "command-r-plus"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.AnalyzeExcerpt <= 0 {
		cfg.AnalyzeExcerpt = prompt.DefaultAnalyzeExcerpt
	}
	if cfg.AnswerExcerpt <= 0 {
		cfg.AnswerExcerpt = prompt.DefaultAnswerExcerpt
	}
	if cfg.SummaryExcerpt <= 0 {
		cfg.SummaryExcerpt = prompt.DefaultSummaryExcerpt
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

func (c *Client) Name() string { return "cohere" }

// Analyze sends the bounded document excerpt through the chat endpoint and
// normalizes the free-text reply. Any transport, auth or empty-response
// condition surfaces as a single error; no retries here.
func (c *Client) Analyze(ctx context.Context, text, filename string) (*analysis.Result, error) {
	msg := prompt.AnalyzeUser(filename, prompt.Excerpt(text, c.cfg.AnalyzeExcerpt))
	out, err := c.chat(ctx, msg, 1200)
	if err != nil {
		return nil, err
	}
	return normalize.Result(out, text), nil
}

// Answer sends the bounded document plus prior summary context and returns
// the model's reply verbatim.
func (c *Client) Answer(ctx context.Context, text, question, existingSummary string) (string, error) {
	msg := prompt.AnswerUser(
		prompt.Excerpt(text, c.cfg.AnswerExcerpt),
		prompt.Excerpt(existingSummary, c.cfg.SummaryExcerpt),
		question,
	)
	return c.chat(ctx, msg, 500)
}

func (c *Client) chat(ctx context.Context, message string, maxTokens int) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("cohere api key not configured")
	}
	payload, _ := json.Marshal(map[string]any{
		"model":       c.cfg.Model,
		"message":     message,
		"temperature": 0.1,
		"max_tokens":  maxTokens,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/chat", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cohere chat request failed: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("cohere chat: %w", analysis.ErrQuotaExceeded)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("cohere chat error %d: %s", resp.StatusCode, string(body))
	}
	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode cohere response: %w", err)
	}
	if strings.TrimSpace(parsed.Text) == "" {
		return "", fmt.Errorf("cohere chat: %w", analysis.ErrEmptyResponse)
	}
	return parsed.Text, nil
}

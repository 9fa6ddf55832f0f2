// Package openaix adapts OpenAI chat completions as the structured
// (JSON-mode) analysis provider. Parsing is permissive: a response is only
// rejected when it is not JSON or lacks a summary; omitted optional fields
// default to empty collections.
package openaix

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"legalease/internal/domain/analysis"
	"legalease/internal/infra/ai/prompt"
)

const maxTokens = 2048

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

type Client struct {
	api   *openai.Client
	model string
}

func New(cfg Config) *Client {
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return &Client{api: openai.NewClientWithConfig(oc), model: model}
}

func (c *Client) Name() string { return "openai" }

// resultPayload mirrors the schema the prompt asks for. Severity rides in
// the "type" key, matching the wire shape of Risk.
type resultPayload struct {
	Summary       string               `json:"summary"`
	Risks         []analysis.Risk      `json:"risks"`
	LegalTerms    []analysis.LegalTerm `json:"legalTerms"`
	DocumentType  string               `json:"documentType"`
	KeyProvisions []string             `json:"keyProvisions"`
}

// Analyze requests a single JSON object matching the Result shape and
// parses it. Transport errors, malformed JSON and a missing summary are all
// one failure signal to the orchestrator.
func (c *Client) Analyze(ctx context.Context, text, filename string) (*analysis.Result, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.JSONSystem()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.JSONUser(text)},
		},
	}
	c.setTokenLimit(&req)

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai analyze: %w", analysis.ErrEmptyResponse)
	}

	var payload resultPayload
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("parse openai analysis json: %w", err)
	}
	if strings.TrimSpace(payload.Summary) == "" {
		return nil, fmt.Errorf("openai analysis missing summary")
	}

	res := &analysis.Result{
		Summary:       payload.Summary,
		Risks:         payload.Risks,
		LegalTerms:    payload.LegalTerms,
		DocumentType:  payload.DocumentType,
		KeyProvisions: payload.KeyProvisions,
	}
	if res.Risks == nil {
		res.Risks = []analysis.Risk{}
	}
	if res.LegalTerms == nil {
		res.LegalTerms = []analysis.LegalTerm{}
	}
	if res.KeyProvisions == nil {
		res.KeyProvisions = []string{}
	}
	if res.DocumentType == "" {
		res.DocumentType = "Unknown"
	}
	return res, nil
}

// Answer runs a plain (non-JSON) chat completion over the full document.
func (c *Client) Answer(ctx context.Context, text, question, existingSummary string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.AnswerSystem()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.AnswerUserPlain(text, existingSummary, question)},
		},
	}
	c.setTokenLimit(&req)

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("openai answer: %w", analysis.ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

// Reasoning models (o1/o3/o4/gpt-5*) take MaxCompletionTokens instead of
// MaxTokens.
func (c *Client) setTokenLimit(req *openai.ChatCompletionRequest) {
	m := c.model
	if strings.HasPrefix(m, "o1") || strings.HasPrefix(m, "o3") || strings.HasPrefix(m, "o4") || strings.HasPrefix(m, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}
}

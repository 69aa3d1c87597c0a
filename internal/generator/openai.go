package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"blogsmith/internal/apperr"
)

const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4o-mini"

	maxErrorBody = 4 << 10
)

// OpenAI calls an OpenAI-compatible /chat/completions endpoint.
type OpenAI struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

var _ Generator = (*OpenAI)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

func NewOpenAI(cfg Config) *OpenAI {
	o := &OpenAI{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}
	if o.baseURL == "" {
		o.baseURL = DefaultOpenAIBaseURL
	}
	if o.model == "" {
		o.model = DefaultOpenAIModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	o.client = &http.Client{Timeout: timeout}
	return o
}

func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	if o.apiKey == "" {
		return "", apperr.Auth("OpenAI API key not configured", nil)
	}

	body, err := json.Marshal(chatRequest{
		Model:    o.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", apperr.Upstream(msgFailed, fmt.Errorf("send request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		cause := fmt.Errorf("openai error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "", apperr.Auth(msgInvalidKey, cause)
		case http.StatusTooManyRequests:
			return "", apperr.RateLimit(msgQuota, cause)
		default:
			return "", classify(cause)
		}
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperr.Upstream(msgFailed, fmt.Errorf("decode response: %w", err))
	}
	if out.Error != nil {
		return "", classify(fmt.Errorf("openai error: %s", out.Error.Message))
	}
	if len(out.Choices) == 0 {
		return "", ErrEmptyContent()
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyContent()
	}
	return text, nil
}

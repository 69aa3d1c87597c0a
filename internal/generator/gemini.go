package generator

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"blogsmith/internal/apperr"

	"google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-1.5-flash"

// Gemini calls the Generative Language API.
type Gemini struct {
	svc     *generativelanguage.Service
	model   string
	timeout time.Duration
}

var _ Generator = (*Gemini)(nil)

// NewGemini builds the client. Without an API key every call fails with an
// auth error instead of failing at startup.
func NewGemini(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Gemini, error) {
	g := &Gemini{model: cfg.Model, timeout: cfg.Timeout}
	if g.model == "" {
		g.model = DefaultGeminiModel
	}
	if g.timeout <= 0 {
		g.timeout = DefaultTimeout
	}

	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if len(opts) == 0 {
		return g, nil
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	svc, err := generativelanguage.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	g.svc = svc
	return g, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g.svc == nil {
		return "", apperr.Auth("Gemini API key not configured", nil)
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req := &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{{
			Role:  "user",
			Parts: []*generativelanguage.Part{{Text: prompt}},
		}},
	}
	resp, err := g.svc.Models.GenerateContent("models/"+g.model, req).Context(ctx).Do()
	if err != nil {
		return "", classifyGoogle(err)
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil {
				b.WriteString(part.Text)
			}
		}
		break
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyContent()
	}
	return text, nil
}

func classifyGoogle(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusTooManyRequests:
			return apperr.RateLimit(msgQuota, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return apperr.Auth(msgInvalidKey, err)
		}
	}
	return classify(err)
}

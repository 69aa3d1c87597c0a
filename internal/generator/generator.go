// Package generator talks to hosted text-generation models.
package generator

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"blogsmith/internal/apperr"
	"blogsmith/internal/article/model"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DefaultTimeout = 60 * time.Second
)

// Generator turns a prompt into free-form text. Errors are *apperr.Error
// values of kind Auth, RateLimit or Upstream.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// New builds the generator for cfg.Provider.
func New(ctx context.Context, cfg Config) (Generator, error) {
	switch cfg.Provider {
	case "", ProviderGemini:
		return NewGemini(ctx, cfg)
	case ProviderOpenAI:
		return NewOpenAI(cfg), nil
	default:
		return nil, fmt.Errorf("generator: unknown provider %q", cfg.Provider)
	}
}

const (
	msgTopicRequired = "Topic is required and must be a non-empty string"
	msgTopicTooLong  = "Topic must be less than 100 characters"
	msgInvalidKey    = "Invalid API key configuration"
	msgQuota         = "API quota exceeded. Please try again later."
	msgFailed        = "Failed to generate blog post. Please try again."
	msgEmpty         = "Failed to generate content"
)

// ValidateTopic returns the trimmed topic or a validation error.
func ValidateTopic(topic string) (string, error) {
	clean := strings.TrimSpace(topic)
	if clean == "" {
		return "", apperr.Validation(msgTopicRequired)
	}
	if utf8.RuneCountInString(clean) > model.MaxTopicLength {
		return "", apperr.Validation(msgTopicTooLong)
	}
	return clean, nil
}

// ErrEmptyContent is returned when the model answers with blank text.
func ErrEmptyContent() error {
	return apperr.Upstream(msgEmpty, nil)
}

// classify maps a provider failure to an error kind by its message.
func classify(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key"):
		return apperr.Auth(msgInvalidKey, err)
	case strings.Contains(strings.ToLower(msg), "quota"):
		return apperr.RateLimit(msgQuota, err)
	default:
		return apperr.Upstream(msgFailed, err)
	}
}

const promptTemplate = `Write a comprehensive, engaging, and well-structured blog post about: "%s"

REQUIREMENTS:
- Write a detailed blog post with at least 800-1200 words
- Use ## for main section headings (not #)
- Use ### for subsections
- Use regular paragraphs for content
- For lists, use simple bullet points with dashes (-)
- Use **text** ONLY for important keywords or phrases that need emphasis
- DO NOT use asterisks (*) for anything else
- DO NOT use single asterisks for bullet points
- Write in a professional, engaging, and informative tone
- Include practical examples and actionable insights
- Structure: Introduction, 3-5 main sections, conclusion
- Each section should have 2-3 substantial paragraphs
- Make it valuable and informative for readers

STRICT FORMATTING RULES:
- Never use * for bullet points (use - instead)
- Never use * for emphasis (use **text** for bold only)
- Never start lines with single *
- Keep formatting clean and minimal
- Focus on readability and content quality
- Ensure the content is original and valuable

Write a comprehensive blog post following these guidelines exactly.`

// BuildPrompt fills the fixed article prompt with a validated topic.
func BuildPrompt(topic string) string {
	return fmt.Sprintf(promptTemplate, topic)
}

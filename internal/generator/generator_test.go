package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"blogsmith/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTopic(t *testing.T) {
	clean, err := ValidateTopic("  Machine Learning  ")
	require.NoError(t, err)
	assert.Equal(t, "Machine Learning", clean)

	_, err = ValidateTopic(strings.Repeat("é", 100))
	assert.NoError(t, err, "100 runes is allowed")

	for _, bad := range []string{"", "   \n\t", strings.Repeat("a", 101)} {
		_, err := ValidateTopic(bad)
		assert.ErrorIs(t, err, apperr.ErrValidation, "%q", bad)
	}

	_, err = ValidateTopic(strings.Repeat("a", 101))
	assert.Equal(t, "Topic must be less than 100 characters", apperr.Message(err, ""))
	_, err = ValidateTopic(" ")
	assert.Equal(t, "Topic is required and must be a non-empty string", apperr.Message(err, ""))
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("Go generics")
	assert.Contains(t, p, `blog post about: "Go generics"`)
	assert.Contains(t, p, "800-1200 words")
	assert.Contains(t, p, "Use ## for main section headings")
	assert.Contains(t, p, "bullet points with dashes (-)")
	assert.Contains(t, p, "Introduction, 3-5 main sections, conclusion")
}

func TestClassify(t *testing.T) {
	err := classify(errors.New("[400 Bad Request] API key not valid"))
	assert.ErrorIs(t, err, apperr.ErrAuth)
	assert.Equal(t, "Invalid API key configuration", apperr.Message(err, ""))

	err = classify(errors.New("You exceeded your current Quota"))
	assert.ErrorIs(t, err, apperr.ErrRateLimit)
	assert.Equal(t, "API quota exceeded. Please try again later.", apperr.Message(err, ""))

	err = classify(errors.New("connection reset"))
	assert.ErrorIs(t, err, apperr.ErrUpstream)
	assert.Equal(t, "Failed to generate blog post. Please try again.", apperr.Message(err, ""))
}

func TestNewSelectsProvider(t *testing.T) {
	g, err := New(context.Background(), Config{Provider: ProviderOpenAI, APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, g)

	g, err = New(context.Background(), Config{})
	require.NoError(t, err)
	assert.IsType(t, &Gemini{}, g)

	_, err = New(context.Background(), Config{Provider: "llama"})
	assert.Error(t, err)
}

func TestEmptyContentIsUpstream(t *testing.T) {
	err := ErrEmptyContent()
	assert.ErrorIs(t, err, apperr.ErrUpstream)
	assert.Equal(t, "Failed to generate content", apperr.Message(err, ""))
}

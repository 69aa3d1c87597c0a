package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"blogsmith/internal/apperr"
	"blogsmith/internal/article/model"
	"blogsmith/internal/article/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) (cfgPath, storePath string) {
	t.Helper()
	for _, key := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "GENERATOR_PROVIDER", "STORE_DRIVER", "STORE_PATH", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	dir := t.TempDir()
	storePath = filepath.Join(dir, "blogs.db")
	cfgPath = filepath.Join(dir, "blogsmith.yaml")
	yml := "store:\n  driver: bolt\n  path: " + storePath + "\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(yml), 0o644))
	return cfgPath, storePath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func seedStore(t *testing.T, path string, articles ...model.Article) {
	t.Helper()
	repo, err := repository.OpenBolt(path)
	require.NoError(t, err)
	defer repo.Close()
	for _, a := range articles {
		require.NoError(t, repo.Insert(context.Background(), a))
	}
}

func TestCommandsAgainstBoltStore(t *testing.T) {
	cfgPath, storePath := writeConfig(t)

	out, err := run(t, "stats", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Articles: 0")

	out, err = run(t, "list", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No blog posts yet")

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	seedStore(t, storePath,
		model.NewArticle("a-1", "## Intro\n\nGo is **simple**.", "Go", now),
		model.NewArticle("a-2", "Rust is fast.", "Rust", now.Add(time.Hour)),
	)

	out, err = run(t, "list", "--config", cfgPath, "--search", "rust")
	require.NoError(t, err)
	assert.Contains(t, out, "Rust is fast.")
	assert.NotContains(t, out, "Go is simple.")
	assert.Contains(t, out, "Showing 1 of 1 (2 total)")

	out, err = run(t, "show", "--config", cfgPath, "a-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Intro")
	assert.Contains(t, out, "Go is simple.")
	assert.Contains(t, out, "May 1, 2024")

	out, err = run(t, "delete", "--config", cfgPath, "a-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Blog post deleted successfully (a-1). 1 remaining.")

	_, err = run(t, "delete", "--config", cfgPath, "a-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGenerateWithoutKeyFails(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	_, err := run(t, "generate", "--config", cfgPath, "distributed", "systems")
	assert.ErrorIs(t, err, apperr.ErrAuth)
}

func TestBadConfigFails(t *testing.T) {
	_, err := run(t, "stats", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRenderList(t *testing.T) {
	limit := 1
	a := model.NewArticle("x-1", "Some body text here.", "Testing", time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC))
	out := renderList(model.ListResult{Blogs: []model.Article{a}, Total: 2, TotalBlogs: 5, Limit: limit, HasMore: true})

	assert.Contains(t, out, "Testing")
	assert.Contains(t, out, "February 3, 2024")
	assert.Contains(t, out, "~1 min read")
	assert.Contains(t, out, "next page at --offset 1")

	assert.Equal(t, "No posts found.", renderList(model.ListResult{TotalBlogs: 3}))
}

func TestRenderArticleRaw(t *testing.T) {
	a := model.NewArticle("x-1", "## Raw **content**", "go", time.Now())
	out := renderArticle(a, true)
	assert.True(t, strings.HasSuffix(out, "## Raw **content**"))

	out = renderArticle(a, false)
	assert.Contains(t, out, "Raw **content**", "headings keep their text as written")
}

func TestRenderStats(t *testing.T) {
	latest := model.NewArticle("n", "x", "go", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	oldest := model.NewArticle("o", "x", "rust", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	out := renderStats(model.Stats{
		TotalBlogs:           3,
		UniqueTopics:         2,
		TopicDistribution:    map[string]int{"rust": 1, "go": 2},
		LatestBlog:           &latest,
		OldestBlog:           &oldest,
		AverageContentLength: 1,
	})

	assert.Contains(t, out, "Articles: 3")
	assert.Contains(t, out, "Latest: Go (January 2, 2024)")
	assert.Less(t, strings.Index(out, "  go"), strings.Index(out, "  rust"))
}

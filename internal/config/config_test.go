package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty directory and clears credential variables.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	return home
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".config", "writewatch", DefaultDBName), cfg.DatabasePath)
	assert.Equal(t, DefaultUserID, cfg.UserID)
	assert.Equal(t, DefaultSuggestions, cfg.Suggestions)
	assert.Equal(t, "", cfg.Augment.Provider)
	assert.Equal(t, 20*time.Second, cfg.Augment.Timeout)
	assert.Equal(t, 2000, cfg.Augment.MaxInputChars)
	assert.Equal(t, 10.0, cfg.Similarity.Floor)
	assert.Equal(t, 200, cfg.Metrics.WordsPerMinute)
	assert.Equal(t, DefaultWatch, cfg.Watch)
}

func TestLoad_FileOverrides(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
suggestions:
  max: 10
  per_type_cap: 3
augment:
  provider: openai
  api_key: sk-test
  base_url: https://api.groq.com/openai/v1
  timeout: 5s
log:
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Suggestions.Max)
	assert.Equal(t, 3, cfg.Suggestions.PerTypeCap)
	assert.Equal(t, 25, cfg.Suggestions.LongSentenceWords)
	assert.Equal(t, "openai", cfg.Augment.Provider)
	assert.Equal(t, "sk-test", cfg.Augment.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Augment.Timeout)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("WRITEWATCH_SUGGESTIONS_MAX", "7")
	t.Setenv("WRITEWATCH_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Suggestions.Max)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_APIKeyFallback(t *testing.T) {
	isolate(t)
	t.Setenv("ANTHROPIC_API_KEY", "ant-key")
	t.Setenv("OPENAI_API_KEY", "oa-key")
	path := writeConfig(t, "augment:\n  provider: anthropic\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ant-key", cfg.Augment.APIKey)
	assert.Equal(t, "oa-key", cfg.Embedding.APIKey)
}

func TestLoad_UnknownProviderIsNotALoadError(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "augment:\n  provider: cohere\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cohere", cfg.Augment.Provider)
	assert.Empty(t, cfg.Augment.APIKey)
}

func TestLoad_InvalidOverlap(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "suggestions:\n  dedup_overlap: 1.5\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "suggestions: [unclosed\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)
	assert.Equal(t, filepath.Join(home, "x", "y.db"), expandPath("~/x/y.db"))
	assert.Equal(t, "/abs/path", expandPath("/abs/path"))
}

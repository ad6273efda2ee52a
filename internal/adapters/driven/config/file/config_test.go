package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultChunkSizeWords, cfg.Chunking.SizeWords)
	assert.Equal(t, domain.DefaultAlpha, cfg.Retrieval.Alpha)
	assert.Equal(t, BackendOllama, cfg.Embedding.Backend)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
[chunking]
size_words = 100
overlap_words = 20

[retrieval]
top_k = 3
alpha = 0.8

[llm]
backend = "openai"
model = "gpt-4o"
api_key = "sk-test"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Chunking.SizeWords)
	assert.Equal(t, 20, cfg.Chunking.OverlapWords)
	assert.Equal(t, 3, cfg.Retrieval.TopK)
	assert.Equal(t, 0.8, cfg.Retrieval.Alpha)
	assert.Equal(t, BackendOpenAI, cfg.LLM.Backend)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)

	// Untouched sections keep their defaults.
	assert.Equal(t, BackendOllama, cfg.Embedding.Backend)
	assert.Equal(t, domain.DefaultMaxTurns, cfg.Chat.MaxTurns)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [valid toml"), 0o600))

	_, err := Load(dir)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"overlap not below size", "[chunking]\nsize_words = 50\noverlap_words = 50\n"},
		{"alpha out of range", "[retrieval]\nalpha = 1.5\n"},
		{"zero top_k", "[retrieval]\ntop_k = 0\n"},
		{"zero max turns", "[chat]\nmax_turns = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(tt.content), 0o600))

			_, err := Load(dir)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.Retrieval.TopK = 7
	cfg.Reranker.Enabled = true
	cfg.Reranker.APIKey = "co-test"

	require.NoError(t, Save(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/numan-developer-2/RAGSystem-Company/internal/adapters/driven/config/file"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
)

func TestCreateEmbeddingService(t *testing.T) {
	t.Run("ollama needs no api key", func(t *testing.T) {
		svc, err := CreateEmbeddingService(configfile.BackendConfig{
			Backend: configfile.BackendOllama,
		})
		require.NoError(t, err)
		require.NotNil(t, svc)
		assert.Equal(t, "nomic-embed-text", svc.ModelName())
	})

	t.Run("openai requires an api key", func(t *testing.T) {
		_, err := CreateEmbeddingService(configfile.BackendConfig{
			Backend: configfile.BackendOpenAI,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})

	t.Run("openai with api key", func(t *testing.T) {
		svc, err := CreateEmbeddingService(configfile.BackendConfig{
			Backend: configfile.BackendOpenAI,
			APIKey:  "sk-test",
		})
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("anthropic serves no embeddings", func(t *testing.T) {
		_, err := CreateEmbeddingService(configfile.BackendConfig{
			Backend: configfile.BackendAnthropic,
			APIKey:  "key",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := CreateEmbeddingService(configfile.BackendConfig{Backend: "cohere"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})
}

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name    string
		cfg     configfile.BackendConfig
		wantErr bool
	}{
		{"ollama", configfile.BackendConfig{Backend: configfile.BackendOllama}, false},
		{"openai with key", configfile.BackendConfig{Backend: configfile.BackendOpenAI, APIKey: "sk-test"}, false},
		{"openai without key", configfile.BackendConfig{Backend: configfile.BackendOpenAI}, true},
		{"anthropic with key", configfile.BackendConfig{Backend: configfile.BackendAnthropic, APIKey: "key"}, false},
		{"anthropic without key", configfile.BackendConfig{Backend: configfile.BackendAnthropic}, true},
		{"unknown backend", configfile.BackendConfig{Backend: "mistral"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, svc)
		})
	}
}

func TestCreateReranker(t *testing.T) {
	t.Run("disabled yields nil without error", func(t *testing.T) {
		r, err := CreateReranker(configfile.RerankerConfig{Enabled: false})
		require.NoError(t, err)
		assert.Nil(t, r)
	})

	t.Run("enabled requires an api key", func(t *testing.T) {
		_, err := CreateReranker(configfile.RerankerConfig{Enabled: true})
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})

	t.Run("enabled with api key", func(t *testing.T) {
		r, err := CreateReranker(configfile.RerankerConfig{Enabled: true, APIKey: "key"})
		require.NoError(t, err)
		assert.NotNil(t, r)
	})
}

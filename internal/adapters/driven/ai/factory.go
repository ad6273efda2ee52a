// Package ai provides factory functions for creating model backend
// adapters from configuration.
package ai

import (
	"context"
	"fmt"
	"time"

	configfile "github.com/numan-developer-2/RAGSystem-Company/internal/adapters/driven/config/file"
	ollamaembed "github.com/numan-developer-2/RAGSystem-Company/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/numan-developer-2/RAGSystem-Company/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/numan-developer-2/RAGSystem-Company/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/numan-developer-2/RAGSystem-Company/internal/adapters/driven/llm/ollama"
	openaillm "github.com/numan-developer-2/RAGSystem-Company/internal/adapters/driven/llm/openai"
	"github.com/numan-developer-2/RAGSystem-Company/internal/adapters/driven/reranker/cohere"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates the embedding backend named in the
// configuration.
func CreateEmbeddingService(cfg configfile.BackendConfig) (driven.EmbeddingService, error) {
	switch cfg.Backend {
	case configfile.BackendOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil

	case configfile.BackendOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})

	case configfile.BackendAnthropic:
		return nil, fmt.Errorf("%w: anthropic does not serve embeddings, use ollama or openai",
			domain.ErrInvalidConfig)

	default:
		return nil, fmt.Errorf("%w: unsupported embedding backend %q", domain.ErrInvalidConfig, cfg.Backend)
	}
}

// CreateLLMService creates the generation backend named in the
// configuration.
func CreateLLMService(cfg configfile.BackendConfig) (driven.LLMService, error) {
	switch cfg.Backend {
	case configfile.BackendOllama:
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil

	case configfile.BackendOpenAI:
		return openaillm.NewLLMService(openaillm.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})

	case configfile.BackendAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})

	default:
		return nil, fmt.Errorf("%w: unsupported llm backend %q", domain.ErrInvalidConfig, cfg.Backend)
	}
}

// CreateReranker creates the cross-encoder re-ranking backend, or nil
// when re-ranking is disabled.
func CreateReranker(cfg configfile.RerankerConfig) (driven.Reranker, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	return cohere.New(cohere.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
	})
}

// ValidateEmbeddingConfig creates the embedding backend and pings it.
// Intended for configuration checks before a long ingest run.
func ValidateEmbeddingConfig(cfg configfile.BackendConfig) error {
	svc, err := CreateEmbeddingService(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// ValidateLLMConfig creates the generation backend and pings it.
func ValidateLLMConfig(cfg configfile.BackendConfig) error {
	svc, err := CreateLLMService(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

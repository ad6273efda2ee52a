// Package file loads application configuration from a TOML file in the
// config directory, applying defaults for anything unset.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
)

// Backend names accepted in the config file.
const (
	BackendOllama    = "ollama"
	BackendOpenAI    = "openai"
	BackendAnthropic = "anthropic"
)

// Config is the full application configuration.
type Config struct {
	Chunking  ChunkingConfig  `toml:"chunking"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Embedding BackendConfig   `toml:"embedding"`
	LLM       BackendConfig   `toml:"llm"`
	Reranker  RerankerConfig  `toml:"reranker"`
	Cache     CacheConfig     `toml:"cache"`
	Chat      ChatConfig      `toml:"chat"`
}

// ChunkingConfig controls how documents are split.
type ChunkingConfig struct {
	SizeWords    int `toml:"size_words"`
	OverlapWords int `toml:"overlap_words"`
}

// RetrievalConfig controls the hybrid retrieval stage.
type RetrievalConfig struct {
	TopK          int     `toml:"top_k"`
	Alpha         float64 `toml:"alpha"`
	MinConfidence float64 `toml:"min_confidence"`
	AmbiguityGap  float64 `toml:"ambiguity_gap"`
	Rerank        bool    `toml:"rerank"`
}

// BackendConfig selects and configures a model backend.
type BackendConfig struct {
	Backend string `toml:"backend"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
	APIKey  string `toml:"api_key"`
}

// RerankerConfig configures the optional cross-encoder stage.
type RerankerConfig struct {
	Enabled bool   `toml:"enabled"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
	APIKey  string `toml:"api_key"`
}

// CacheConfig controls the answer cache.
type CacheConfig struct {
	Enabled    bool `toml:"enabled"`
	TTLMinutes int  `toml:"ttl_minutes"`
}

// ChatConfig controls interactive conversation behaviour.
type ChatConfig struct {
	MaxTurns int `toml:"max_turns"`
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Chunking: ChunkingConfig{
			SizeWords:    domain.DefaultChunkSizeWords,
			OverlapWords: domain.DefaultOverlapWords,
		},
		Retrieval: RetrievalConfig{
			TopK:          domain.DefaultTopK,
			Alpha:         domain.DefaultAlpha,
			MinConfidence: domain.DefaultMinConfidence,
			AmbiguityGap:  domain.DefaultAmbiguityGap,
			Rerank:        true,
		},
		Embedding: BackendConfig{
			Backend: BackendOllama,
		},
		LLM: BackendConfig{
			Backend: BackendOllama,
		},
		Reranker: RerankerConfig{
			Enabled: false,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLMinutes: 15,
		},
		Chat: ChatConfig{
			MaxTurns: domain.DefaultMaxTurns,
		},
	}
}

// DefaultDir returns the default config directory, ~/.ragsystem.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".ragsystem"), nil
}

// Load reads config.toml from configDir, layered over defaults. A
// missing file yields the defaults; a malformed file is an error.
func Load(configDir string) (Config, error) {
	cfg := Default()

	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return cfg, err
		}
		configDir = dir
	}

	path := filepath.Join(configDir, "config.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the configuration to config.toml in configDir, creating
// the directory if needed.
func Save(configDir string, cfg Config) error {
	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return err
		}
		configDir = dir
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Validate checks invariants that would otherwise surface deep inside
// the pipeline.
func (c Config) Validate() error {
	chunking := domain.ChunkingConfig{
		ChunkSizeWords: c.Chunking.SizeWords,
		OverlapWords:   c.Chunking.OverlapWords,
	}
	if err := chunking.Validate(); err != nil {
		return err
	}

	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive", domain.ErrInvalidConfig)
	}
	if c.Retrieval.Alpha < 0 || c.Retrieval.Alpha > 1 {
		return fmt.Errorf("%w: alpha must be in [0, 1]", domain.ErrInvalidConfig)
	}
	if c.Retrieval.MinConfidence < 0 || c.Retrieval.MinConfidence > 1 {
		return fmt.Errorf("%w: min_confidence must be in [0, 1]", domain.ErrInvalidConfig)
	}
	if c.Cache.Enabled && c.Cache.TTLMinutes <= 0 {
		return fmt.Errorf("%w: cache ttl_minutes must be positive", domain.ErrInvalidConfig)
	}
	if c.Chat.MaxTurns <= 0 {
		return fmt.Errorf("%w: chat max_turns must be positive", domain.ErrInvalidConfig)
	}
	return nil
}

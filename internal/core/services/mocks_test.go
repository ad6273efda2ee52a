package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/ports/driven"
	"github.com/numan-developer-2/RAGSystem-Company/internal/index/snapshot"
)

// mockEmbedder resolves texts to vectors through a lookup function.
type mockEmbedder struct {
	embedFn func(text string) ([]float32, error)
	calls   int
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls++
	return m.embedFn(text)
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (m *mockEmbedder) ModelName() string            { return "mock-embedder" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockLLM records chat calls and returns a canned reply.
type mockLLM struct {
	reply    string
	err      error
	calls    int
	messages []driven.ChatMessage
}

func (m *mockLLM) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	return m.Chat(ctx, []driven.ChatMessage{{Role: "user", Content: prompt}}, opts)
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.GenerateOptions) (string, error) {
	m.calls++
	m.messages = messages
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockReranker scores passages through a lookup function.
type mockReranker struct {
	scoreFn func(query string, passages []string) ([]float64, error)
	calls   int
}

func (m *mockReranker) Score(_ context.Context, query string, passages []string) ([]float64, error) {
	m.calls++
	return m.scoreFn(query, passages)
}

func (m *mockReranker) ModelName() string            { return "mock-reranker" }
func (m *mockReranker) Ping(_ context.Context) error { return nil }
func (m *mockReranker) Close() error                 { return nil }

// mockCache is a plain map cache with an invalidation counter.
type mockCache struct {
	mu            sync.Mutex
	entries       map[string]*domain.Answer
	invalidations int
}

func newMockCache() *mockCache {
	return &mockCache{entries: map[string]*domain.Answer{}}
}

func (m *mockCache) Get(key string) (*domain.Answer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.entries[key]
	return a, ok
}

func (m *mockCache) Set(key string, answer *domain.Answer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = answer
}

func (m *mockCache) InvalidateAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = map[string]*domain.Answer{}
	m.invalidations++
}

// mockLoader returns a fixed batch of raw documents.
type mockLoader struct {
	raws     []domain.RawDocument
	failures []domain.FileFailure
	err      error
}

func (m *mockLoader) Load(_ context.Context, _ string) ([]domain.RawDocument, []domain.FileFailure, error) {
	return m.raws, m.failures, m.err
}

// mockNormaliser passes raw bytes through, or fails by name.
type mockNormaliser struct {
	format  domain.Format
	failFor map[string]error
}

func (m *mockNormaliser) Format() domain.Format { return m.format }

func (m *mockNormaliser) Normalise(_ context.Context, raw *domain.RawDocument) (string, error) {
	if err, ok := m.failFor[raw.Name]; ok {
		return "", err
	}
	return string(raw.Content), nil
}

// mockRegistry maps formats to normalisers.
type mockRegistry struct {
	normalisers map[domain.Format]driven.Normaliser
}

func (m *mockRegistry) ForFormat(format domain.Format) (driven.Normaliser, error) {
	n, ok := m.normalisers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
	}
	return n, nil
}

// mockStore records saved snapshots.
type mockStore struct {
	saved []*snapshot.Snapshot
	err   error
}

func (m *mockStore) Save(_ context.Context, snap *snapshot.Snapshot) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, snap)
	return nil
}

func (m *mockStore) LoadLatest(_ context.Context) (*snapshot.Snapshot, error) {
	if len(m.saved) == 0 {
		return nil, domain.ErrNoSnapshot
	}
	return m.saved[len(m.saved)-1], nil
}

func (m *mockStore) Close() error { return nil }

// Package memory provides an in-memory answer cache with TTL expiry.
package memory

import (
	"sync"
	"time"

	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/ports/driven"
)

// Ensure AnswerCache implements the interface.
var _ driven.AnswerCache = (*AnswerCache)(nil)

// DefaultTTL is how long a cached answer stays valid.
const DefaultTTL = 15 * time.Minute

// entry is a cached answer with its expiry time.
type entry struct {
	answer    *domain.Answer
	expiresAt time.Time
}

// AnswerCache is a concurrency-safe in-memory cache. Expired entries
// are dropped lazily on lookup.
type AnswerCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// Option configures the cache.
type Option func(*AnswerCache)

// WithTTL overrides the default entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *AnswerCache) {
		c.ttl = ttl
	}
}

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *AnswerCache) {
		c.now = now
	}
}

// New creates an answer cache.
func New(opts ...Option) *AnswerCache {
	c := &AnswerCache{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached answer for the key, or false.
func (c *AnswerCache) Get(key string) (*domain.Answer, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.answer, true
}

// Set stores an answer under the key.
func (c *AnswerCache) Set(key string, answer *domain.Answer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		answer:    answer,
		expiresAt: c.now().Add(c.ttl),
	}
}

// InvalidateAll drops every entry.
func (c *AnswerCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the number of entries, expired included.
func (c *AnswerCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/numan-developer-2/RAGSystem-Company/internal/chunker"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/ports/driven"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/ports/driving"
	"github.com/numan-developer-2/RAGSystem-Company/internal/index/snapshot"
	"github.com/numan-developer-2/RAGSystem-Company/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// Ingestion tuning.
const (
	// DefaultWorkers is the number of documents normalised and chunked
	// concurrently.
	DefaultWorkers = 4

	// DefaultEmbedBatchSize is how many chunk texts go to the embedding
	// backend per call.
	DefaultEmbedBatchSize = 32
)

// IngestService builds index snapshots from a directory of source files.
type IngestService struct {
	loader      driven.DocumentLoader
	normalisers driven.NormaliserRegistry
	embedder    driven.EmbeddingService
	holder      *snapshot.Holder
	store       driven.SnapshotStore
	cache       driven.AnswerCache
	workers     int
	batchSize   int
}

// IngestOption configures the service.
type IngestOption func(*IngestService)

// WithSnapshotStore enables snapshot persistence.
func WithSnapshotStore(store driven.SnapshotStore) IngestOption {
	return func(s *IngestService) { s.store = store }
}

// WithAnswerCache wires the cache invalidated on publish.
func WithAnswerCache(cache driven.AnswerCache) IngestOption {
	return func(s *IngestService) { s.cache = cache }
}

// WithWorkers overrides the parallel normalisation width.
func WithWorkers(n int) IngestOption {
	return func(s *IngestService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithEmbedBatchSize overrides the embedding batch size.
func WithEmbedBatchSize(n int) IngestOption {
	return func(s *IngestService) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// NewIngestService creates an ingestion service.
func NewIngestService(
	loader driven.DocumentLoader,
	normalisers driven.NormaliserRegistry,
	embedder driven.EmbeddingService,
	holder *snapshot.Holder,
	opts ...IngestOption,
) *IngestService {
	s := &IngestService{
		loader:      loader,
		normalisers: normalisers,
		embedder:    embedder,
		holder:      holder,
		workers:     DefaultWorkers,
		batchSize:   DefaultEmbedBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// preparedDoc is one document after normalisation and chunking, before
// embedding.
type preparedDoc struct {
	doc    domain.Document
	chunks []domain.Chunk
}

// Ingest processes every supported file under dir, builds a new snapshot
// and publishes it atomically. Individual bad files are skipped and
// reported; the run fails only when no document survives.
func (s *IngestService) Ingest(ctx context.Context, dir string, cfg domain.ChunkingConfig) (*domain.IngestReport, error) {
	started := time.Now()
	logger.Section("Ingestion")
	logger.Debug("Directory: %s, chunk size %d, overlap %d", dir, cfg.ChunkSizeWords, cfg.OverlapWords)

	splitter, err := chunker.New(cfg)
	if err != nil {
		return nil, err
	}

	raws, failures, err := s.loader.Load(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	logger.Info("Found %d candidate documents", len(raws))

	// Normalise and chunk in parallel. Results land in a fixed slice so
	// document order matches discovery order regardless of scheduling.
	prepared := make([]*preparedDoc, len(raws))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, raw := range raws {
		g.Go(func() error {
			pd, err := s.prepare(gctx, splitter, raw)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.Warn("Skipping %s: %v", raw.Path, err)
				mu.Lock()
				failures = append(failures, domain.FileFailure{Path: raw.Path, Reason: err.Error()})
				mu.Unlock()
				return nil
			}
			prepared[i] = pd
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var docs []domain.Document
	var chunks []domain.Chunk
	for _, pd := range prepared {
		if pd == nil {
			continue
		}
		docs = append(docs, pd.doc)
		chunks = append(chunks, pd.chunks...)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no readable documents in %s", domain.ErrEmptyCorpus, dir)
	}
	logger.Info("Prepared %d documents, %d chunks", len(docs), len(chunks))

	if err := s.embedAll(ctx, chunks); err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}

	snap, err := snapshot.Build(docs, chunks)
	if err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}

	// Publication is the commit point: queries see the old snapshot
	// until this pointer swap, then only the new one.
	s.holder.Publish(snap)
	logger.Info("Published snapshot %s", snap.Version)

	if s.cache != nil {
		s.cache.InvalidateAll()
	}

	if s.store != nil {
		if err := s.store.Save(ctx, snap); err != nil {
			// The published snapshot still serves queries; only restart
			// durability is lost.
			logger.Error("Snapshot persistence failed: %v", err)
		}
	}

	return &domain.IngestReport{
		SnapshotVersion:  snap.Version,
		DocumentsIndexed: len(docs),
		ChunksIndexed:    len(chunks),
		Failures:         failures,
		Duration:         time.Since(started),
	}, nil
}

// prepare normalises one raw file and splits it into chunks.
func (s *IngestService) prepare(ctx context.Context, splitter *chunker.Chunker, raw domain.RawDocument) (*preparedDoc, error) {
	normaliser, err := s.normalisers.ForFormat(raw.Format)
	if err != nil {
		return nil, err
	}

	text, err := normaliser.Normalise(ctx, &raw)
	if err != nil {
		return nil, err
	}

	doc := domain.Document{
		ID:         uuid.New().String(),
		Name:       raw.Name,
		Format:     raw.Format,
		Text:       chunker.Normalize(text),
		IngestedAt: time.Now(),
	}
	return &preparedDoc{
		doc:    doc,
		chunks: splitter.Split(&doc),
	}, nil
}

// embedAll fills chunk embeddings batch by batch. The embedding backend
// is the bottleneck, so batching is the one knob that matters here.
func (s *IngestService) embedAll(ctx context.Context, chunks []domain.Chunk) error {
	for start := 0; start < len(chunks); start += s.batchSize {
		end := start + s.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, end-start)
		for i := range texts {
			texts[i] = chunks[start+i].Text
		}

		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return err
		}
		if len(vectors) != len(texts) {
			return fmt.Errorf("embedding batch returned %d vectors for %d texts", len(vectors), len(texts))
		}

		for i, vec := range vectors {
			chunks[start+i].Embedding = vec
		}
		logger.Debug("Embedded %d/%d chunks", end, len(chunks))
	}
	return nil
}

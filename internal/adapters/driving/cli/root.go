// Package cli implements the command-line driving adapter. Commands are
// thin shells over the driving ports; all wiring from configuration to
// concrete backends happens once in wireServices.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/numan-developer-2/RAGSystem-Company/internal/adapters/driven/ai"
	"github.com/numan-developer-2/RAGSystem-Company/internal/adapters/driven/cache/memory"
	configfile "github.com/numan-developer-2/RAGSystem-Company/internal/adapters/driven/config/file"
	"github.com/numan-developer-2/RAGSystem-Company/internal/adapters/driven/storage/sqlite"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/ports/driven"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/ports/driving"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/services"
	"github.com/numan-developer-2/RAGSystem-Company/internal/index/snapshot"
	"github.com/numan-developer-2/RAGSystem-Company/internal/loader"
	"github.com/numan-developer-2/RAGSystem-Company/internal/logger"
	"github.com/numan-developer-2/RAGSystem-Company/internal/normalisers"
	"github.com/numan-developer-2/RAGSystem-Company/internal/normalisers/docx"
	"github.com/numan-developer-2/RAGSystem-Company/internal/normalisers/markdown"
	"github.com/numan-developer-2/RAGSystem-Company/internal/normalisers/pdf"
	"github.com/numan-developer-2/RAGSystem-Company/internal/normalisers/plaintext"
)

var version = "0.1.0"

// Persistent flags.
var (
	verbose   bool
	configDir string
)

// Wired application state. Tests replace the services directly and set
// wired to skip configuration loading.
var (
	wired     bool
	appConfig configfile.Config

	holder        *snapshot.Holder
	snapshotStore driven.SnapshotStore

	ingestService driving.IngestService
	queryService  driving.QueryService
	statusService driving.StatusService
)

var rootCmd = &cobra.Command{
	Use:   "ragsystem",
	Short: "Question answering over local document collections",
	Long: `ragsystem indexes a directory of documents (PDF, DOCX, plain text,
Markdown) and answers questions about them with cited sources.

Retrieval is hybrid: BM25 keyword scores fused with embedding similarity,
optionally re-ranked by a cross-encoder. When the evidence is too weak or
too ambiguous the system abstains instead of guessing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if wired || cmd.Name() == "version" {
			return nil
		}
		return wireServices(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.ragsystem)")
}

// Execute runs the CLI.
func Execute() error {
	defer closeServices()
	return rootCmd.Execute()
}

// wireServices builds the full object graph from configuration: backend
// adapters, the snapshot holder, persistence and the driving services.
func wireServices(ctx context.Context) error {
	cfg, err := configfile.Load(configDir)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	appConfig = cfg

	embedder, err := ai.CreateEmbeddingService(cfg.Embedding)
	if err != nil {
		return err
	}
	llm, err := ai.CreateLLMService(cfg.LLM)
	if err != nil {
		return err
	}

	holder = snapshot.NewHolder()

	// A broken store degrades to in-memory operation rather than
	// refusing to start.
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("Snapshot store unavailable, running without persistence: %v", err)
	} else {
		snapshotStore = store
		restoreSnapshot(ctx, store)
	}

	var cache driven.AnswerCache
	if cfg.Cache.Enabled {
		cache = memory.New(memory.WithTTL(cfg.Cache.TTL()))
	}

	registry := normalisers.NewRegistry(
		plaintext.New(),
		markdown.New(),
		docx.New(),
		pdf.New(),
	)

	ingestOpts := []services.IngestOption{}
	if snapshotStore != nil {
		ingestOpts = append(ingestOpts, services.WithSnapshotStore(snapshotStore))
	}
	if cache != nil {
		ingestOpts = append(ingestOpts, services.WithAnswerCache(cache))
	}
	ingestService = services.NewIngestService(loader.New(), registry, embedder, holder, ingestOpts...)

	queryOpts := []services.QueryOption{
		services.WithConfidenceGate(cfg.Retrieval.MinConfidence, cfg.Retrieval.AmbiguityGap),
		services.WithMaxTurns(cfg.Chat.MaxTurns),
	}
	reranker, err := ai.CreateReranker(cfg.Reranker)
	if err != nil {
		return fmt.Errorf("configuring re-ranker: %w", err)
	}
	if reranker != nil {
		queryOpts = append(queryOpts, services.WithReranker(reranker))
	}
	if cache != nil {
		queryOpts = append(queryOpts, services.WithCache(cache))
	}
	queryService = services.NewQueryService(holder, embedder, llm, queryOpts...)
	statusService = services.NewStatusService(holder)

	wired = true
	return nil
}

// restoreSnapshot republishes the last persisted snapshot so queries
// work immediately after a restart, without re-ingesting.
func restoreSnapshot(ctx context.Context, store driven.SnapshotStore) {
	snap, err := store.LoadLatest(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoSnapshot) {
			logger.Warn("Could not restore persisted snapshot: %v", err)
		}
		return
	}
	holder.Publish(snap)
	logger.Debug("Restored snapshot %s (%d documents, %d chunks)",
		snap.Version, len(snap.Documents), len(snap.Chunks))
}

func closeServices() {
	if snapshotStore != nil {
		if err := snapshotStore.Close(); err != nil {
			logger.Warn("Closing snapshot store: %v", err)
		}
	}
}

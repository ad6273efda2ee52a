package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/numan-developer-2/RAGSystem-Company/internal/loader"
)

// directoryWatcher is the slice of loader.Watcher the watch command
// needs; tests substitute it.
type directoryWatcher interface {
	Watch(ctx context.Context, dir string) (<-chan struct{}, error)
	Close() error
}

var newWatcher = func() (directoryWatcher, error) {
	return loader.NewWatcher()
}

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Index a directory and re-index on changes",
	Long: `Indexes the directory, then keeps watching it. When files are
added, changed or removed the corpus is re-indexed and a fresh snapshot
published. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	dir := args[0]

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := reindex(ctx, cmd, dir); err != nil {
		return err
	}

	watcher, err := newWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	changes, err := watcher.Watch(ctx, dir)
	if err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	cmd.Printf("Watching %s for changes. Press Ctrl-C to stop.\n", dir)

	for range changes {
		cmd.Println("Change detected, re-indexing...")
		// Keep serving the old snapshot if the re-index fails.
		if err := reindex(ctx, cmd, dir); err != nil {
			cmd.PrintErrf("re-index failed: %v\n", err)
		}
	}
	return nil
}

func reindex(ctx context.Context, cmd *cobra.Command, dir string) error {
	report, err := ingestService.Ingest(ctx, dir, chunkingConfig())
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	cmd.Printf("Indexed %d documents (%d chunks), snapshot %s.\n",
		report.DocumentsIndexed, report.ChunksIndexed, report.SnapshotVersion)
	return nil
}

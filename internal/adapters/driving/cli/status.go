package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the index",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output status as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if statusService == nil {
		return errors.New("status service not configured")
	}

	status := statusService.Status()

	if statusJSON {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if !status.Ready {
		cmd.Println("No index yet. Run \"ragsystem ingest <directory>\" first.")
		return nil
	}

	cmd.Printf("Snapshot:   %s\n", status.SnapshotVersion)
	cmd.Printf("Built:      %s\n", status.BuiltAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("Documents:  %d\n", status.DocumentCount)
	cmd.Printf("Chunks:     %d\n", status.ChunkCount)
	cmd.Printf("Dimensions: %d\n", status.EmbeddingDimensions)
	return nil
}

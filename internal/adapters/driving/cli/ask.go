package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
)

var (
	askTopK     int
	askAlpha    float64
	askNoRerank bool
	askJSON     bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the indexed documents",
	Long: `Answers a single question against the indexed corpus.
Retrieval fuses BM25 keyword and embedding similarity scores; the answer
cites the source passages it was generated from. When the evidence is
too weak the system says so instead of guessing.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of passages to retrieve (default from config)")
	askCmd.Flags().Float64Var(&askAlpha, "alpha", 0, "vector weight in score fusion, 0..1 (default from config)")
	askCmd.Flags().BoolVar(&askNoRerank, "no-rerank", false, "skip the re-ranking pass")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	opts := retrievalOptions()
	if askTopK > 0 {
		opts.TopK = askTopK
	}
	if cmd.Flags().Changed("alpha") {
		opts.Alpha = askAlpha
	}
	if askNoRerank {
		opts.Rerank = false
	}

	answer, err := queryService.Ask(cmd.Context(), domain.QueryRequest{
		Question: args[0],
		Options:  opts,
	})
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if askJSON {
		return outputAnswerJSON(cmd, answer)
	}
	outputAnswerText(cmd, answer)
	return nil
}

// retrievalOptions derives the baseline retrieval options from the
// loaded configuration, falling back to built-in defaults when no
// configuration was loaded.
func retrievalOptions() domain.RetrievalOptions {
	if appConfig.Retrieval.TopK == 0 {
		return domain.DefaultRetrievalOptions()
	}
	return domain.RetrievalOptions{
		TopK:   appConfig.Retrieval.TopK,
		Alpha:  appConfig.Retrieval.Alpha,
		Rerank: appConfig.Retrieval.Rerank,
	}
}

func outputAnswerJSON(cmd *cobra.Command, answer *domain.Answer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerText(cmd *cobra.Command, answer *domain.Answer) {
	cmd.Println(answer.Text)

	if len(answer.Citations) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, c := range answer.Citations {
			cmd.Printf("  [%d] %s (section %d)\n", i+1, c.DocumentName, c.ChunkIndex+1)
			if c.Snippet != "" {
				cmd.Printf("      %s\n", c.Snippet)
			}
		}
	}

	cmd.Println()
	cached := ""
	if answer.FromCache {
		cached = ", cached"
	}
	cmd.Printf("(confidence %.2f, %dms%s)\n", answer.Confidence, answer.LatencyMS, cached)
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions interactively",
	Long: `Starts an interactive session against the indexed documents.
Prior exchanges in the session are passed along with each question, so
follow-ups like "and how do I request that?" resolve against earlier
answers. Type "exit" or press Ctrl-D to leave.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	maxTurns := appConfig.Chat.MaxTurns
	if maxTurns <= 0 {
		maxTurns = domain.DefaultMaxTurns
	}

	cmd.Println("Ask a question, or type \"exit\" to leave.")

	var turns []domain.Turn
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		answer, err := queryService.Ask(cmd.Context(), domain.QueryRequest{
			Question: question,
			Options:  retrievalOptions(),
			Context:  turns,
		})
		if err != nil {
			// A failed question should not end the session.
			cmd.PrintErrf("error: %v\n", err)
			continue
		}

		outputAnswerText(cmd, answer)

		turns = append(turns, domain.Turn{Question: question, Answer: answer.Text})
		if len(turns) > maxTurns {
			turns = turns[len(turns)-maxTurns:]
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	cmd.Println("Bye.")
	return nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leadline-ai/leadline/internal/config"
)

// SearchCmd returns the search command
func SearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the indexed documents",
		Long:  "Embed the query and print the most similar chunks above the score threshold",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}

	cmd.Flags().IntP("top-k", "k", 0, "Maximum number of results (0 uses the configured default)")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	rt, err := newRuntime(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	topK, _ := cmd.Flags().GetInt("top-k")
	query := strings.Join(args, " ")

	results, err := rt.conversation.Search(cmd.Context(), query, topK)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("no matching chunks")
		return nil
	}

	for i, res := range results {
		location := res.Chunk.Source
		if res.Chunk.Page > 0 {
			location += fmt.Sprintf(" (page %d)", res.Chunk.Page)
		}
		fmt.Printf("%d. [%.2f] %s\n   %s\n", i+1, res.Score, location, res.Chunk.Content)
	}
	return nil
}

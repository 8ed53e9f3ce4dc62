package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leadline-ai/leadline/internal/config"
)

// IngestCmd returns the ingest command
func IngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Index business documents",
		Long:  "Chunk, embed and index the given PDF, text or markdown files, replacing the previous knowledge base",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runIngest,
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	rt, err := newRuntime(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	count, err := rt.ingest.Ingest(cmd.Context(), args)
	if err != nil {
		return err
	}

	if count == 0 {
		fmt.Println("no usable content found, index unchanged")
		return nil
	}

	fmt.Printf("indexed %d chunks into %s\n", count, cfg.VectorStoreDir)
	return nil
}

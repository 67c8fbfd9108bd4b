package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index statistics",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if indexCollection == nil {
		return errors.New("collection not configured")
	}

	stats, err := indexCollection.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}

	cmd.Printf("Chunks:    %d\n", stats.Chunks)
	cmd.Printf("Articles:  %d\n", stats.Documents)
	cmd.Printf("Topics:    %d\n", stats.Topics)

	if stats.Chunks == 0 {
		cmd.Println()
		cmd.Println("The index is empty. Run 'litqa ingest \"<topic>\"' to populate it.")
	}
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [topic]...",
	Short: "Fetch and index PubMed articles",
	Long: `Searches PubMed for each topic, fetches the article abstracts, and
indexes them as overlapping word-window chunks.

Ingestion is idempotent: topics that completed before are skipped, and
articles already in the index are never fetched or stored twice. With no
arguments, the topics configured under ingest.topics are used.`,
	Args: cobra.ArbitraryArgs,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestionService == nil {
		return errors.New("ingestion service not configured")
	}

	topics := args
	if len(topics) == 0 {
		topics = defaultTopics
	}
	if len(topics) == 0 {
		return errors.New("no topics given and ingest.topics is not configured")
	}

	ctx := context.Background()
	if err := ingestionService.Ingest(ctx, topics); err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if indexCollection != nil {
		stats, err := indexCollection.Stats(ctx)
		if err == nil {
			cmd.Printf("Done. Index now holds %d chunks from %d articles across %d topics.\n",
				stats.Chunks, stats.Documents, stats.Topics)
			return nil
		}
	}
	cmd.Println("Done.")
	return nil
}

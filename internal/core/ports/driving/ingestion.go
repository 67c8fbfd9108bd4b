package driving

import "context"

// IngestionService brings a set of topics into the index exactly once.
type IngestionService interface {
	// Ingest processes the topics in order, sequentially. Per-document
	// failures are logged and skipped; a failed topic search aborts that
	// topic only; a store failure aborts the run.
	Ingest(ctx context.Context, topics []string) error
}

package driven

import (
	"context"

	"github.com/medlit-labs/litqa-cli/internal/core/domain"
)

// CollectionStore provides access to named vector collections.
type CollectionStore interface {
	// GetOrCreateCollection opens a collection, creating it if absent.
	// Idempotent; the collection is bound to the store's embedding
	// function at creation time.
	GetOrCreateCollection(ctx context.Context, name string) (Collection, error)

	// Close releases resources.
	Close() error
}

// Collection is a persistent key→(embedding, text, metadata) index.
// Entries are write-once: they are never updated or deleted. The store
// enforces key uniqueness even if a caller's dedup snapshot is stale.
type Collection interface {
	// Snapshot performs a full scan and returns the dedup state: the
	// existing chunk keys, the fully ingested topics, and the document
	// IDs derived from key prefixes.
	Snapshot(ctx context.Context) (*domain.Snapshot, error)

	// Upsert embeds the entry texts via the bound embedding function and
	// stores them. Entries whose key already exists are silently dropped;
	// the count of newly inserted entries is returned.
	Upsert(ctx context.Context, entries []domain.IndexEntry) (int, error)

	// Query embeds the text and returns the topK nearest entries in
	// descending similarity order.
	Query(ctx context.Context, text string, topK int) ([]domain.ScoredChunk, error)

	// MarkTopicIngested records that a topic's ingestion completed fully.
	// Only marked topics appear in Snapshot.Topics.
	MarkTopicIngested(ctx context.Context, topic, runID string) error

	// Stats summarises the collection contents.
	Stats(ctx context.Context) (*domain.CollectionStats, error)

	// Close releases resources.
	Close() error
}

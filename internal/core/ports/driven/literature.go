package driven

import (
	"context"

	"github.com/medlit-labs/litqa-cli/internal/core/domain"
)

// LiteratureClient fetches abstracts from the upstream literature database.
// Implementations paginate the upstream search endpoint and throttle
// requests to respect its usage policy.
type LiteratureClient interface {
	// Search returns up to maxResults document identifiers for a topic,
	// in upstream relevance order.
	Search(ctx context.Context, topic string, maxResults int) ([]string, error)

	// Fetch retrieves structured articles for the given identifiers.
	// Missing fields are replaced with documented placeholders; a record
	// without an identifier is skipped, never an error.
	Fetch(ctx context.Context, ids []string) ([]domain.Article, error)
}

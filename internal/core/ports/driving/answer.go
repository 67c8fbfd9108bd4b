package driving

import (
	"context"

	"github.com/medlit-labs/litqa-cli/internal/core/domain"
)

// AnswerService answers questions against the ingested index.
type AnswerService interface {
	// Retrieve returns the top-k chunks for a question in the store's
	// native similarity order.
	Retrieve(ctx context.Context, question string, k int) ([]domain.ScoredChunk, error)

	// Answer retrieves context for the question and asks the language
	// model for a short answer backed by that context. k <= 0 uses the
	// configured default.
	Answer(ctx context.Context, question string, k int) (*domain.Answer, error)
}

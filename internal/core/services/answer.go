package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/medlit-labs/litqa-cli/internal/core/domain"
	"github.com/medlit-labs/litqa-cli/internal/core/ports/driven"
	"github.com/medlit-labs/litqa-cli/internal/core/ports/driving"
	"github.com/medlit-labs/litqa-cli/internal/logger"
)

// Ensure AnswerEngine implements the interface.
var _ driving.AnswerService = (*AnswerEngine)(nil)

// Default generation settings for grounded answers. Short answers are the
// point: the prompt asks for one or two sentences.
const (
	DefaultTopK        = 3
	DefaultMaxTokens   = 512
	DefaultTemperature = 0.2
)

// AnswerEngine retrieves relevant chunks for a question and asks the
// language model for an answer grounded in them.
type AnswerEngine struct {
	collection driven.Collection
	llm        driven.LLMService
	prompts    driven.PromptStore
	topK       int
}

// NewAnswerEngine creates a new answer engine. topK <= 0 falls back to
// DefaultTopK.
func NewAnswerEngine(
	collection driven.Collection,
	llm driven.LLMService,
	prompts driven.PromptStore,
	topK int,
) *AnswerEngine {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &AnswerEngine{
		collection: collection,
		llm:        llm,
		prompts:    prompts,
		topK:       topK,
	}
}

// Retrieve returns the top-k chunks for a question, most similar first.
func (e *AnswerEngine) Retrieve(ctx context.Context, question string, k int) ([]domain.ScoredChunk, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}
	if k <= 0 {
		k = e.topK
	}

	chunks, err := e.collection.Query(ctx, question, k)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}
	return chunks, nil
}

// Answer runs retrieval and a single generation call. The retrieved chunk
// texts are joined in similarity order into the prompt context; the answer
// carries the source metadata of every chunk, deduplicated by title.
func (e *AnswerEngine) Answer(ctx context.Context, question string, k int) (*domain.Answer, error) {
	chunks, err := e.Retrieve(ctx, question, k)
	if err != nil {
		return nil, err
	}
	logger.Debug("Retrieved %d chunk(s) for question", len(chunks))

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	template, err := e.prompts.Load(driven.PromptAnswer)
	if err != nil {
		return nil, fmt.Errorf("load answer prompt: %w", err)
	}
	prompt := fmt.Sprintf(template, strings.Join(texts, " "), question)

	text, err := e.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}

	return &domain.Answer{
		Question: question,
		Text:     strings.TrimSpace(text),
		Evidence: domain.DeduplicateEvidence(chunks),
	}, nil
}

package driven

import "context"

// LLMService provides language model completion for answer generation.
//
// Implementations may include:
//   - Groq (llama, mixtral families via OpenAI-compatible API)
//   - Any OpenAI-compatible chat completion endpoint
type LLMService interface {
	// Generate produces a text completion from a prompt. A single request
	// per call; failures are surfaced without retry.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}

// Package ai provides factory functions for creating AI service adapters
// from configuration.
package ai

import (
	"fmt"

	ollamaembed "github.com/medlit-labs/litqa-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/medlit-labs/litqa-cli/internal/adapters/driven/embedding/openai"
	groqllm "github.com/medlit-labs/litqa-cli/internal/adapters/driven/llm/groq"
	ollamallm "github.com/medlit-labs/litqa-cli/internal/adapters/driven/llm/ollama"
	"github.com/medlit-labs/litqa-cli/internal/core/domain"
	"github.com/medlit-labs/litqa-cli/internal/core/ports/driven"
)

// Provider types accepted in configuration.
const (
	EmbedderOpenAI = "openai"
	EmbedderOllama = "ollama"

	LLMGroq   = "groq"
	LLMOllama = "ollama"
)

// EmbedderConfig selects and configures an embedding provider.
type EmbedderConfig struct {
	// Type is the provider: "openai" or "ollama" (default: ollama).
	Type string

	// Model is the embedding model; empty uses the provider default.
	Model string

	// APIKey authenticates hosted providers. Ignored by ollama.
	APIKey string

	// BaseURL overrides the provider endpoint.
	BaseURL string
}

// LLMConfig selects and configures a completion provider.
type LLMConfig struct {
	// Type is the provider: "groq" or "ollama" (default: groq).
	Type string

	// Model is the chat model; empty uses the provider default.
	Model string

	// APIKey authenticates hosted providers. Ignored by ollama.
	APIKey string

	// BaseURL overrides the provider endpoint.
	BaseURL string
}

// NewEmbeddingService creates an embedding service for the configured
// provider. Credential problems are reported before any network call.
func NewEmbeddingService(cfg EmbedderConfig) (driven.EmbeddingService, error) {
	switch cfg.Type {
	case EmbedderOllama, "":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil

	case EmbedderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", domain.ErrMissingCredentials)
		}
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})

	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q", domain.ErrInvalidInput, cfg.Type)
	}
}

// NewLLMService creates a completion service for the configured provider.
func NewLLMService(cfg LLMConfig) (driven.LLMService, error) {
	switch cfg.Type {
	case LLMGroq, "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: GROQ_API_KEY is not set", domain.ErrMissingCredentials)
		}
		return groqllm.NewLLMService(groqllm.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})

	case LLMOllama:
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil

	default:
		return nil, fmt.Errorf("%w: unknown llm provider %q", domain.ErrInvalidInput, cfg.Type)
	}
}

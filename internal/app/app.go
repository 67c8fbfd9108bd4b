// Package app wires the adapters and services together and runs the CLI.
package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/medlit-labs/litqa-cli/internal/adapters/driven/ai"
	"github.com/medlit-labs/litqa-cli/internal/adapters/driven/config/file"
	"github.com/medlit-labs/litqa-cli/internal/adapters/driven/storage/sqlite"
	"github.com/medlit-labs/litqa-cli/internal/adapters/driving/cli"
	"github.com/medlit-labs/litqa-cli/internal/chunker"
	"github.com/medlit-labs/litqa-cli/internal/connectors/pubmed"
	"github.com/medlit-labs/litqa-cli/internal/core/ports/driven"
	"github.com/medlit-labs/litqa-cli/internal/core/services"
	"github.com/medlit-labs/litqa-cli/internal/logger"
)

// CollectionName is the single collection the CLI operates on.
const CollectionName = "pubmed_articles"

// DefaultMaxResults caps article IDs fetched per topic when unconfigured.
const DefaultMaxResults = 100

// Run wires the application and executes the CLI.
func Run(version string) error {
	// A .env file in the working directory supplies credentials during
	// development. Absence is not an error.
	_ = godotenv.Load()

	configDir := flagValue(os.Args[1:], "--config")
	if configDir == "" {
		configDir = os.Getenv("LITQA_CONFIG_DIR")
	}
	cfg, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	logger.Debug("Config loaded from %s", cfg.Path())

	embedder, err := ai.NewEmbeddingService(ai.EmbedderConfig{
		Type:   cfg.GetString(driven.ConfigEmbedderType),
		Model:  cfg.GetString(driven.ConfigEmbedderModel),
		APIKey: os.Getenv("OPENAI_API_KEY"),
	})
	if err != nil {
		return fmt.Errorf("create embedding service: %w", err)
	}
	defer embedder.Close()

	dataDir := flagValue(os.Args[1:], "--data-dir")
	if dataDir == "" {
		dataDir = cfg.GetString(driven.ConfigDataDir)
	}
	store, err := sqlite.NewStore(dataDir, embedder)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	collection, err := store.GetOrCreateCollection(ctx, CollectionName)
	if err != nil {
		return fmt.Errorf("open collection: %w", err)
	}

	window := cfg.GetInt(driven.ConfigChunkWindow)
	if window == 0 {
		window = chunker.DefaultWindowWords
	}
	overlap := cfg.GetInt(driven.ConfigChunkOverlap)
	if overlap == 0 {
		overlap = chunker.DefaultOverlapWords
	}
	wordChunker, err := chunker.New(window, overlap)
	if err != nil {
		return fmt.Errorf("create chunker: %w", err)
	}

	maxResults := cfg.GetInt(driven.ConfigMaxResults)
	if maxResults == 0 {
		maxResults = DefaultMaxResults
	}

	ingestion := services.NewIngestionEngine(
		pubmed.New(pubmed.Config{}),
		collection,
		wordChunker,
		maxResults,
	)

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("create prompt store: %w", err)
	}

	llm := buildLLM(cfg)
	defer llm.Close()

	answer := services.NewAnswerEngine(collection, llm, prompts, cfg.GetInt(driven.ConfigTopK))

	cli.SetVersion(version)
	cli.SetServices(ingestion, answer, collection)
	cli.SetDefaultTopics(cfg.GetStringSlice(driven.ConfigDefaultTopics))

	return cli.Execute()
}

// buildLLM creates the completion service. A missing API key is deferred:
// commands that never generate text (ingest, status) still work, and ask
// reports the credential problem when it actually needs the model.
func buildLLM(cfg driven.ConfigStore) driven.LLMService {
	model := os.Getenv("GROQ_MODEL")
	if model == "" {
		model = cfg.GetString(driven.ConfigLLMModel)
	}

	llm, err := ai.NewLLMService(ai.LLMConfig{
		Type:   cfg.GetString(driven.ConfigLLMType),
		Model:  model,
		APIKey: os.Getenv("GROQ_API_KEY"),
	})
	if err != nil {
		return &unavailableLLM{err: err}
	}
	return llm
}

// flagValue scans raw arguments for "--name value" or "--name=value".
// Wiring runs before cobra parses flags, so the directory flags have to be
// read by hand here; cobra still validates and documents them.
func flagValue(args []string, name string) string {
	for i, arg := range args {
		if arg == name && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(arg, name+"=") {
			return strings.TrimPrefix(arg, name+"=")
		}
	}
	return ""
}

// unavailableLLM stands in when no completion service could be created.
type unavailableLLM struct {
	err error
}

var _ driven.LLMService = (*unavailableLLM)(nil)

func (u *unavailableLLM) Generate(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
	return "", u.err
}

func (u *unavailableLLM) ModelName() string { return "unavailable" }

func (u *unavailableLLM) Close() error { return nil }

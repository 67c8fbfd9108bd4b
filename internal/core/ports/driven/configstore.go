package driven

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetStringSlice retrieves a string slice configuration value.
	// Returns nil if key doesn't exist or isn't a slice.
	GetStringSlice(key string) []string

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}

// Well-known configuration keys.
const (
	// ConfigDataDir overrides the data directory holding the index.
	ConfigDataDir = "storage.data_dir"

	// ConfigMaxResults caps search results per topic.
	ConfigMaxResults = "pubmed.max_results"

	// ConfigChunkWindow is the chunk window size in words.
	ConfigChunkWindow = "chunker.window_words"

	// ConfigChunkOverlap is the chunk overlap in words.
	ConfigChunkOverlap = "chunker.overlap_words"

	// ConfigTopK is the number of chunks retrieved per question.
	ConfigTopK = "retrieval.top_k"

	// ConfigEmbedderType selects the embedding backend (openai, ollama).
	ConfigEmbedderType = "embedding.type"

	// ConfigEmbedderModel selects the embedding model.
	ConfigEmbedderModel = "embedding.model"

	// ConfigLLMType selects the completion backend (groq, ollama).
	ConfigLLMType = "llm.type"

	// ConfigLLMModel selects the completion model. The GROQ_MODEL
	// environment variable takes precedence for the groq backend.
	ConfigLLMModel = "llm.model"

	// ConfigDefaultTopics seeds `litqa ingest` when no topics are given.
	ConfigDefaultTopics = "ingest.topics"
)

// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - LiteratureClient: Searches and fetches abstracts from the literature database
//   - CollectionStore / Collection: Persistent vector index with dedup snapshot support
//   - EmbeddingService: Generates vector embeddings (bound into the Collection)
//   - LLMService: Language model completion for answer generation
//   - ConfigStore: Application configuration
//   - PromptStore: User-editable prompt templates
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven

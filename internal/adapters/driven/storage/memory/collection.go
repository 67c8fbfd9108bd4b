// Package memory provides in-memory implementations of the storage ports.
// Used in tests and for throwaway runs where persistence is not wanted.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/medlit-labs/litqa-cli/internal/core/domain"
	"github.com/medlit-labs/litqa-cli/internal/core/ports/driven"
)

// Ensure the store implements the interfaces.
var (
	_ driven.CollectionStore = (*Store)(nil)
	_ driven.Collection      = (*Collection)(nil)
)

// Store is an in-memory implementation of driven.CollectionStore.
type Store struct {
	mu          sync.Mutex
	embedder    driven.EmbeddingService
	collections map[string]*Collection
}

// NewStore creates an in-memory collection store bound to the given
// embedding service.
func NewStore(embedder driven.EmbeddingService) *Store {
	return &Store{
		embedder:    embedder,
		collections: make(map[string]*Collection),
	}
}

// GetOrCreateCollection opens a collection, creating it if absent.
func (s *Store) GetOrCreateCollection(_ context.Context, name string) (driven.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if coll, ok := s.collections[name]; ok {
		return coll, nil
	}
	coll := NewCollection(s.embedder)
	s.collections[name] = coll
	return coll, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

// storedEntry is an index entry with its embedding.
type storedEntry struct {
	domain.IndexEntry
	embedding []float32
	topic     string
}

// Collection is an in-memory implementation of driven.Collection.
type Collection struct {
	mu       sync.RWMutex
	embedder driven.EmbeddingService
	entries  map[string]storedEntry
	order    []string
	topics   map[string]string // topic -> run ID
}

// NewCollection creates an empty in-memory collection.
func NewCollection(embedder driven.EmbeddingService) *Collection {
	return &Collection{
		embedder: embedder,
		entries:  make(map[string]storedEntry),
		topics:   make(map[string]string),
	}
}

// Snapshot returns the dedup state.
func (c *Collection) Snapshot(_ context.Context) (*domain.Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := domain.NewSnapshot()
	for key, e := range c.entries {
		snap.Keys[key] = struct{}{}
		snap.DocumentIDs[e.DocumentID] = struct{}{}
	}
	for topic := range c.topics {
		snap.Topics[topic] = struct{}{}
	}
	return snap, nil
}

// Upsert embeds and stores the entries, dropping duplicate keys.
func (c *Collection) Upsert(ctx context.Context, entries []domain.IndexEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}
	vectors, err := c.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	inserted := 0
	for i, e := range entries {
		if _, ok := c.entries[e.Key]; ok {
			continue
		}
		c.entries[e.Key] = storedEntry{
			IndexEntry: e,
			embedding:  vectors[i],
			topic:      e.Metadata.Topic,
		}
		c.order = append(c.order, e.Key)
		inserted++
	}
	return inserted, nil
}

// Query returns the topK nearest entries by cosine similarity.
func (c *Collection) Query(ctx context.Context, text string, topK int) ([]domain.ScoredChunk, error) {
	if topK <= 0 {
		return nil, nil
	}

	queryVec, err := c.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.entries) == 0 {
		return nil, domain.ErrNotIngested
	}

	scored := make([]domain.ScoredChunk, 0, len(c.entries))
	for _, key := range c.order {
		e := c.entries[key]
		scored = append(scored, domain.ScoredChunk{
			Key:        e.Key,
			Text:       e.Text,
			Metadata:   e.Metadata,
			Similarity: cosine(queryVec, e.embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if topK < len(scored) {
		scored = scored[:topK]
	}
	return scored, nil
}

// MarkTopicIngested records a topic completion marker.
func (c *Collection) MarkTopicIngested(_ context.Context, topic, runID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topics[topic] = runID
	return nil
}

// Stats summarises the collection contents.
func (c *Collection) Stats(_ context.Context) (*domain.CollectionStats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	docs := make(map[string]struct{}, len(c.entries))
	for _, e := range c.entries {
		docs[e.DocumentID] = struct{}{}
	}
	return &domain.CollectionStats{
		Chunks:    len(c.entries),
		Documents: len(docs),
		Topics:    len(c.topics),
	}, nil
}

// Close releases resources.
func (c *Collection) Close() error {
	return nil
}

// cosine computes the cosine similarity between two vectors.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

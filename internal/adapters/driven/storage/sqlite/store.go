package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/medlit-labs/litqa-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/medlit-labs/litqa-cli/internal/core/domain"
	"github.com/medlit-labs/litqa-cli/internal/core/ports/driven"
)

// Ensure the store implements the interfaces.
var (
	_ driven.CollectionStore = (*Store)(nil)
	_ driven.Collection      = (*collection)(nil)
)

// Store is a SQLite-backed collection store. Embeddings are computed by
// the bound embedding service and persisted as little-endian float32
// blobs; similarity queries scan the collection and rank by cosine
// similarity.
type Store struct {
	db       *sql.DB
	path     string
	embedder driven.EmbeddingService
}

// NewStore creates a SQLite store at the specified data directory with
// the given embedding function bound to every collection it opens.
// If dataDir is empty, defaults to ~/.litqa/data.
func NewStore(dataDir string, embedder driven.EmbeddingService) (*Store, error) {
	if embedder == nil {
		return nil, fmt.Errorf("%w: embedding service is required", domain.ErrInvalidInput)
	}
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".litqa", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "litqa.db")

	// WAL mode for better read concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", domain.ErrStore, err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling foreign keys: %w", domain.ErrStore, err)
	}

	s := &Store{
		db:       db,
		path:     dbPath,
		embedder: embedder,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: running migrations: %w", domain.ErrStore, err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// GetOrCreateCollection opens a collection, creating its row if absent.
func (s *Store) GetOrCreateCollection(ctx context.Context, name string) (driven.Collection, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: collection name is empty", domain.ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (name, embedding_model, dimensions)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO NOTHING
	`, name, s.embedder.ModelName(), s.embedder.Dimensions())
	if err != nil {
		return nil, fmt.Errorf("%w: creating collection: %w", domain.ErrStore, err)
	}

	return &collection{store: s, name: name}, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Collection ====================

// collection implements driven.Collection for a single named collection.
type collection struct {
	store *Store
	name  string
}

// Snapshot performs a full scan of the collection's keys, completed
// topics, and document IDs.
func (c *collection) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	snap := domain.NewSnapshot()

	rows, err := c.store.db.QueryContext(ctx, `
		SELECT id, document_id FROM chunks WHERE collection = ?
	`, c.name)
	if err != nil {
		return nil, fmt.Errorf("%w: scanning chunks: %w", domain.ErrStore, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, docID string
		if err := rows.Scan(&id, &docID); err != nil {
			return nil, fmt.Errorf("%w: scanning chunk row: %w", domain.ErrStore, err)
		}
		snap.Keys[id] = struct{}{}
		snap.DocumentIDs[docID] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating chunks: %w", domain.ErrStore, err)
	}

	topicRows, err := c.store.db.QueryContext(ctx, `
		SELECT name FROM topics WHERE collection = ?
	`, c.name)
	if err != nil {
		return nil, fmt.Errorf("%w: scanning topics: %w", domain.ErrStore, err)
	}
	defer topicRows.Close()

	for topicRows.Next() {
		var topic string
		if err := topicRows.Scan(&topic); err != nil {
			return nil, fmt.Errorf("%w: scanning topic row: %w", domain.ErrStore, err)
		}
		snap.Topics[topic] = struct{}{}
	}
	if err := topicRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating topics: %w", domain.ErrStore, err)
	}

	return snap, nil
}

// Upsert embeds the entry texts and inserts them, silently dropping
// entries whose key already exists. Returns the number actually inserted.
func (c *collection) Upsert(ctx context.Context, entries []domain.IndexEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}

	vectors, err := c.store.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding batch: %w", err)
	}
	if len(vectors) != len(entries) {
		return 0, fmt.Errorf("%w: embedder returned %d vectors for %d texts", domain.ErrStore, len(vectors), len(entries))
	}

	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: beginning transaction: %w", domain.ErrStore, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, collection, document_id, chunk_index, content,
			embedding, title, journal, authors, publication_date, topic)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("%w: preparing insert: %w", domain.ErrStore, err)
	}
	defer stmt.Close()

	inserted := 0
	for i, e := range entries {
		res, err := stmt.ExecContext(ctx, e.Key, c.name, e.DocumentID, e.Metadata.ChunkIndex,
			e.Text, float32SliceToBytes(vectors[i]), e.Metadata.Title, e.Metadata.Journal,
			e.Metadata.Authors, e.Metadata.PublicationDate, e.Metadata.Topic)
		if err != nil {
			return 0, fmt.Errorf("%w: inserting chunk %s: %w", domain.ErrStore, e.Key, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("%w: rows affected: %w", domain.ErrStore, err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: committing transaction: %w", domain.ErrStore, err)
	}
	return inserted, nil
}

// Query embeds the text and returns the topK nearest chunks by cosine
// similarity, in descending order.
func (c *collection) Query(ctx context.Context, text string, topK int) ([]domain.ScoredChunk, error) {
	if topK <= 0 {
		return nil, nil
	}

	queryVec, err := c.store.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	rows, err := c.store.db.QueryContext(ctx, `
		SELECT id, content, embedding, title, journal, authors,
			publication_date, topic, chunk_index
		FROM chunks WHERE collection = ?
	`, c.name)
	if err != nil {
		return nil, fmt.Errorf("%w: querying chunks: %w", domain.ErrStore, err)
	}
	defer rows.Close()

	var scored []domain.ScoredChunk
	for rows.Next() {
		var chunk domain.ScoredChunk
		var blob []byte
		if err := rows.Scan(&chunk.Key, &chunk.Text, &blob, &chunk.Metadata.Title,
			&chunk.Metadata.Journal, &chunk.Metadata.Authors, &chunk.Metadata.PublicationDate,
			&chunk.Metadata.Topic, &chunk.Metadata.ChunkIndex); err != nil {
			return nil, fmt.Errorf("%w: scanning chunk: %w", domain.ErrStore, err)
		}
		chunk.Similarity = cosineSimilarity(queryVec, bytesToFloat32Slice(blob))
		scored = append(scored, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating chunks: %w", domain.ErrStore, err)
	}

	if len(scored) == 0 {
		return nil, domain.ErrNotIngested
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
func (c *collection) MarkTopicIngested(ctx context.Context, topic, runID string) error {
	_, err := c.store.db.ExecContext(ctx, `
		INSERT INTO topics (collection, name, run_id)
		VALUES (?, ?, ?)
		ON CONFLICT(collection, name) DO UPDATE SET
			run_id = excluded.run_id,
			ingested_at = CURRENT_TIMESTAMP
	`, c.name, topic, runID)
	if err != nil {
		return fmt.Errorf("%w: marking topic %q: %w", domain.ErrStore, topic, err)
	}
	return nil
}

// Stats summarises the collection contents.
func (c *collection) Stats(ctx context.Context) (*domain.CollectionStats, error) {
	stats := &domain.CollectionStats{}

	err := c.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT document_id) FROM chunks WHERE collection = ?
	`, c.name).Scan(&stats.Chunks, &stats.Documents)
	if err != nil {
		return nil, fmt.Errorf("%w: counting chunks: %w", domain.ErrStore, err)
	}

	err = c.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM topics WHERE collection = ?
	`, c.name).Scan(&stats.Topics)
	if err != nil {
		return nil, fmt.Errorf("%w: counting topics: %w", domain.ErrStore, err)
	}

	return stats, nil
}

// Close is a no-op; the owning Store holds the database handle.
func (c *collection) Close() error {
	return nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a stored byte slice back to a []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) < 4 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// cosineSimilarity computes the cosine similarity between two vectors.
// Mismatched or zero-magnitude vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
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

package domain

import (
	"strconv"
	"strings"
)

// ChunkMetadata is the metadata stored alongside every index entry.
// The schema is fixed; there are no optional fields.
type ChunkMetadata struct {
	// Title is the owning article's title.
	Title string `json:"title"`

	// Journal is the owning article's journal.
	Journal string `json:"journal"`

	// Authors is the owning article's comma-joined author list.
	Authors string `json:"authors"`

	// PublicationDate is the owning article's publication year.
	PublicationDate string `json:"publication_date"`

	// Topic is the label the article was fetched under.
	Topic string `json:"topic"`

	// ChunkIndex is the 0-based position within the article.
	ChunkIndex int `json:"chunk_index"`
}

// IndexEntry is a single chunk as written to the index.
// Entries are created once and never updated or deleted.
type IndexEntry struct {
	// Key is the globally unique chunk identifier: "{pmid}_{index}".
	Key string

	// DocumentID is the owning article's PMID.
	DocumentID string

	// Text is the chunk content.
	Text string

	// Metadata carries the owning article's attributes.
	Metadata ChunkMetadata
}

// ScoredChunk is a retrieved index entry with its similarity score.
type ScoredChunk struct {
	// Key is the chunk identifier.
	Key string

	// Text is the chunk content.
	Text string

	// Metadata carries the owning article's attributes.
	Metadata ChunkMetadata

	// Similarity is the cosine similarity to the query (higher is closer).
	Similarity float64
}

// ChunkKey builds the identity key for a chunk. Keys are deterministic so
// re-ingestion of the same article yields the same keys.
func ChunkKey(pmid string, index int) string {
	return pmid + "_" + strconv.Itoa(index)
}

// DocumentIDFromKey recovers the PMID prefix from a chunk key.
func DocumentIDFromKey(key string) string {
	if i := strings.IndexByte(key, '_'); i >= 0 {
		return key[:i]
	}
	return key
}

// CollectionStats summarises the contents of a collection.
type CollectionStats struct {
	// Chunks is the number of index entries.
	Chunks int

	// Documents is the number of distinct articles.
	Documents int

	// Topics is the number of fully ingested topics.
	Topics int
}

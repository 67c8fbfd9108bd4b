package services

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medlit-labs/litqa-cli/internal/adapters/driven/storage/memory"
	"github.com/medlit-labs/litqa-cli/internal/chunker"
	"github.com/medlit-labs/litqa-cli/internal/core/domain"
	"github.com/medlit-labs/litqa-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockLiteratureClient implements driven.LiteratureClient for testing.
type mockLiteratureClient struct {
	searchResults map[string][]string
	articles      map[string]domain.Article
	searchErrs    map[string]error
	fetchErr      error

	searchCalls int
	fetchCalls  int
	fetchedIDs  [][]string
}

func (m *mockLiteratureClient) Search(_ context.Context, topic string, maxResults int) ([]string, error) {
	m.searchCalls++
	if err := m.searchErrs[topic]; err != nil {
		return nil, err
	}
	ids := m.searchResults[topic]
	if maxResults > 0 && len(ids) > maxResults {
		ids = ids[:maxResults]
	}
	return ids, nil
}

func (m *mockLiteratureClient) Fetch(_ context.Context, ids []string) ([]domain.Article, error) {
	m.fetchCalls++
	m.fetchedIDs = append(m.fetchedIDs, ids)
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	articles := make([]domain.Article, 0, len(ids))
	for _, id := range ids {
		if a, ok := m.articles[id]; ok {
			articles = append(articles, a)
		}
	}
	return articles, nil
}

// bowEmbedder is a deterministic bag-of-words embedder. Identical texts map
// to identical vectors, so similarity ordering is predictable.
type bowEmbedder struct {
	failBatch bool
}

func (e *bowEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, 16)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(word))
		vec[h.Sum32()%16]++
	}
	return vec, nil
}

func (e *bowEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if e.failBatch {
		return nil, errors.New("embedding backend unavailable")
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *bowEmbedder) Dimensions() int { return 16 }

func (e *bowEmbedder) ModelName() string { return "bow-test" }

func (e *bowEmbedder) Close() error { return nil }

// failingCollection fails every write the way a broken backing store would.
type failingCollection struct {
	driven.Collection
	upsertCalls int
}

func (c *failingCollection) Upsert(_ context.Context, _ []domain.IndexEntry) (int, error) {
	c.upsertCalls++
	return 0, fmt.Errorf("%w: disk I/O error", domain.ErrStore)
}

// --- Test helpers ---

func testArticle(pmid, title, abstract string) domain.Article {
	return domain.Article{
		PMID:  pmid,
		Title: title,
		Abstract: []domain.AbstractSection{
			{Label: "SUMMARY", Text: abstract},
		},
		Journal:         "Test Journal",
		Authors:         "Jane Doe",
		PublicationDate: "2024",
	}
}

func testCollection(t *testing.T) driven.Collection {
	t.Helper()
	store := memory.NewStore(&bowEmbedder{})
	coll, err := store.GetOrCreateCollection(context.Background(), "pubmed_articles")
	require.NoError(t, err)
	return coll
}

// words returns n repeated filler words so chunk counts are predictable.
func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "w"
	}
	return strings.Join(parts, " ")
}

func newTestEngine(t *testing.T, client *mockLiteratureClient, coll driven.Collection) *IngestionEngine {
	t.Helper()
	ch, err := chunker.New(10, 2)
	require.NoError(t, err)
	return NewIngestionEngine(client, coll, ch, 100)
}

// --- Tests ---

func TestIngestionEngine_Ingest(t *testing.T) {
	ctx := context.Background()

	t.Run("indexes chunks for every article", func(t *testing.T) {
		// 10-word window, 2-word overlap: an 18-word source yields 2 chunks.
		client := &mockLiteratureClient{
			searchResults: map[string][]string{"cancer": {"1", "2"}},
			articles: map[string]domain.Article{
				"1": testArticle("1", "alpha", words(17)),
				"2": testArticle("2", "beta", words(17)),
			},
		}
		coll := testCollection(t)
		engine := newTestEngine(t, client, coll)

		require.NoError(t, engine.Ingest(ctx, []string{"cancer"}))

		snap, err := coll.Snapshot(ctx)
		require.NoError(t, err)
		for _, key := range []string{"1_0", "1_1", "2_0", "2_1"} {
			assert.True(t, snap.HasKey(key), "missing key %s", key)
		}
		assert.True(t, snap.HasTopic("cancer"))

		stats, err := coll.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, stats.Chunks)
		assert.Equal(t, 2, stats.Documents)
		assert.Equal(t, 1, stats.Topics)
	})

	t.Run("completed topic skipped without upstream calls", func(t *testing.T) {
		client := &mockLiteratureClient{
			searchResults: map[string][]string{"diabetes": {"1"}},
			articles:      map[string]domain.Article{"1": testArticle("1", "alpha", words(17))},
		}
		coll := testCollection(t)
		engine := newTestEngine(t, client, coll)

		require.NoError(t, engine.Ingest(ctx, []string{"diabetes"}))
		require.Equal(t, 1, client.searchCalls)
		require.Equal(t, 1, client.fetchCalls)

		require.NoError(t, engine.Ingest(ctx, []string{"diabetes"}))
		assert.Equal(t, 1, client.searchCalls, "search should not run for a completed topic")
		assert.Equal(t, 1, client.fetchCalls, "fetch should not run for a completed topic")
	})

	t.Run("known documents not refetched under new topic", func(t *testing.T) {
		client := &mockLiteratureClient{
			searchResults: map[string][]string{
				"asthma":    {"1", "2"},
				"allergies": {"2", "3"},
			},
			articles: map[string]domain.Article{
				"1": testArticle("1", "alpha", words(17)),
				"2": testArticle("2", "beta", words(17)),
				"3": testArticle("3", "gamma", words(17)),
			},
		}
		coll := testCollection(t)
		engine := newTestEngine(t, client, coll)

		require.NoError(t, engine.Ingest(ctx, []string{"asthma", "allergies"}))

		require.Len(t, client.fetchedIDs, 2)
		assert.Equal(t, []string{"1", "2"}, client.fetchedIDs[0])
		assert.Equal(t, []string{"3"}, client.fetchedIDs[1], "article 2 was already indexed")

		stats, err := coll.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.Documents)
		assert.Equal(t, 2, stats.Topics)
	})

	t.Run("topic with only known documents still marked complete", func(t *testing.T) {
		client := &mockLiteratureClient{
			searchResults: map[string][]string{
				"asthma":   {"1"},
				"wheezing": {"1"},
			},
			articles: map[string]domain.Article{"1": testArticle("1", "alpha", words(17))},
		}
		coll := testCollection(t)
		engine := newTestEngine(t, client, coll)

		require.NoError(t, engine.Ingest(ctx, []string{"asthma", "wheezing"}))

		snap, err := coll.Snapshot(ctx)
		require.NoError(t, err)
		assert.True(t, snap.HasTopic("wheezing"))
		assert.Equal(t, 1, client.fetchCalls, "second topic needed no fetch")
	})

	t.Run("search failure aborts that topic only", func(t *testing.T) {
		client := &mockLiteratureClient{
			searchResults: map[string][]string{"diabetes": {"1"}},
			searchErrs:    map[string]error{"cancer": errors.New("esearch: 503")},
			articles:      map[string]domain.Article{"1": testArticle("1", "alpha", words(17))},
		}
		coll := testCollection(t)
		engine := newTestEngine(t, client, coll)

		err := engine.Ingest(ctx, []string{"cancer", "diabetes"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cancer")

		// The second topic was still ingested.
		snap, snapErr := coll.Snapshot(ctx)
		require.NoError(t, snapErr)
		assert.False(t, snap.HasTopic("cancer"))
		assert.True(t, snap.HasTopic("diabetes"))
	})

	t.Run("article failure skips document and leaves topic incomplete", func(t *testing.T) {
		client := &mockLiteratureClient{
			searchResults: map[string][]string{"cancer": {"1", "2"}},
			articles: map[string]domain.Article{
				"1": testArticle("1", "alpha", words(17)),
				"2": testArticle("2", "beta", words(17)),
			},
		}
		embedder := &bowEmbedder{failBatch: true}
		store := memory.NewStore(embedder)
		coll, err := store.GetOrCreateCollection(ctx, "pubmed_articles")
		require.NoError(t, err)
		engine := newTestEngine(t, client, coll)

		// Every upsert fails, but the run itself completes.
		require.NoError(t, engine.Ingest(ctx, []string{"cancer"}))

		snap, err := coll.Snapshot(ctx)
		require.NoError(t, err)
		assert.False(t, snap.HasTopic("cancer"), "failed topic must stay retryable")

		// Retry with a healthy embedder path covers the same topic again.
		embedder.failBatch = false
		require.NoError(t, engine.Ingest(ctx, []string{"cancer"}))
		snap, err = coll.Snapshot(ctx)
		require.NoError(t, err)
		assert.True(t, snap.HasTopic("cancer"))
		assert.True(t, snap.HasKey("1_0"))
		assert.True(t, snap.HasKey("2_0"))
	})

	t.Run("store failure aborts the topic", func(t *testing.T) {
		client := &mockLiteratureClient{
			searchResults: map[string][]string{"cancer": {"1", "2"}},
			articles: map[string]domain.Article{
				"1": testArticle("1", "alpha", words(17)),
				"2": testArticle("2", "beta", words(17)),
			},
		}
		coll := &failingCollection{Collection: testCollection(t)}
		engine := newTestEngine(t, client, coll)

		err := engine.Ingest(ctx, []string{"cancer"})
		require.ErrorIs(t, err, domain.ErrStore)
		assert.Equal(t, 1, coll.upsertCalls, "should stop after the first store failure")
	})

	t.Run("article with empty text yields no chunks", func(t *testing.T) {
		client := &mockLiteratureClient{
			searchResults: map[string][]string{"cancer": {"1"}},
			articles: map[string]domain.Article{
				"1": {PMID: "1", Title: "", Journal: "J", Authors: "A", PublicationDate: "2024"},
			},
		}
		coll := testCollection(t)
		engine := newTestEngine(t, client, coll)

		require.NoError(t, engine.Ingest(ctx, []string{"cancer"}))

		stats, err := coll.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.Chunks)
		snap, err := coll.Snapshot(ctx)
		require.NoError(t, err)
		assert.True(t, snap.HasTopic("cancer"))
	})

	t.Run("no topics is a no-op", func(t *testing.T) {
		client := &mockLiteratureClient{}
		engine := newTestEngine(t, client, testCollection(t))
		require.NoError(t, engine.Ingest(ctx, nil))
		assert.Zero(t, client.searchCalls)
	})
}

func TestIngestionEngine_ChunkMetadata(t *testing.T) {
	ctx := context.Background()
	client := &mockLiteratureClient{
		searchResults: map[string][]string{"migraine": {"42"}},
		articles:      map[string]domain.Article{"42": testArticle("42", "alpha", words(17))},
	}
	coll := testCollection(t)
	engine := newTestEngine(t, client, coll)

	require.NoError(t, engine.Ingest(ctx, []string{"migraine"}))

	chunks, err := coll.Query(ctx, "alpha w", 10)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for _, c := range chunks {
		assert.Equal(t, "alpha", c.Metadata.Title)
		assert.Equal(t, "Test Journal", c.Metadata.Journal)
		assert.Equal(t, "Jane Doe", c.Metadata.Authors)
		assert.Equal(t, "2024", c.Metadata.PublicationDate)
		assert.Equal(t, "migraine", c.Metadata.Topic)
		assert.Equal(t, "42", domain.DocumentIDFromKey(c.Key))
	}
}

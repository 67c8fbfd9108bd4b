package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/medlit-labs/litqa-cli/internal/core/domain"
	"github.com/medlit-labs/litqa-cli/internal/core/ports/driven"
	"github.com/medlit-labs/litqa-cli/internal/core/ports/driving"
	"github.com/medlit-labs/litqa-cli/internal/logger"
)

// Ensure IngestionEngine implements the interface.
var _ driving.IngestionService = (*IngestionEngine)(nil)

// Chunker splits flattened article text into overlapping word windows.
type Chunker interface {
	Split(text string) []string
}

// IngestionEngine fetches articles for a set of topics and indexes their
// chunks into a collection. Ingestion is idempotent: topics, documents and
// chunks that are already present are skipped, so re-running the same
// topics is a cheap no-op.
type IngestionEngine struct {
	literature driven.LiteratureClient
	collection driven.Collection
	chunker    Chunker
	maxResults int
}

// NewIngestionEngine creates a new ingestion engine.
// maxResults caps how many article IDs are requested per topic.
func NewIngestionEngine(
	literature driven.LiteratureClient,
	collection driven.Collection,
	chunker Chunker,
	maxResults int,
) *IngestionEngine {
	return &IngestionEngine{
		literature: literature,
		collection: collection,
		chunker:    chunker,
		maxResults: maxResults,
	}
}

// Ingest processes topics sequentially. A topic that was previously ingested
// to completion is skipped without any upstream calls. Within a topic,
// failures on individual articles are logged and skipped; the topic's
// completion marker is only written when every article indexed cleanly.
func (e *IngestionEngine) Ingest(ctx context.Context, topics []string) error {
	snapshot, err := e.collection.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot collection: %w", err)
	}

	runID := uuid.NewString()
	logger.Debug("Ingestion run %s: %d topic(s)", runID, len(topics))

	// A failing topic does not stop the others; its error is still
	// surfaced to the caller at the end.
	var errs []error
	for _, topic := range topics {
		if err := e.ingestTopic(ctx, topic, runID, snapshot); err != nil {
			logger.Warn("Topic %q failed: %v", topic, err)
			errs = append(errs, fmt.Errorf("ingest topic %q: %w", topic, err))
		}
	}

	return errors.Join(errs...)
}

func (e *IngestionEngine) ingestTopic(
	ctx context.Context,
	topic, runID string,
	snapshot *domain.Snapshot,
) error {
	if snapshot.HasTopic(topic) {
		logger.Info("Topic %q already ingested, skipping", topic)
		return nil
	}

	ids, err := e.literature.Search(ctx, topic, e.maxResults)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	logger.Info("Topic %q: found %d article(s)", topic, len(ids))

	// Only fetch articles the collection has not seen yet.
	fresh := make([]string, 0, len(ids))
	for _, id := range ids {
		if !snapshot.HasDocument(id) {
			fresh = append(fresh, id)
		}
	}
	if len(fresh) == 0 {
		logger.Info("Topic %q: all articles already indexed", topic)
		if err := e.collection.MarkTopicIngested(ctx, topic, runID); err != nil {
			return fmt.Errorf("mark topic: %w", err)
		}
		snapshot.Topics[topic] = struct{}{}
		return nil
	}

	articles, err := e.literature.Fetch(ctx, fresh)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	var docErrors int
	for _, article := range articles {
		if err := e.indexArticle(ctx, article, topic, snapshot); err != nil {
			// A store failure is not recoverable by skipping the
			// article; stop the topic. Anything else is isolated to
			// the one document.
			if errors.Is(err, domain.ErrStore) {
				return fmt.Errorf("index article %s: %w", article.PMID, err)
			}
			docErrors++
			logger.Warn("Skipping article %s: %v", article.PMID, err)
		}
	}

	if docErrors > 0 {
		logger.Warn("Topic %q: %d article(s) failed, leaving topic incomplete", topic, docErrors)
		return nil
	}

	if err := e.collection.MarkTopicIngested(ctx, topic, runID); err != nil {
		return fmt.Errorf("mark topic: %w", err)
	}
	snapshot.Topics[topic] = struct{}{}
	logger.Info("Topic %q: ingestion complete", topic)

	return nil
}

// indexArticle chunks one article and upserts its chunks in a single batch.
// Chunks whose keys already exist in the snapshot are dropped before the
// write, keeping re-ingestion free of duplicate rows.
func (e *IngestionEngine) indexArticle(
	ctx context.Context,
	article domain.Article,
	topic string,
	snapshot *domain.Snapshot,
) error {
	chunks := e.chunker.Split(article.ChunkSource())
	if len(chunks) == 0 {
		return nil
	}

	metadata := domain.ChunkMetadata{
		Title:           article.Title,
		Journal:         article.Journal,
		Authors:         article.Authors,
		PublicationDate: article.PublicationDate,
		Topic:           topic,
	}

	entries := make([]domain.IndexEntry, 0, len(chunks))
	for i, chunk := range chunks {
		key := domain.ChunkKey(article.PMID, i)
		if snapshot.HasKey(key) {
			continue
		}
		entryMeta := metadata
		entryMeta.ChunkIndex = i
		entries = append(entries, domain.IndexEntry{
			Key:        key,
			DocumentID: article.PMID,
			Text:       chunk,
			Metadata:   entryMeta,
		})
	}
	if len(entries) == 0 {
		snapshot.AddDocuments([]string{article.PMID})
		return nil
	}

	inserted, err := e.collection.Upsert(ctx, entries)
	if err != nil {
		return fmt.Errorf("upsert chunks: %w", err)
	}
	logger.Debug("Article %s: indexed %d/%d chunk(s)", article.PMID, inserted, len(chunks))

	for _, entry := range entries {
		snapshot.Keys[entry.Key] = struct{}{}
	}
	snapshot.AddDocuments([]string{article.PMID})

	return nil
}

package cli

import (
	"context"

	"github.com/medlit-labs/litqa-cli/internal/core/domain"
)

// fakeIngestion implements driving.IngestionService.
type fakeIngestion struct {
	topics [][]string
	err    error
}

func (f *fakeIngestion) Ingest(_ context.Context, topics []string) error {
	f.topics = append(f.topics, topics)
	return f.err
}

// fakeAnswer implements driving.AnswerService.
type fakeAnswer struct {
	answer *domain.Answer
	err    error

	lastQuestion string
	lastK        int
}

func (f *fakeAnswer) Retrieve(_ context.Context, _ string, _ int) ([]domain.ScoredChunk, error) {
	return nil, f.err
}

func (f *fakeAnswer) Answer(_ context.Context, question string, k int) (*domain.Answer, error) {
	f.lastQuestion = question
	f.lastK = k
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

// fakeCollection implements driven.Collection for status output.
type fakeCollection struct {
	stats domain.CollectionStats
}

func (f *fakeCollection) Snapshot(_ context.Context) (*domain.Snapshot, error) {
	return domain.NewSnapshot(), nil
}

func (f *fakeCollection) Upsert(_ context.Context, _ []domain.IndexEntry) (int, error) {
	return 0, nil
}

func (f *fakeCollection) Query(_ context.Context, _ string, _ int) ([]domain.ScoredChunk, error) {
	return nil, domain.ErrNotIngested
}

func (f *fakeCollection) MarkTopicIngested(_ context.Context, _, _ string) error { return nil }

func (f *fakeCollection) Stats(_ context.Context) (*domain.CollectionStats, error) {
	stats := f.stats
	return &stats, nil
}

func (f *fakeCollection) Close() error { return nil }

// setupTestServices installs fakes and returns them with a cleanup func.
func setupTestServices() (*fakeIngestion, *fakeAnswer, *fakeCollection, func()) {
	ingest := &fakeIngestion{}
	answer := &fakeAnswer{answer: &domain.Answer{
		Question: "q",
		Text:     "A short answer.",
		Evidence: []domain.Evidence{
			{Title: "alpha", Journal: "J Test", Authors: "Jane Doe", PublicationDate: "2024"},
		},
	}}
	coll := &fakeCollection{stats: domain.CollectionStats{Chunks: 4, Documents: 2, Topics: 1}}

	SetServices(ingest, answer, coll)
	SetDefaultTopics(nil)

	cleanup := func() {
		SetServices(nil, nil, nil)
		SetDefaultTopics(nil)
		rootCmd.SetArgs(nil)
	}
	return ingest, answer, coll, cleanup
}

package domain

// Snapshot is the dedup state read from the collection at the start of an
// ingestion run. It is computed once per run by a full scan; only the
// document-ID set is extended in memory as new articles are stored, so later
// topics in the same run see them. The key and topic sets are re-derived at
// the next run.
//
// Correctness assumes a single writer per collection: a concurrent writer
// would make the snapshot stale, and the store's key-uniqueness constraint
// becomes the last line of defense.
type Snapshot struct {
	// Keys is the set of existing chunk keys.
	Keys map[string]struct{}

	// Topics is the set of topics whose ingestion completed fully.
	// Partially ingested topics (a crashed or failed prior run) are
	// absent and will be retried.
	Topics map[string]struct{}

	// DocumentIDs is the set of PMIDs with at least one chunk stored.
	DocumentIDs map[string]struct{}
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Keys:        make(map[string]struct{}),
		Topics:      make(map[string]struct{}),
		DocumentIDs: make(map[string]struct{}),
	}
}

// HasKey reports whether a chunk key already exists.
func (s *Snapshot) HasKey(key string) bool {
	_, ok := s.Keys[key]
	return ok
}

// HasTopic reports whether a topic was fully ingested.
func (s *Snapshot) HasTopic(topic string) bool {
	_, ok := s.Topics[topic]
	return ok
}

// HasDocument reports whether an article already has chunks stored.
func (s *Snapshot) HasDocument(pmid string) bool {
	_, ok := s.DocumentIDs[pmid]
	return ok
}

// AddDocuments extends the in-memory document-ID set mid-run.
func (s *Snapshot) AddDocuments(pmids []string) {
	for _, id := range pmids {
		s.DocumentIDs[id] = struct{}{}
	}
}

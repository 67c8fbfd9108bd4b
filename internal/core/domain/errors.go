package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstream indicates a network or malformed-response failure from
	// the literature database. Per-document occurrences are recoverable;
	// a failed search aborts only the current topic.
	ErrUpstream = errors.New("upstream fetch failed")

	// ErrStore indicates a collection creation, query, or upsert failure.
	// Not locally recoverable; aborts the current operation.
	ErrStore = errors.New("store operation failed")

	// ErrGeneration indicates a language-model call failure (auth, quota,
	// network). Surfaced to the caller without retry.
	ErrGeneration = errors.New("generation failed")

	// ErrMissingCredentials indicates a required credential or model
	// identifier is absent at startup. Fatal before any network activity.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrNotIngested indicates retrieval was attempted against an empty
	// collection. Ingestion must run first.
	ErrNotIngested = errors.New("no articles ingested")
)

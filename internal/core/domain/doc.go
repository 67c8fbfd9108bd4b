// Package domain defines the core business entities for litqa.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Article: An abstract fetched from the literature database
//   - IndexEntry: A chunk of article text as stored in the index
//   - Snapshot: Dedup state read from the index at the start of a run
//   - Answer: A generated answer with its supporting evidence
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

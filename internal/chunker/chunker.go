// Package chunker provides fixed-size word-window text chunking.
package chunker

import (
	"fmt"
	"strings"

	"github.com/medlit-labs/litqa-cli/internal/core/domain"
)

// DefaultWindowWords is the default number of words per chunk.
const DefaultWindowWords = 150

// DefaultOverlapWords is the default number of overlapping words.
const DefaultOverlapWords = 30

// WordChunker splits text into overlapping word windows.
// Splitting is deterministic: the same input always yields the same chunk
// sequence, which keeps chunk indices stable across runs.
type WordChunker struct {
	windowWords  int
	overlapWords int
}

// New creates a word chunker. The overlap must be smaller than the window,
// otherwise the window could never advance.
func New(windowWords, overlapWords int) (*WordChunker, error) {
	if windowWords <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %d", domain.ErrInvalidInput, windowWords)
	}
	if overlapWords < 0 {
		return nil, fmt.Errorf("%w: overlap must be non-negative, got %d", domain.ErrInvalidInput, overlapWords)
	}
	if overlapWords >= windowWords {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than window %d", domain.ErrInvalidInput, overlapWords, windowWords)
	}
	return &WordChunker{windowWords: windowWords, overlapWords: overlapWords}, nil
}

// WindowWords returns the configured window size.
func (c *WordChunker) WindowWords() int {
	return c.windowWords
}

// OverlapWords returns the configured overlap.
func (c *WordChunker) OverlapWords() int {
	return c.overlapWords
}

// Split breaks text into whitespace-delimited words and emits windows of
// windowWords words, each advancing by windowWords-overlapWords. The final
// window is truncated to the remaining words and always ends at the last
// word. Empty or whitespace-only input produces zero chunks.
func (c *WordChunker) Split(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := c.windowWords - c.overlapWords
	chunks := make([]string, 0, (len(words)+step-1)/step)

	start := 0
	for start < len(words) {
		end := start + c.windowWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
		start += step
	}

	return chunks
}

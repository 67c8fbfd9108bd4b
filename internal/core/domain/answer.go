package domain

// Evidence identifies an article backing an answer.
type Evidence struct {
	// Title is the article title.
	Title string `json:"title"`

	// Journal is the journal title.
	Journal string `json:"journal"`

	// Authors is the comma-joined author list.
	Authors string `json:"authors"`

	// PublicationDate is the publication year.
	PublicationDate string `json:"publication_date"`
}

// Answer is the result of a question-answering request.
type Answer struct {
	// Question is the question as asked.
	Question string `json:"question"`

	// Text is the model's response, returned unmodified.
	Text string `json:"answer"`

	// Evidence lists the supporting articles in rank order,
	// deduplicated by title.
	Evidence []Evidence `json:"evidence"`
}

// DeduplicateEvidence collapses retrieved chunks to one Evidence entry per
// article title, preserving rank order.
func DeduplicateEvidence(chunks []ScoredChunk) []Evidence {
	seen := make(map[string]struct{}, len(chunks))
	evidence := make([]Evidence, 0, len(chunks))
	for _, c := range chunks {
		if _, ok := seen[c.Metadata.Title]; ok {
			continue
		}
		seen[c.Metadata.Title] = struct{}{}
		evidence = append(evidence, Evidence{
			Title:           c.Metadata.Title,
			Journal:         c.Metadata.Journal,
			Authors:         c.Metadata.Authors,
			PublicationDate: c.Metadata.PublicationDate,
		})
	}
	return evidence
}

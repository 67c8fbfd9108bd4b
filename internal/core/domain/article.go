package domain

import "strings"

// Default placeholders applied at the literature client boundary when the
// upstream record is missing a field. Downstream code never branches on
// field presence.
const (
	DefaultTitle    = "No Title"
	DefaultAbstract = "No Abstract"
	DefaultJournal  = "Unknown Journal"
	DefaultAuthors  = "No Authors"
	DefaultYear     = "Unknown Year"

	// DefaultSectionLabel is used for unlabelled abstract sections.
	DefaultSectionLabel = "SUMMARY"
)

// AbstractSection is a labelled portion of a structured abstract
// (e.g. BACKGROUND, METHODS, RESULTS). Order is significant.
type AbstractSection struct {
	// Label is the section heading, upper-cased by convention upstream.
	Label string

	// Text is the section body.
	Text string
}

// Article represents a single abstract fetched from the literature database.
// Immutable once fetched; every field is populated (placeholders stand in
// for missing upstream data).
type Article struct {
	// PMID is the stable upstream identifier.
	PMID string

	// Title is the article title.
	Title string

	// Abstract holds the structured abstract sections in document order.
	// Unstructured abstracts appear as a single SUMMARY section.
	Abstract []AbstractSection

	// Journal is the journal title.
	Journal string

	// Authors is the comma-joined "First Last" author list.
	Authors string

	// PublicationDate is the publication year, possibly partial.
	PublicationDate string
}

// FlattenAbstract joins the structured abstract into a single string of
// "LABEL: text" pairs separated by spaces.
func (a *Article) FlattenAbstract() string {
	parts := make([]string, 0, len(a.Abstract))
	for _, s := range a.Abstract {
		parts = append(parts, s.Label+": "+s.Text)
	}
	return strings.Join(parts, " ")
}

// ChunkSource returns the text that is split into chunks: the title
// followed by the flattened abstract.
func (a *Article) ChunkSource() string {
	return a.Title + " " + a.FlattenAbstract()
}

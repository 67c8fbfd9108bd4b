package pubmed

import (
	"encoding/xml"
	"strings"

	"github.com/medlit-labs/litqa-cli/internal/core/domain"
)

// esearchResult is the esearch.fcgi response envelope.
type esearchResult struct {
	XMLName xml.Name `xml:"eSearchResult"`
	Count   int      `xml:"Count"`
	IDs     []string `xml:"IdList>Id"`
}

// efetchResult is the efetch.fcgi response envelope.
type efetchResult struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

// pubmedArticle mirrors the subset of the PubmedArticle record the
// pipeline consumes.
type pubmedArticle struct {
	PMID     string         `xml:"MedlineCitation>PMID"`
	Title    string         `xml:"MedlineCitation>Article>ArticleTitle"`
	Abstract []abstractText `xml:"MedlineCitation>Article>Abstract>AbstractText"`
	Journal  string         `xml:"MedlineCitation>Article>Journal>Title"`
	Year     string         `xml:"MedlineCitation>Article>Journal>JournalIssue>PubDate>Year"`
	Authors  []author       `xml:"MedlineCitation>Article>AuthorList>Author"`
}

// abstractText is one section of a structured abstract.
type abstractText struct {
	Label string `xml:"Label,attr"`
	Text  string `xml:",chardata"`
}

// author is a single author record.
type author struct {
	ForeName string `xml:"ForeName"`
	LastName string `xml:"LastName"`
}

// toArticle converts an upstream record into a domain Article, applying
// the documented placeholder for every absent field.
func (r pubmedArticle) toArticle() domain.Article {
	a := domain.Article{
		PMID:            strings.TrimSpace(r.PMID),
		Title:           strings.TrimSpace(r.Title),
		Journal:         strings.TrimSpace(r.Journal),
		PublicationDate: strings.TrimSpace(r.Year),
	}

	if a.Title == "" {
		a.Title = domain.DefaultTitle
	}
	if a.Journal == "" {
		a.Journal = domain.DefaultJournal
	}
	if a.PublicationDate == "" {
		a.PublicationDate = domain.DefaultYear
	}

	for _, s := range r.Abstract {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		label := strings.TrimSpace(s.Label)
		if label == "" {
			label = domain.DefaultSectionLabel
		}
		a.Abstract = append(a.Abstract, domain.AbstractSection{Label: label, Text: text})
	}
	if len(a.Abstract) == 0 {
		a.Abstract = []domain.AbstractSection{{Label: domain.DefaultSectionLabel, Text: domain.DefaultAbstract}}
	}

	var names []string
	for _, au := range r.Authors {
		fore := strings.TrimSpace(au.ForeName)
		last := strings.TrimSpace(au.LastName)
		if fore == "" || last == "" {
			continue
		}
		names = append(names, fore+" "+last)
	}
	if len(names) == 0 {
		a.Authors = domain.DefaultAuthors
	} else {
		a.Authors = strings.Join(names, ", ")
	}

	return a
}

// Package vectorindex provides nearest-neighbor retrieval over the site's
// indexed content (resume sections, projects, blog posts).
package vectorindex

import "context"

// Metadata carries the document fields stored alongside each embedding.
// Optional fields are empty strings when absent.
type Metadata struct {
	Text         string `json:"text"`
	ContentType  string `json:"content_type"`
	Title        string `json:"title,omitempty"`
	Slug         string `json:"slug,omitempty"`
	Company      string `json:"company,omitempty"`
	ProjectTitle string `json:"project_title,omitempty"`
}

// Label returns the best human-readable name for the document,
// in precedence order: title, then company, then project title.
func (m Metadata) Label() string {
	switch {
	case m.Title != "":
		return m.Title
	case m.Company != "":
		return m.Company
	case m.ProjectTitle != "":
		return m.ProjectTitle
	}
	return ""
}

// Match is a single nearest-neighbor result. Score is cosine similarity in [0,1].
type Match struct {
	Score    float64  `json:"score"`
	Metadata Metadata `json:"metadata"`
}

// Document is an indexed content chunk, written by the indexer.
type Document struct {
	ID          string
	Text        string
	Embedding   []float32
	ContentType string
	Title       string
	Slug        string
	Company     string
	ProjectTitle string
	ContentHash string
}

// Index is the nearest-neighbor store consumed by the chat pipeline and
// populated by the indexer. contentType == "" means no filter.
type Index interface {
	Query(ctx context.Context, embedding []float32, topK int, contentType string) ([]Match, error)
	Upsert(ctx context.Context, docs []Document) error
}

package chat

import (
	"fmt"
	"strings"

	"github.com/karthikcsq/personalsite/internal/vectorindex"
)

// Similarity thresholds for keeping a match. Overview-style queries retrieve
// semantically diffuse content that still legitimately grounds an answer, so
// they get the lower bar.
const (
	broadThreshold  = 0.65
	strictThreshold = 0.75
)

// contextSeparator visually divides independently-retrieved chunks so the
// model can attribute claims to sources.
const contextSeparator = "\n\n---\n\n"

// Context is the assembled grounding material for one request.
type Context struct {
	// Text is the labeled, separator-joined context block for the prompt.
	Text string
	// HasRelevant is true when at least one match cleared the threshold and
	// the kept text is non-empty.
	HasRelevant bool
	// Citations lists blog posts found anywhere in the match set, threshold
	// or not, that carry both a title and a slug.
	Citations []Citation
	// Kept is the number of matches that cleared the threshold.
	Kept int
}

// SelectThreshold picks the similarity cutoff for a query. Broad queries —
// blog or project intent, or any query containing "about" — use the lower
// threshold.
func SelectThreshold(intent Intent, query string) float64 {
	if intent == IntentBlogPost || intent == IntentProject ||
		strings.Contains(strings.ToLower(query), "about") {
		return broadThreshold
	}
	return strictThreshold
}

// AssembleContext filters matches by the selected threshold and renders the
// survivors into one labeled text block. Citations are scanned over the full
// unfiltered match set: a blog match below the threshold is still cheap to
// offer as a link.
func AssembleContext(matches []vectorindex.Match, intent Intent, query string) Context {
	threshold := SelectThreshold(intent, query)

	var blocks []string
	for i, m := range matches {
		if m.Score <= threshold || strings.TrimSpace(m.Metadata.Text) == "" {
			continue
		}
		label := fmt.Sprintf("Source %d [%s, relevance: %.3f]", i+1, m.Metadata.ContentType, m.Score)
		if name := m.Metadata.Label(); name != "" {
			label += " - " + name
		}
		blocks = append(blocks, label+"\n"+m.Metadata.Text)
	}

	var citations []Citation
	for _, m := range matches {
		if m.Metadata.ContentType == string(IntentBlogPost) &&
			m.Metadata.Title != "" && m.Metadata.Slug != "" {
			citations = append(citations, Citation{Title: m.Metadata.Title, Slug: m.Metadata.Slug})
		}
	}

	text := strings.Join(blocks, contextSeparator)
	return Context{
		Text:        text,
		HasRelevant: len(blocks) > 0 && strings.TrimSpace(text) != "",
		Citations:   citations,
		Kept:        len(blocks),
	}
}

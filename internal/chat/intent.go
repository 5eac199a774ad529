package chat

import "strings"

// Intent is the content-type category inferred from a query, used as a
// retrieval filter. IntentNone means no filter.
type Intent string

const (
	IntentNone         Intent = ""
	IntentBlogPost     Intent = "blog_post"
	IntentProject      Intent = "project"
	IntentProfessional Intent = "professional"
	IntentAcademic     Intent = "academic"
	IntentTechnical    Intent = "technical"
)

// intentKeywords is checked in order; the first category with a matching
// keyword wins. Blog keywords come first so "blog about my projects"
// classifies as blog_post, not project.
var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentBlogPost, []string{"blog", "wrote about", "article", "post", "written", "opinion on", "thoughts on", "essay"}},
	{IntentProject, []string{"project", "built", "developed", "created", "work on"}},
	{IntentProfessional, []string{"experience", "job", "work", "company", "employer"}},
	{IntentAcademic, []string{"education", "school", "university", "degree", "study", "studied"}},
	{IntentTechnical, []string{"skill", "technology", "technologies", "programming", "language"}},
}

// ClassifyIntent maps a free-text query to a content-type category by
// case-insensitive substring matching. Pure and deterministic.
func ClassifyIntent(query string) Intent {
	lower := strings.ToLower(query)
	for _, group := range intentKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.intent
			}
		}
	}
	return IntentNone
}

package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testPersona = Persona{
	Name:    "Karthik Thyagarajan",
	SiteURL: "https://www.karthikthyagarajan.com",
}

func TestBuildSystemPrompt_GroundedBranch(t *testing.T) {
	rc := Context{
		Text:        "Source 1 [professional, relevance: 0.810]\nworked at a research lab",
		HasRelevant: true,
	}
	prompt := BuildSystemPrompt(testPersona, rc)

	assert.Contains(t, prompt, "third person")
	assert.Contains(t, prompt, "never fabricate", "grounding rule must be present")
	assert.Contains(t, prompt, rc.Text)
	assert.Contains(t, prompt, "Karthik Thyagarajan")
	assert.NotContains(t, prompt, "isn't specific information")
}

func TestBuildSystemPrompt_FallbackBranch(t *testing.T) {
	prompt := BuildSystemPrompt(testPersona, Context{HasRelevant: false})

	assert.Contains(t, prompt, "isn't specific information")
	assert.Contains(t, prompt, "third person")
	// Fixed topic suggestions
	assert.Contains(t, prompt, "work experience and projects")
	assert.Contains(t, prompt, "education and research interests")
	assert.NotContains(t, prompt, "Context about")
}

func TestBuildSystemPrompt_CitationInstructions(t *testing.T) {
	rc := Context{
		Text:        "Source 1 [blog_post, relevance: 0.700] - X\nblog body",
		HasRelevant: true,
		Citations:   []Citation{{Title: "X", Slug: "x"}, {Title: "Why Go", Slug: "why-go"}},
	}
	prompt := BuildSystemPrompt(testPersona, rc)

	assert.Contains(t, prompt, "https://www.karthikthyagarajan.com/blog/[slug]")
	assert.Contains(t, prompt, `"X" (slug: x)`)
	assert.Contains(t, prompt, `"Why Go" (slug: why-go)`)
}

func TestBuildSystemPrompt_NoCitationBlockWithoutCitations(t *testing.T) {
	rc := Context{Text: "Source 1 [professional, relevance: 0.800]\nbody", HasRelevant: true}
	prompt := BuildSystemPrompt(testPersona, rc)
	assert.NotContains(t, prompt, "Available blog posts")
}

func TestBuildSystemPrompt_FallbackIgnoresCitations(t *testing.T) {
	// Citations without relevant context still produce the fallback prompt.
	rc := Context{HasRelevant: false, Citations: []Citation{{Title: "X", Slug: "x"}}}
	prompt := BuildSystemPrompt(testPersona, rc)
	assert.Contains(t, prompt, "isn't specific information")
	assert.NotContains(t, prompt, "Available blog posts")
}

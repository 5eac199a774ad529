package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTruthYAML = `name: "Karthik Thyagarajan"
contact:
  - "kt@example.com"
links:
  - label: "GitHub"
    url: "https://github.com/karthikcsq"
education:
  - degree: "BS Computer Science"
    institution: "Purdue University"
    location: "West Lafayette, IN"
    gpa: "3.9"
    dates: "2022 - 2026"
skills:
  - category: "Languages"
    bullets: ["Go", "Python", "TypeScript"]
experience:
  - role: "Research Engineer"
    company: "Peraton Labs"
    location: "Basking Ridge, NJ"
    start_date: "May 2024"
    end_date: "Aug 2024"
    work_type: "Internship"
    bullets:
      - "Analyzed wireless protocols"
projects:
  - title: "Personal Site"
    tools: "Go, Postgres"
    date: "2025"
    link: "https://example.com"
    bullets:
      - "RAG-backed chat about my background"
`

func writeTruthFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "truth.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTruthYAML), 0o644))
	return path
}

func docsByType(docs []sourceDoc) map[string][]sourceDoc {
	m := make(map[string][]sourceDoc)
	for _, d := range docs {
		m[d.ContentType] = append(m[d.ContentType], d)
	}
	return m
}

func TestDocumentsFromTruthYAML(t *testing.T) {
	docs, err := documentsFromTruthYAML(writeTruthFile(t))
	require.NoError(t, err)
	require.Len(t, docs, 5)

	byType := docsByType(docs)

	contact := byType["contact"][0]
	assert.Equal(t, "yaml:contact", contact.Key)
	assert.Contains(t, contact.Text, "Karthik Thyagarajan")
	assert.Contains(t, contact.Text, "kt@example.com")
	assert.Contains(t, contact.Text, "GitHub: https://github.com/karthikcsq")

	academic := byType["academic"][0]
	assert.Contains(t, academic.Text, "BS Computer Science at Purdue University")
	assert.Contains(t, academic.Text, "GPA: 3.9")

	technical := byType["technical"][0]
	assert.Equal(t, "yaml:skills:Languages", technical.Key)
	assert.Contains(t, technical.Text, "Go, Python, TypeScript")

	professional := byType["professional"][0]
	assert.Equal(t, "Peraton Labs", professional.Company)
	assert.Contains(t, professional.Text, "Research Engineer at Peraton Labs")
	assert.Contains(t, professional.Text, "Duration: May 2024 - Aug 2024")
	assert.Contains(t, professional.Text, "- Analyzed wireless protocols")

	project := byType["project"][0]
	assert.Equal(t, "Personal Site", project.ProjectTitle)
	assert.Contains(t, project.Text, "Technologies: Go, Postgres")
}

func TestDocumentsFromTruthYAML_MissingFile(t *testing.T) {
	_, err := documentsFromTruthYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDocumentsFromBlogDir(t *testing.T) {
	dir := t.TempDir()
	post := `---
title: "Vectors Everywhere"
date: "2025-02-01"
summary: "Embedding all the things."
---

Some text before the image. <img src="/pic.png" alt="pic"> And after.

![alt text](https://example.com/other.png)

Closing paragraph.
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vectors-everywhere.md"), []byte(post), 0o644))

	docs, err := documentsFromBlogDir(dir)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "blog:vectors-everywhere:0", doc.Key)
	assert.Equal(t, "blog_post", doc.ContentType)
	assert.Equal(t, "Vectors Everywhere", doc.Title)
	assert.Equal(t, "vectors-everywhere", doc.Slug)

	assert.Contains(t, doc.Text, "Blog Post: Vectors Everywhere")
	assert.Contains(t, doc.Text, "Summary: Embedding all the things.")
	assert.Contains(t, doc.Text, "Closing paragraph.")
	// Images are stripped before embedding.
	assert.NotContains(t, doc.Text, "<img")
	assert.NotContains(t, doc.Text, "example.com/other.png")
}

func TestDocumentsFromBlogDir_LongPostIsChunked(t *testing.T) {
	dir := t.TempDir()
	var body string
	for i := 0; i < 10; i++ {
		body += "This paragraph pads the post well past a single chunk of searchable text for the index.\n\n"
	}
	post := "---\ntitle: Long\ndate: \"2025-01-01\"\nsummary: s\n---\n\n" + body
	require.NoError(t, os.WriteFile(filepath.Join(dir, "long.md"), []byte(post), 0o644))

	docs, err := documentsFromBlogDir(dir)
	require.NoError(t, err)
	require.Greater(t, len(docs), 1)

	for _, doc := range docs {
		assert.Equal(t, "blog_post", doc.ContentType)
		assert.Equal(t, "long", doc.Slug)
		assert.Contains(t, doc.Key, "blog:long:")
		assert.LessOrEqual(t, len(doc.Text), defaultChunkSize)
	}
}

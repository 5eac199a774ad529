// Package content serves the static site content: markdown blog posts and
// the YAML-backed work history.
package content

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

// PostMeta is the listing view of a blog post.
type PostMeta struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Date    string `json:"date"`
	Summary string `json:"summary"`
}

// Post is a fully rendered blog post.
type Post struct {
	PostMeta
	ContentHTML string `json:"contentHtml"`
}

type frontmatter struct {
	Title   string `yaml:"title"`
	Date    string `yaml:"date"`
	Summary string `yaml:"summary"`
}

// BlogStore reads markdown posts with YAML frontmatter from a directory.
// The filename (minus .md) is the slug.
type BlogStore struct {
	dir string
	md  goldmark.Markdown
}

func NewBlogStore(dir string) *BlogStore {
	return &BlogStore{
		dir: dir,
		// Posts embed raw HTML (images, embeds), so rendering is unsanitized.
		md: goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe())),
	}
}

// List returns metadata for every post, newest first.
func (s *BlogStore) List() ([]PostMeta, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading blog dir: %w", err)
	}

	var posts []PostMeta
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), ".md")
		raw, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading post %s: %w", slug, err)
		}
		fm, _, err := splitFrontmatter(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing frontmatter of %s: %w", slug, err)
		}
		posts = append(posts, PostMeta{Slug: slug, Title: fm.Title, Date: fm.Date, Summary: fm.Summary})
	}

	sort.Slice(posts, func(i, j int) bool {
		return parsePostDate(posts[i].Date).After(parsePostDate(posts[j].Date))
	})
	return posts, nil
}

// Get renders one post by slug. Returns os.ErrNotExist-wrapped error for
// unknown slugs.
func (s *BlogStore) Get(slug string) (*Post, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, slug+".md"))
	if err != nil {
		return nil, fmt.Errorf("reading post %s: %w", slug, err)
	}

	fm, body, err := splitFrontmatter(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing frontmatter of %s: %w", slug, err)
	}

	var buf bytes.Buffer
	if err := s.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("rendering post %s: %w", slug, err)
	}

	return &Post{
		PostMeta:    PostMeta{Slug: slug, Title: fm.Title, Date: fm.Date, Summary: fm.Summary},
		ContentHTML: buf.String(),
	}, nil
}

// splitFrontmatter separates the leading "---" delimited YAML block from the
// markdown body.
func splitFrontmatter(raw []byte) (frontmatter, []byte, error) {
	var fm frontmatter

	content := string(raw)
	if !strings.HasPrefix(content, "---") {
		return fm, raw, nil
	}
	parts := strings.SplitN(content, "---", 3)
	if len(parts) < 3 {
		return fm, nil, fmt.Errorf("unterminated frontmatter block")
	}

	if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
		return fm, nil, err
	}
	return fm, []byte(strings.TrimSpace(parts[2])), nil
}

var postDateLayouts = []string{"2006-01-02", time.RFC3339, "January 2, 2006", "Jan 2, 2006"}

func parsePostDate(s string) time.Time {
	for _, layout := range postDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

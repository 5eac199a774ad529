// Package ingest builds the vector index from the site's source-of-truth
// content: the resume YAML and the blog posts.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/karthikcsq/personalsite/internal/content"
	"github.com/karthikcsq/personalsite/internal/vectorindex"
)

type truthFile struct {
	Name    string   `yaml:"name"`
	Contact []string `yaml:"contact"`
	Links   []struct {
		Label string `yaml:"label"`
		URL   string `yaml:"url"`
	} `yaml:"links"`
	Education []struct {
		Degree      string `yaml:"degree"`
		Institution string `yaml:"institution"`
		Location    string `yaml:"location"`
		GPA         string `yaml:"gpa"`
		Dates       string `yaml:"dates"`
	} `yaml:"education"`
	Skills []struct {
		Category string   `yaml:"category"`
		Bullets  []string `yaml:"bullets"`
	} `yaml:"skills"`
	Experience []content.JobEntry `yaml:"experience"`
	Projects   []struct {
		Title   string   `yaml:"title"`
		Tools   string   `yaml:"tools"`
		Date    string   `yaml:"date"`
		Link    string   `yaml:"link"`
		Bullets []string `yaml:"bullets"`
	} `yaml:"projects"`
}

// sourceDoc is a document before embedding. Key is stable across runs so
// re-indexing updates rather than duplicates.
type sourceDoc struct {
	Key          string
	Text         string
	ContentType  string
	Title        string
	Slug         string
	Company      string
	ProjectTitle string
}

// documentsFromTruthYAML renders each resume section into searchable text
// tagged with its content type.
func documentsFromTruthYAML(path string) ([]sourceDoc, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading truth file: %w", err)
	}
	var tf truthFile
	if err := yaml.Unmarshal(raw, &tf); err != nil {
		return nil, fmt.Errorf("parsing truth file: %w", err)
	}

	var docs []sourceDoc

	if tf.Name != "" {
		text := "Name: " + tf.Name
		if len(tf.Contact) > 0 {
			text += "\nContact: " + strings.Join(tf.Contact, ", ")
		}
		if len(tf.Links) > 0 {
			var links []string
			for _, l := range tf.Links {
				links = append(links, l.Label+": "+l.URL)
			}
			text += "\nLinks: " + strings.Join(links, ", ")
		}
		docs = append(docs, sourceDoc{Key: "yaml:contact", Text: text, ContentType: "contact"})
	}

	for i, edu := range tf.Education {
		text := fmt.Sprintf("Education: %s at %s (%s)", edu.Degree, edu.Institution, edu.Location)
		if edu.GPA != "" {
			text += "\nGPA: " + edu.GPA
		}
		if edu.Dates != "" {
			text += "\nDates: " + edu.Dates
		}
		docs = append(docs, sourceDoc{
			Key:  fmt.Sprintf("yaml:education:%d", i),
			Text: text, ContentType: "academic",
		})
	}

	for _, cat := range tf.Skills {
		docs = append(docs, sourceDoc{
			Key:  "yaml:skills:" + cat.Category,
			Text: fmt.Sprintf("Skills - %s: %s", cat.Category, strings.Join(cat.Bullets, ", ")),
			ContentType: "technical",
		})
	}

	for i, exp := range tf.Experience {
		text := fmt.Sprintf("Experience: %s at %s (%s)", exp.Role, exp.Company, exp.Location)
		if exp.StartDate != "" && exp.EndDate != "" {
			text += fmt.Sprintf("\nDuration: %s - %s", exp.StartDate, exp.EndDate)
		}
		if exp.WorkType != "" {
			text += "\nType: " + exp.WorkType
		}
		if len(exp.Bullets) > 0 {
			text += "\nResponsibilities:\n- " + strings.Join(exp.Bullets, "\n- ")
		}
		docs = append(docs, sourceDoc{
			Key:  fmt.Sprintf("yaml:experience:%d", i),
			Text: text, ContentType: "professional", Company: exp.Company,
		})
	}

	for i, prj := range tf.Projects {
		text := "Project: " + prj.Title
		if prj.Tools != "" {
			text += "\nTechnologies: " + prj.Tools
		}
		if prj.Date != "" {
			text += "\nDate: " + prj.Date
		}
		if prj.Link != "" {
			text += "\nLink: " + prj.Link
		}
		if len(prj.Bullets) > 0 {
			text += "\nDescription:\n- " + strings.Join(prj.Bullets, "\n- ")
		}
		docs = append(docs, sourceDoc{
			Key:  fmt.Sprintf("yaml:project:%d", i),
			Text: text, ContentType: "project", ProjectTitle: prj.Title,
		})
	}

	return docs, nil
}

var (
	htmlImageRe     = regexp.MustCompile(`<img[^>]+>`)
	markdownImageRe = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
)

// documentsFromBlogDir turns each post into one or more chunked documents.
// Images contribute nothing to an embedding and are stripped first.
func documentsFromBlogDir(dir string) ([]sourceDoc, error) {
	store := content.NewBlogStore(dir)
	posts, err := store.List()
	if err != nil {
		return nil, err
	}

	var docs []sourceDoc
	for _, meta := range posts {
		raw, err := os.ReadFile(filepath.Join(dir, meta.Slug+".md"))
		if err != nil {
			return nil, fmt.Errorf("reading post %s: %w", meta.Slug, err)
		}
		body := stripFrontmatter(string(raw))
		body = htmlImageRe.ReplaceAllString(body, "")
		body = markdownImageRe.ReplaceAllString(body, "")

		searchable := fmt.Sprintf("Blog Post: %s\nDate: %s\nSummary: %s\n\n%s",
			meta.Title, meta.Date, meta.Summary, strings.TrimSpace(body))

		for i, chunk := range SplitText(searchable, defaultChunkSize, defaultChunkOverlap) {
			docs = append(docs, sourceDoc{
				Key:  fmt.Sprintf("blog:%s:%d", meta.Slug, i),
				Text: chunk, ContentType: "blog_post",
				Title: meta.Title, Slug: meta.Slug,
			})
		}
	}
	return docs, nil
}

func stripFrontmatter(s string) string {
	if !strings.HasPrefix(s, "---") {
		return s
	}
	parts := strings.SplitN(s, "---", 3)
	if len(parts) < 3 {
		return s
	}
	return parts[2]
}

func (d sourceDoc) toDocument() vectorindex.Document {
	return vectorindex.Document{
		Text:         d.Text,
		ContentType:  d.ContentType,
		Title:        d.Title,
		Slug:         d.Slug,
		Company:      d.Company,
		ProjectTitle: d.ProjectTitle,
	}
}

// Package gallery lists photo albums for the gallery page. Albums are
// subdirectories of a local root whose files are served from a public base
// URL (a CDN or object-store bucket fronting the same layout).
package gallery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// Service lists albums and their image URLs.
type Service struct {
	root    string
	baseURL string
}

func NewService(root, baseURL string) *Service {
	return &Service{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Albums returns every album name mapped to its ordered image URLs.
func (s *Service) Albums() (map[string][]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("reading albums root: %w", err)
	}

	albums := make(map[string][]string)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		images, err := s.albumImages(entry.Name())
		if err != nil {
			return nil, err
		}
		albums[entry.Name()] = images
	}
	return albums, nil
}

func (s *Service) albumImages(album string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, album))
	if err != nil {
		return nil, fmt.Errorf("reading album %s: %w", album, err)
	}

	var urls []string
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		urls = append(urls, s.baseURL+"/"+album+"/"+entry.Name())
	}
	sort.Strings(urls)
	return urls, nil
}

package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/google/uuid"

	"github.com/karthikcsq/personalsite/internal/chat"
	"github.com/karthikcsq/personalsite/internal/vectorindex"
)

// Store is the index surface the ingester needs: writes plus the stored
// hashes used to skip unchanged content.
type Store interface {
	Upsert(ctx context.Context, docs []vectorindex.Document) error
	HashByID(ctx context.Context) (map[string]string, error)
}

// Stats summarizes one indexing run.
type Stats struct {
	Total   int
	Indexed int
	Skipped int
}

// Service embeds site content and writes it to the vector index.
type Service struct {
	embedder  chat.Embedder
	store     Store
	truthPath string
	blogDir   string
}

func NewService(embedder chat.Embedder, store Store, truthPath, blogDir string) *Service {
	return &Service{embedder: embedder, store: store, truthPath: truthPath, blogDir: blogDir}
}

// Run collects, deduplicates, embeds, and upserts all site documents.
// Unchanged documents (same content hash) are skipped without an embedding
// call.
func (s *Service) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	docs, err := documentsFromTruthYAML(s.truthPath)
	if err != nil {
		return stats, err
	}
	if blogDocs, err := documentsFromBlogDir(s.blogDir); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return stats, err
		}
		slog.Warn("blog directory missing, indexing resume content only", "dir", s.blogDir)
	} else {
		docs = append(docs, blogDocs...)
	}
	stats.Total = len(docs)

	existing, err := s.store.HashByID(ctx)
	if err != nil {
		return stats, fmt.Errorf("loading existing hashes: %w", err)
	}

	var batch []vectorindex.Document
	for _, src := range docs {
		id := documentID(src.Key)
		hash := contentHash(src.Text)
		if existing[id] == hash {
			stats.Skipped++
			continue
		}

		embedding, err := s.embedder.Embed(ctx, src.Text)
		if err != nil {
			return stats, fmt.Errorf("embedding document %s: %w", src.Key, err)
		}

		doc := src.toDocument()
		doc.ID = id
		doc.Embedding = embedding
		doc.ContentHash = hash
		batch = append(batch, doc)
	}

	if len(batch) > 0 {
		if err := s.store.Upsert(ctx, batch); err != nil {
			return stats, err
		}
	}
	stats.Indexed = len(batch)

	slog.Info("indexing complete",
		"total", stats.Total, "indexed", stats.Indexed, "skipped", stats.Skipped)
	return stats, nil
}

// documentID derives a stable UUID from the document key so repeated runs
// update in place.
func documentID(key string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("personalsite:"+key)).String()
}

func contentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

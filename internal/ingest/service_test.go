package ingest

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karthikcsq/personalsite/internal/vectorindex"
)

type fakeEmbedder struct {
	calls int
	err   error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2}, nil
}

type fakeStore struct {
	hashes   map[string]string
	upserted []vectorindex.Document
	hashErr  error
}

func (f *fakeStore) Upsert(ctx context.Context, docs []vectorindex.Document) error {
	f.upserted = append(f.upserted, docs...)
	return nil
}

func (f *fakeStore) HashByID(ctx context.Context) (map[string]string, error) {
	if f.hashErr != nil {
		return nil, f.hashErr
	}
	if f.hashes == nil {
		return map[string]string{}, nil
	}
	return f.hashes, nil
}

func TestRun_IndexesEverythingFirstTime(t *testing.T) {
	truth := writeTruthFile(t)
	embedder := &fakeEmbedder{}
	store := &fakeStore{}
	// Blog dir missing is tolerated; only resume docs are indexed.
	svc := NewService(embedder, store, truth, filepath.Join(t.TempDir(), "no-blog"))

	stats, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 5, stats.Indexed)
	assert.Zero(t, stats.Skipped)
	assert.Equal(t, 5, embedder.calls)
	require.Len(t, store.upserted, 5)

	for _, doc := range store.upserted {
		assert.NotEmpty(t, doc.ID)
		assert.NotEmpty(t, doc.Embedding)
		assert.NotEmpty(t, doc.ContentHash)
	}
}

func TestRun_SkipsUnchangedDocuments(t *testing.T) {
	truth := writeTruthFile(t)
	first := &fakeStore{}
	_, err := NewService(&fakeEmbedder{}, first, truth, filepath.Join(t.TempDir(), "no-blog")).Run(context.Background())
	require.NoError(t, err)

	// Second run against the hashes the first run produced.
	hashes := make(map[string]string, len(first.upserted))
	for _, doc := range first.upserted {
		hashes[doc.ID] = doc.ContentHash
	}
	embedder := &fakeEmbedder{}
	second := &fakeStore{hashes: hashes}

	stats, err := NewService(embedder, second, truth, filepath.Join(t.TempDir(), "no-blog")).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Total)
	assert.Zero(t, stats.Indexed)
	assert.Equal(t, 5, stats.Skipped)
	// Skipped documents never hit the embedder.
	assert.Zero(t, embedder.calls)
	assert.Empty(t, second.upserted)
}

func TestRun_EmbedderFailureAborts(t *testing.T) {
	svc := NewService(
		&fakeEmbedder{err: errors.New("quota exceeded")},
		&fakeStore{},
		writeTruthFile(t),
		filepath.Join(t.TempDir(), "no-blog"),
	)
	_, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding document")
}

func TestRun_HashLookupFailureAborts(t *testing.T) {
	svc := NewService(
		&fakeEmbedder{},
		&fakeStore{hashErr: errors.New("db down")},
		writeTruthFile(t),
		filepath.Join(t.TempDir(), "no-blog"),
	)
	_, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading existing hashes")
}

func TestDocumentID_StableAcrossRuns(t *testing.T) {
	assert.Equal(t, documentID("yaml:contact"), documentID("yaml:contact"))
	assert.NotEqual(t, documentID("yaml:contact"), documentID("yaml:education:0"))
}

package vectorindex

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
)

// PostgresIndex implements Index on the site_documents table using pgx + pgvector.
type PostgresIndex struct {
	pool *pgxpool.Pool
}

// NewPostgresIndex creates a new pgvector-backed index.
func NewPostgresIndex(pool *pgxpool.Pool) *PostgresIndex {
	return &PostgresIndex{pool: pool}
}

func (idx *PostgresIndex) Query(ctx context.Context, embedding []float32, topK int, contentType string) ([]Match, error) {
	vec := pgvector.NewVector(embedding)

	var rows pgx.Rows
	var err error
	if contentType != "" {
		rows, err = idx.pool.Query(ctx,
			`SELECT content, content_type, title, slug, company, project_title,
			        1 - (embedding <=> $1) AS score
			 FROM site_documents
			 WHERE content_type = $2 AND embedding IS NOT NULL
			 ORDER BY embedding <=> $1
			 LIMIT $3`,
			vec, contentType, topK,
		)
	} else {
		rows, err = idx.pool.Query(ctx,
			`SELECT content, content_type, title, slug, company, project_title,
			        1 - (embedding <=> $1) AS score
			 FROM site_documents
			 WHERE embedding IS NOT NULL
			 ORDER BY embedding <=> $1
			 LIMIT $2`,
			vec, topK,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("querying site documents: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(
			&m.Metadata.Text, &m.Metadata.ContentType, &m.Metadata.Title,
			&m.Metadata.Slug, &m.Metadata.Company, &m.Metadata.ProjectTitle,
			&m.Score,
		); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (idx *PostgresIndex) Upsert(ctx context.Context, docs []Document) error {
	for _, doc := range docs {
		vec := pgvector.NewVector(doc.Embedding)
		_, err := idx.pool.Exec(ctx,
			`INSERT INTO site_documents
			    (id, content, embedding, content_type, title, slug, company, project_title, content_hash, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
			 ON CONFLICT (id) DO UPDATE SET
			    content = EXCLUDED.content,
			    embedding = EXCLUDED.embedding,
			    content_type = EXCLUDED.content_type,
			    title = EXCLUDED.title,
			    slug = EXCLUDED.slug,
			    company = EXCLUDED.company,
			    project_title = EXCLUDED.project_title,
			    content_hash = EXCLUDED.content_hash,
			    updated_at = now()`,
			doc.ID, doc.Text, vec, doc.ContentType, doc.Title, doc.Slug,
			doc.Company, doc.ProjectTitle, doc.ContentHash,
		)
		if err != nil {
			return fmt.Errorf("upserting document %s: %w", doc.ID, err)
		}
	}
	return nil
}

// HashByID returns the stored content hash for every indexed document,
// used by the indexer to skip unchanged content.
func (idx *PostgresIndex) HashByID(ctx context.Context) (map[string]string, error) {
	rows, err := idx.pool.Query(ctx, `SELECT id, content_hash FROM site_documents`)
	if err != nil {
		return nil, fmt.Errorf("listing document hashes: %w", err)
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var id, hash string
		if err := rows.Scan(&id, &hash); err != nil {
			return nil, fmt.Errorf("scanning document hash: %w", err)
		}
		hashes[id] = hash
	}
	return hashes, rows.Err()
}

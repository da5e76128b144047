package remote

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tienda-storefront/internal/domain"
)

// postgresStore keeps every collection in a single documents table with a
// JSONB payload, queried by top-level field.
type postgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Store {
	return &postgresStore{pool: pool}
}

func (s *postgresStore) All(ctx context.Context, collection string) ([]Doc, error) {
	const q = `
SELECT id, data
FROM documents
WHERE collection = $1
ORDER BY created_at
`
	rows, err := s.pool.Query(ctx, q, collection)
	if err != nil {
		return nil, err
	}
	return collectDocs(rows)
}

func (s *postgresStore) Query(ctx context.Context, collection, field, value string) ([]Doc, error) {
	const q = `
SELECT id, data
FROM documents
WHERE collection = $1 AND data->>$2 = $3
ORDER BY created_at
`
	rows, err := s.pool.Query(ctx, q, collection, field, value)
	if err != nil {
		return nil, err
	}
	return collectDocs(rows)
}

func collectDocs(rows pgx.Rows) ([]Doc, error) {
	defer rows.Close()

	var docs []Doc
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		var data map[string]interface{}
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, err
		}
		docs = append(docs, Doc{ID: id, Data: data})
	}
	return docs, rows.Err()
}

func (s *postgresStore) Get(ctx context.Context, collection, id string) (Doc, error) {
	const q = `
SELECT data
FROM documents
WHERE collection = $1 AND id = $2
`
	var raw []byte
	if err := s.pool.QueryRow(ctx, q, collection, id).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Doc{}, domain.ErrNotFound
		}
		return Doc{}, err
	}
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return Doc{}, err
	}
	return Doc{ID: id, Data: data}, nil
}

func (s *postgresStore) Set(ctx context.Context, collection, id string, data map[string]interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO documents (collection, id, data)
VALUES ($1, $2, $3)
ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data
`
	_, err = s.pool.Exec(ctx, q, collection, id, raw)
	return err
}

func (s *postgresStore) Add(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	id := uuid.NewString()
	if err := s.Set(ctx, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

func (s *postgresStore) Delete(ctx context.Context, collection, id string) error {
	const q = `
DELETE FROM documents
WHERE collection = $1 AND id = $2
`
	_, err := s.pool.Exec(ctx, q, collection, id)
	return err
}

// Ping reports whether the backing database is reachable.
func (s *postgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

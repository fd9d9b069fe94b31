package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/aegisleagues/league-data/internal/platform/docstore"
)

// Store persists documents in a single JSONB-backed table, one row per
// (table_name, doc_key) pair.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, table, key string) ([]byte, bool, error) {
	var body []byte
	err := s.db.GetContext(ctx, &body,
		`SELECT body FROM documents WHERE table_name = $1 AND doc_key = $2`,
		table, key,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select document %s/%s: %w", table, key, err)
	}
	return body, true, nil
}

func (s *Store) Put(ctx context.Context, table, key string, doc []byte) error {
	if table == "" || key == "" {
		return fmt.Errorf("table and key are required")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (table_name, doc_key, body)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (table_name, doc_key) DO UPDATE
		 SET body = EXCLUDED.body, updated_at = now()`,
		table, key, doc,
	)
	if err != nil {
		return fmt.Errorf("upsert document %s/%s: %w", table, key, err)
	}
	return nil
}

func (s *Store) Scan(ctx context.Context, table string, projection []string, filterField, filterValue string) ([][]byte, error) {
	query := `SELECT body FROM documents WHERE table_name = $1`
	args := []any{table}
	if filterField != "" {
		query += ` AND body ->> $2 = $3`
		args = append(args, filterField, filterValue)
	}
	query += ` ORDER BY doc_key`

	var rows [][]byte
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("scan documents in %s: %w", table, err)
	}

	out := make([][]byte, 0, len(rows))
	for _, row := range rows {
		partial, err := docstore.Project(row, projection)
		if err != nil {
			return nil, err
		}
		out = append(out, partial)
	}
	return out, nil
}

func (s *Store) UpdatePath(ctx context.Context, table, key string, path []string, value []byte) error {
	if len(path) == 0 {
		return fmt.Errorf("update path is required")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE documents
		 SET body = jsonb_set(body, $3, $4::jsonb, true), updated_at = now()
		 WHERE table_name = $1 AND doc_key = $2`,
		table, key, pq.Array(path), value,
	)
	if err != nil {
		return fmt.Errorf("update document %s/%s: %w", table, key, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update document %s/%s rows affected: %w", table, key, err)
	}
	if affected == 0 {
		return fmt.Errorf("document %s/%s not found", table, key)
	}
	return nil
}

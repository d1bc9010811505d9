package artifact

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Querier is the subset of *pgxpool.Pool the Postgres source needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PGSource reads artifacts from the model_artifacts table.
type PGSource struct {
	db Querier
}

func NewPGSource(db Querier) *PGSource {
	return &PGSource{db: db}
}

// Migrate creates the model_artifacts table if it does not exist.
func (s *PGSource) Migrate(ctx context.Context) error {
	sql, err := migrations.ReadFile("migrations/001_model_artifacts.sql")
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := s.db.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("exec migration: %w", err)
	}
	return nil
}

func (s *PGSource) Read(ctx context.Context, name string) ([]byte, error) {
	var payload string
	err := s.db.QueryRow(ctx, `SELECT payload::text FROM model_artifacts WHERE name = $1`, name).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", name, err)
	}
	return []byte(payload), nil
}

// Push inserts or replaces the artifact stored under name.
func (s *PGSource) Push(ctx context.Context, name string, payload []byte) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO model_artifacts (name, payload, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		name, string(payload))
	if err != nil {
		return fmt.Errorf("upsert %s: %w", name, err)
	}
	return nil
}

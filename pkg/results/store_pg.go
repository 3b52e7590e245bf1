package results

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dd0wney/cluso-conceal/pkg/graph"
)

// PGStore persists full trial records in PostgreSQL.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore connects to databaseURL and creates the trials table if needed.
func NewPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Tools are short-lived and sequential
	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &PGStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return s, nil
}

func (s *PGStore) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS concealment_trials (
		id TEXT PRIMARY KEY,
		targets TEXT[] NOT NULL,
		target_size INTEGER NOT NULL,
		mu1 DOUBLE PRECISION NOT NULL,
		mu2 DOUBLE PRECISION NOT NULL,
		alpha DOUBLE PRECISION NOT NULL,
		concealment DOUBLE PRECISION NOT NULL,
		detected BOOLEAN NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_concealment_trials_created_at ON concealment_trials(created_at);
	CREATE INDEX IF NOT EXISTS idx_concealment_trials_target_size ON concealment_trials(target_size);
	`

	_, err := s.pool.Exec(ctx, schema)
	return err
}

// Append inserts rec.
func (s *PGStore) Append(ctx context.Context, rec *Record) error {
	query := `
		INSERT INTO concealment_trials (id, targets, target_size, mu1, mu2, alpha, concealment, detected, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.pool.Exec(ctx, query,
		rec.ID,
		[]string(rec.Targets),
		len(rec.Targets),
		rec.Mu1,
		rec.Mu2,
		rec.Alpha,
		rec.Concealment,
		rec.Detected,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trial: %w", err)
	}
	return nil
}

// List returns every record, oldest first.
func (s *PGStore) List(ctx context.Context) ([]*Record, error) {
	query := `
		SELECT id, targets, mu1, mu2, alpha, concealment, detected, created_at
		FROM concealment_trials
		ORDER BY created_at, id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list trials: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Record, error) {
		rec := &Record{}
		var targets []string
		err := row.Scan(
			&rec.ID,
			&targets,
			&rec.Mu1,
			&rec.Mu2,
			&rec.Alpha,
			&rec.Concealment,
			&rec.Detected,
			&rec.CreatedAt,
		)
		rec.Targets = graph.TargetSet(targets)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan trials: %w", err)
	}
	return records, nil
}

// Ping checks database connectivity.
func (s *PGStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool.
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}

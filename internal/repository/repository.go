// Package repository persists clients and emotions in PostgreSQL.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors returned by the repository. Unique-index violations are
// translated so callers never see raw driver errors for them.
var (
	ErrClientNotFound    = errors.New("client not found")
	ErrEmailExists       = errors.New("client email already exists")
	ErrEmotionNotFound   = errors.New("emotion not found")
	ErrEmotionTextExists = errors.New("emotion text already exists")
)

const (
	uniqueViolationCode = "23505"

	maxConns        = 10
	minConns        = 2
	maxConnIdleTime = 10 * time.Minute
)

// Repository is the Postgres-backed store for clients and emotions.
type Repository struct {
	pool *pgxpool.Pool
}

// New opens a pool against databaseURL and pings it once.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = maxConns
	cfg.MinConns = minConns
	cfg.MaxConnIdleTime = maxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Repository{pool: pool}, nil
}

// NewWithPool wraps an existing pool. The caller keeps ownership of it.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Ping satisfies the readiness probe.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *Repository) Close() {
	r.pool.Close()
}

// Pool exposes the pool for migrations and test helpers.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

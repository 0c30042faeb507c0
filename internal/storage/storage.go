package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-tracker/internal/config"
)

// Backend provides committed reads and opens units of work.
type Backend interface {
	Reader() *Reader
	Begin(ctx context.Context) (*Writer, error)
}

type Storage struct {
	backend Backend
}

// New wraps a backend.
func New(backend Backend) *Storage {
	return &Storage{backend: backend}
}

// NewStorage creates a Postgres-backed Storage on an open database handle.
func NewStorage(db *sql.DB) *Storage {
	return New(&bobBackend{db: bob.NewDB(db)})
}

// Open connects to the Postgres database described by env.
func Open(env *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", ConnectionString(env))
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	return db, nil
}

// ConnectionString builds the lib/pq DSN for env.
func ConnectionString(env *config.Config) string {
	return "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"
}

// Read returns the committed-data table views.
func (s *Storage) Read() *Reader {
	return s.backend.Reader()
}

// Write opens a unit of work. The caller must Commit or Rollback it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	return s.backend.Begin(ctx)
}

type bobBackend struct {
	db bob.DB
}

func (b *bobBackend) Reader() *Reader {
	return NewReader(b.db)
}

func (b *bobBackend) Begin(ctx context.Context) (*Writer, error) {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return newBobWriter(tx), nil
}

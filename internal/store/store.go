// Package store is the data access layer. It issues parameterised SQL against
// SQLite and returns model rows. Domain failures come back as *errs.Error so
// the HTTP layer can map them without inspecting driver errors.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SergeyParamoshkin/newsboard/internal/errs"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

type Store struct {
	db  *sql.DB
	now func() time.Time
}

type Option func(*Store)

// WithClock overrides the time source used for generated timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open creates the connection pool for dsn and applies the schema.
// SQLite serialises writers, so the pool holds a single connection.
func Open(dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open(driverName, withForeignKeys(dsn))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	s := New(db, opts...)
	if err := s.ApplySchema(context.Background()); err != nil {
		_ = db.Close()

		return nil, err
	}

	return s, nil
}

// New wraps an existing pool. The caller owns schema setup.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the pool can reach the database.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}

	return dsn + sep + "_pragma=foreign_keys(1)"
}

// handleError normalises a driver error: a missing row becomes the
// Not-Found domain error, anything already carrying a status is kept.
func handleError(op string, err error) error {
	if err == nil {
		return nil
	}

	var domainErr *errs.Error
	if errors.As(err, &domainErr) {
		return err
	}

	if errors.Is(err, sql.ErrNoRows) {
		return errs.NotFound()
	}

	return fmt.Errorf("%s: %w", op, err)
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

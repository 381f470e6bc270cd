// ABOUTME: Journal store construction and SQLite setup
// ABOUTME: Opens the database, applies pragmas, and bootstraps the schema
package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

// DateFormat is the canonical, lexicographically sortable entry date layout.
const DateFormat = "2006-01-02 15:04:05"

// DatePolicy decides what AddEntry does with a custom date it cannot parse.
type DatePolicy int

const (
	// DateReject fails the insert with a validation error.
	DateReject DatePolicy = iota
	// DateFallbackNow stores the entry with the current time instead.
	DateFallbackNow
)

// Store is the journal's persistence layer. It owns one database handle
// and must be closed by whoever opened it.
type Store struct {
	db         *sql.DB
	path       string
	log        *log.Logger
	now        func() time.Time
	loc        *time.Location
	datePolicy DatePolicy
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for operation and transaction events.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source used for default entry dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the zone custom dates are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithDatePolicy sets how unparseable custom dates are handled.
func WithDatePolicy(p DatePolicy) Option {
	return func(s *Store) {
		s.datePolicy = p
	}
}

// Open opens (or creates) the journal database at dbPath and bootstraps
// the schema. It is safe to call on every process start. Any failure is
// returned as a KindInitialization error.
func Open(dbPath string, opts ...Option) (*Store, error) {
	s := &Store{
		path:       dbPath,
		log:        log.New(io.Discard),
		now:        time.Now,
		loc:        time.Local,
		datePolicy: DateReject,
	}
	for _, opt := range opts {
		opt(s)
	}

	if dbPath == "" {
		return nil, newError(KindInitialization, nil, "Failed to initialize database: empty path")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil { //nolint:gosec // Standard directory permissions for user data
		return nil, newError(KindInitialization, err, "Failed to initialize database: %v", err)
	}

	// Pragmas go in the DSN so every pooled connection gets them
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000&_txlock=immediate", dbPath)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, newError(KindInitialization, err, "Failed to initialize database: %v", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, newError(KindInitialization, err, "Failed to initialize database: %v", err)
	}

	// Execute schema
	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, newError(KindInitialization, err, "Failed to initialize database: %v", err)
	}

	s.db = conn
	s.log.Info("database initialized", "path", dbPath)
	return s, nil
}

// Close releases the database handle. Calling it twice is harmless.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.log.Debug("database closed", "path", s.path)
	return err
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// DB exposes the underlying handle for diagnostics and tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// runInTx runs fn inside a transaction, committing on nil and rolling back
// on error or panic.
func (s *Store) runInTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.log.Error("failed to begin transaction", "err", err)
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			s.log.Error("rolled back transaction after panic", "panic", p)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Error("failed to roll back transaction", "err", rbErr, "cause", err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		s.log.Error("failed to commit transaction", "err", err)
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ABOUTME: Database tests for schema initialization
// ABOUTME: Validates table creation, pragmas, and connection handling
package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore opens a fresh store in a temp directory.
func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// fixedClock returns a clock that advances one minute per call.
func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		now := current
		current = current.Add(time.Minute)
		return now
	}
}

func TestOpen(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "journal.db")

	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	// Verify database file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}

	// Verify tables exist
	for _, table := range []string{"Subject", "Entry"} {
		var name string
		err := s.DB().QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s does not exist: %v", table, err)
		}
	}

	// Verify indexes exist
	indexes := []string{"idx_subject_name", "idx_entry_subject_id", "idx_entry_date", "idx_entry_subject_date"}
	for _, index := range indexes {
		var name string
		err := s.DB().QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name=?", index).Scan(&name)
		if err != nil {
			t.Errorf("index %s does not exist: %v", index, err)
		}
	}
}

func TestOpenPragmas(t *testing.T) {
	s := newTestStore(t)

	var fk int
	require.NoError(t, s.DB().QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var sync int
	require.NoError(t, s.DB().QueryRow("PRAGMA synchronous").Scan(&sync))
	assert.Equal(t, 1, sync, "synchronous should be NORMAL")
}

func TestOpenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	s, err := Open(dbPath)
	require.NoError(t, err)
	_, err = s.CreateSubject(ctx, "Work")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(dbPath)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	subjects, err := s.ListSubjects(ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "Work", subjects[0].Name)
}

func TestOpenFailure(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := Open("")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInitialization))
		assert.Equal(t, KindInitialization, KindOf(err))
	})

	t.Run("path is a directory", func(t *testing.T) {
		_, err := Open(t.TempDir())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInitialization))
		assert.False(t, IsExpected(err))
	})
}

func TestCloseTwice(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Subjects)
	assert.Equal(t, 0, st.Entries)

	_, err = s.AddEntry(ctx, ByName("Work"), "first", "")
	require.NoError(t, err)
	_, err = s.AddEntry(ctx, ByName("Home"), "second", "")
	require.NoError(t, err)
	_, err = s.AddEntry(ctx, ByName("work"), "third", "")
	require.NoError(t, err)

	st, err = s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Subjects)
	assert.Equal(t, 3, st.Entries)
	assert.Positive(t, st.SizeBytes)
}

func TestRepair(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.AddEntry(ctx, ByName("Work"), "first", "")
	require.NoError(t, err)
	_, err = s.AddEntry(ctx, ByName("Work"), "second", "")
	require.NoError(t, err)

	res, err := s.Repair(ctx)
	require.NoError(t, err)
	assert.True(t, res.WalCheckpointed)
	assert.True(t, res.IntegrityOK)
	assert.Empty(t, res.Problems)
	assert.True(t, res.Vacuumed)

	list, err := s.GetEntries(ctx, "work", Ascending, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Count)
}

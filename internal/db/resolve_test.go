// ABOUTME: Tests for subject resolution by id and name
// ABOUTME: Covers digit-string fallback and read versus write paths
package db

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSubjectByID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.CreateSubject(ctx, "Work")
	require.NoError(t, err)

	res, err := s.ResolveSubject(ctx, ByID(created.Subject.ID), false)
	require.NoError(t, err)
	assert.Equal(t, "Work", res.Subject.Name)
	assert.Equal(t, "Subject 'Work' found", res.Message)

	_, err = s.ResolveSubject(ctx, ByID(999), true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Subject with ID 999 not found", err.Error())
	assert.Equal(t, 1, countRows(t, s, "SELECT COUNT(*) FROM Subject"), "an id ref must never create")
}

func TestResolveSubjectDigitString(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	work, err := s.CreateSubject(ctx, "Work")
	require.NoError(t, err)
	numbered, err := s.CreateSubject(ctx, "123")
	require.NoError(t, err)

	t.Run("existing id wins", func(t *testing.T) {
		res, err := s.ResolveSubject(ctx, ByName(strconv.FormatInt(work.Subject.ID, 10)), false)
		require.NoError(t, err)
		assert.Equal(t, work.Subject.ID, res.Subject.ID)
	})

	t.Run("falls back to literal name", func(t *testing.T) {
		res, err := s.ResolveSubject(ctx, ByName("123"), false)
		require.NoError(t, err)
		assert.Equal(t, numbered.Subject.ID, res.Subject.ID)
		assert.Equal(t, "123", res.Subject.Name)
	})

	t.Run("unknown digits create on write path", func(t *testing.T) {
		res, err := s.ResolveSubject(ctx, ByName("2024"), true)
		require.NoError(t, err)
		assert.True(t, res.Created)
		assert.Equal(t, "2024", res.Subject.Name)
	})
}

func TestResolveSubjectReadVersusWrite(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.ResolveSubject(ctx, ByName("Travel"), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Subject 'Travel' not found", err.Error())
	assert.Equal(t, 0, countRows(t, s, "SELECT COUNT(*) FROM Subject"))

	res, err := s.ResolveSubject(ctx, ByName(" Travel "), true)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "Subject 'Travel' added successfully", res.Message)

	res, err = s.ResolveSubject(ctx, ByName("travel"), false)
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, "Travel", res.Subject.Name)

	_, err = s.ResolveSubject(ctx, ByName(""), true)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestSubjectRef(t *testing.T) {
	assert.True(t, ByID(7).IsID())
	assert.Equal(t, "7", ByID(7).String())
	assert.False(t, ByName("7").IsID())
	assert.Equal(t, "Work", ByName("Work").String())
}

func TestResolveSubjectReadSkipsWriteLock(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	_, err := s.CreateSubject(ctx, "Work")
	require.NoError(t, err)

	other, err := Open(s.Path())
	require.NoError(t, err)
	defer func() { _ = other.Close() }()

	tx, err := other.DB().BeginTx(ctx, nil)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()
	_, err = tx.ExecContext(ctx, "INSERT INTO Subject (name) VALUES (?)", "Pending")
	require.NoError(t, err)

	readCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	res, err := s.ResolveSubject(readCtx, ByName("work"), false)
	require.NoError(t, err)
	assert.Equal(t, "Work", res.Subject.Name)
}

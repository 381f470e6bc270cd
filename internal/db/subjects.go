// ABOUTME: Subject creation, listing, matching, and deletion
// ABOUTME: Subject names are unique under case-insensitive comparison
package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"golang.org/x/text/cases"
)

// Subject is a named category that entries are grouped under.
type Subject struct {
	ID         int64  `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	EntryCount int    `json:"entry_count" yaml:"entry_count"`
	CreatedAt  string `json:"created_at" yaml:"created_at"`
	UpdatedAt  string `json:"updated_at" yaml:"updated_at"`
}

// SubjectResult is the payload of subject creation and resolution.
type SubjectResult struct {
	Subject Subject
	Created bool
	Message string
}

// DeleteSubjectResult reports what a subject delete removed.
type DeleteSubjectResult struct {
	Subject        Subject
	EntriesRemoved int
	Message        string
}

// MatchResult is the payload of MatchSubject.
type MatchResult struct {
	Subject Subject
	Partial bool
	Message string
}

const subjectColumns = `s.id, s.name, s.created_at, s.updated_at,
	(SELECT COUNT(*) FROM Entry e WHERE e.subject_id = s.id)`

func scanSubject(row interface{ Scan(...any) error }) (Subject, error) {
	var sub Subject
	err := row.Scan(&sub.ID, &sub.Name, &sub.CreatedAt, &sub.UpdatedAt, &sub.EntryCount)
	return sub, err
}

// CreateSubject inserts a subject. A duplicate name (in any letter case)
// is reported as KindAlreadyExists along with the existing subject.
func (s *Store) CreateSubject(ctx context.Context, name string) (SubjectResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SubjectResult{}, newError(KindValidation, nil, "Subject name cannot be empty")
	}

	var id int64
	err := s.runInTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "INSERT INTO Subject (name) VALUES (?)", name)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if isUniqueViolation(err) {
		s.log.Warn("subject already exists", "name", name)
		existing, found, lookupErr := s.subjectByName(ctx, s.db, name)
		if lookupErr != nil || !found {
			existing = Subject{Name: name}
		}
		e := newError(KindAlreadyExists, err, "Subject '%s' already exists", name)
		return SubjectResult{Subject: existing, Message: e.Message}, e
	}
	if err != nil {
		s.log.Error("failed to add subject", "name", name, "err", err)
		return SubjectResult{}, newError(KindTransient, err, "Error adding subject: %v", err)
	}

	sub, _, err := s.subjectByID(ctx, s.db, id)
	if err != nil {
		sub = Subject{ID: id, Name: name}
	}
	s.log.Info("subject added", "id", id, "name", name)
	return SubjectResult{Subject: sub, Created: true, Message: "Subject '" + name + "' added successfully"}, nil
}

// ResolveOrCreateSubject returns the subject with this name, creating it
// when absent. The insert uses ON CONFLICT DO NOTHING so a concurrent
// process creating the same name is absorbed rather than failing; the
// engine's unique constraint is the only arbiter. No application lock is
// taken, so two processes may both observe "absent" before one inserts.
func (s *Store) ResolveOrCreateSubject(ctx context.Context, name string) (SubjectResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SubjectResult{}, newError(KindValidation, nil, "Subject name cannot be empty")
	}

	var (
		sub     Subject
		created bool
	)
	err := s.runInTx(ctx, func(tx *sql.Tx) error {
		var err error
		sub, created, err = s.ensureSubject(ctx, tx, name)
		return err
	})
	if err != nil {
		return SubjectResult{}, s.transient(err, "Could not find or create subject '%s'", name)
	}

	msg := "Subject '" + sub.Name + "' found"
	if created {
		msg = "Subject '" + sub.Name + "' added successfully"
	}
	return SubjectResult{Subject: sub, Created: created, Message: msg}, nil
}

// ensureSubject is the insert-or-ignore-then-select primitive behind
// lazy subject creation. It runs on the caller's transaction.
func (s *Store) ensureSubject(ctx context.Context, q querier, name string) (Subject, bool, error) {
	res, err := q.ExecContext(ctx, "INSERT INTO Subject (name) VALUES (?) ON CONFLICT DO NOTHING", name)
	if err != nil {
		return Subject{}, false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Subject{}, false, err
	}

	sub, found, err := s.subjectByName(ctx, q, name)
	if err != nil {
		return Subject{}, false, err
	}
	if !found {
		return Subject{}, false, errors.New("subject vanished after insert")
	}
	if n > 0 {
		s.log.Info("subject created", "id", sub.ID, "name", sub.Name)
	}
	return sub, n > 0, nil
}

// DeleteSubject removes a subject and, through the cascade, every entry
// that belongs to it, in one transaction.
func (s *Store) DeleteSubject(ctx context.Context, id int64) (DeleteSubjectResult, error) {
	var sub Subject
	err := s.runInTx(ctx, func(tx *sql.Tx) error {
		var (
			found bool
			err   error
		)
		sub, found, err = s.subjectByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if !found {
			return newError(KindNotFound, nil, "Subject with ID %d not found", id)
		}
		_, err = tx.ExecContext(ctx, "DELETE FROM Subject WHERE id = ?", id)
		return err
	})
	if err != nil {
		if IsExpected(err) {
			return DeleteSubjectResult{}, err
		}
		return DeleteSubjectResult{}, s.transient(err, "Error deleting subject: %v", err)
	}

	msg := "Subject '" + sub.Name + "' and all its entries deleted successfully"
	s.log.Info("subject deleted", "id", id, "name", sub.Name, "entries", sub.EntryCount)
	return DeleteSubjectResult{Subject: sub, EntriesRemoved: sub.EntryCount, Message: msg}, nil
}

// ListSubjects returns every subject with its entry count, ordered by
// name ignoring case, ties broken by id.
func (s *Store) ListSubjects(ctx context.Context) ([]Subject, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.created_at, s.updated_at, COUNT(e.id)
		FROM Subject s
		LEFT JOIN Entry e ON e.subject_id = s.id
		GROUP BY s.id, s.name, s.created_at, s.updated_at
		ORDER BY s.name COLLATE NOCASE ASC, s.id ASC
	`)
	if err != nil {
		return nil, s.transient(err, "Error retrieving subjects: %v", err)
	}
	defer func() { _ = rows.Close() }()

	subjects := []Subject{}
	for rows.Next() {
		sub, err := scanSubject(rows)
		if err != nil {
			return nil, s.transient(err, "Error retrieving subjects: %v", err)
		}
		subjects = append(subjects, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, s.transient(err, "Error retrieving subjects: %v", err)
	}
	return subjects, nil
}

// MatchSubject finds a subject by the same exact lookup GetEntries uses,
// then by case-folded name, then by a unique case-folded substring.
func (s *Store) MatchSubject(ctx context.Context, query string) (MatchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return MatchResult{}, newError(KindValidation, nil, "Subject name cannot be empty")
	}

	exact, found, err := s.subjectByName(ctx, s.db, query)
	if err != nil {
		return MatchResult{}, s.transient(err, "Error retrieving subjects: %v", err)
	}
	if found {
		return MatchResult{Subject: exact, Message: "Subject '" + exact.Name + "' selected"}, nil
	}

	subjects, err := s.ListSubjects(ctx)
	if err != nil {
		return MatchResult{}, err
	}

	fold := cases.Fold()
	needle := fold.String(query)
	var partial []Subject
	for _, sub := range subjects {
		name := fold.String(sub.Name)
		if name == needle {
			return MatchResult{Subject: sub, Message: "Subject '" + sub.Name + "' selected"}, nil
		}
		if strings.Contains(name, needle) {
			partial = append(partial, sub)
		}
	}

	switch len(partial) {
	case 0:
		return MatchResult{}, newError(KindNotFound, nil, "Subject '%s' not found", query)
	case 1:
		sub := partial[0]
		return MatchResult{
			Subject: sub,
			Partial: true,
			Message: "Subject '" + sub.Name + "' selected (partial match)",
		}, nil
	default:
		names := make([]string, len(partial))
		for i, sub := range partial {
			names[i] = sub.Name
		}
		return MatchResult{}, newError(KindAmbiguous, nil, "Multiple matches found: %s", strings.Join(names, ", "))
	}
}

func (s *Store) subjectByName(ctx context.Context, q querier, name string) (Subject, bool, error) {
	row := q.QueryRowContext(ctx, "SELECT "+subjectColumns+" FROM Subject s WHERE s.name = ? COLLATE NOCASE", name)
	sub, err := scanSubject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Subject{}, false, nil
	}
	if err != nil {
		return Subject{}, false, err
	}
	return sub, true, nil
}

func (s *Store) subjectByID(ctx context.Context, q querier, id int64) (Subject, bool, error) {
	row := q.QueryRowContext(ctx, "SELECT "+subjectColumns+" FROM Subject s WHERE s.id = ?", id)
	sub, err := scanSubject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Subject{}, false, nil
	}
	if err != nil {
		return Subject{}, false, err
	}
	return sub, true, nil
}

// transient logs an engine failure and wraps it for the caller.
func (s *Store) transient(err error, format string, args ...any) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	s.log.Error("store operation failed", "err", err)
	return newError(KindTransient, err, format, args...)
}

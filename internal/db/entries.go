// ABOUTME: Entry creation, deletion, and date-ordered retrieval
// ABOUTME: Entries belong to exactly one subject and are never edited in place
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/araddon/dateparse"
)

// Order is the direction entries are sorted by date.
type Order int

const (
	Ascending Order = iota
	Descending
)

// ParseOrder accepts asc/ascending/oldest and desc/descending/newest.
// An empty string means Ascending.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending", "oldest":
		return Ascending, nil
	case "desc", "descending", "newest":
		return Descending, nil
	}
	return Ascending, newError(KindValidation, nil, "Invalid sort order '%s'. Use asc or desc", s)
}

func (o Order) String() string {
	if o == Descending {
		return "descending"
	}
	return "ascending"
}

// MarshalText renders the order by name in JSON and YAML output.
func (o Order) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// direction is the only place an Order becomes query text.
func (o Order) direction() (string, error) {
	switch o {
	case Ascending:
		return "ASC", nil
	case Descending:
		return "DESC", nil
	}
	return "", newError(KindValidation, nil, "Invalid sort order %d", int(o))
}

// Entry is a single dated journal record.
type Entry struct {
	ID        int64  `json:"id" yaml:"id"`
	SubjectID int64  `json:"subject_id" yaml:"subject_id"`
	Subject   string `json:"subject" yaml:"subject"`
	Date      string `json:"date" yaml:"date"`
	Detail    string `json:"detail" yaml:"detail"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

// AddEntryResult is the payload of AddEntry.
type AddEntryResult struct {
	Entry          Entry
	SubjectCreated bool
	Message        string
}

// DeleteEntryResult is the payload of DeleteEntry.
type DeleteEntryResult struct {
	ID      int64
	Message string
}

// EntryList is the payload of GetEntries. Message is meant for display.
type EntryList struct {
	Subject string  `json:"subject" yaml:"subject"`
	Order   Order   `json:"order" yaml:"order"`
	Entries []Entry `json:"entries" yaml:"entries"`
	Count   int     `json:"count" yaml:"count"`
	Message string  `json:"message" yaml:"message"`
}

// AddEntry stores detail under the subject ref resolves to, creating the
// subject when ref names one that does not exist yet. An empty date means
// now. Subject creation and the insert commit together or not at all.
func (s *Store) AddEntry(ctx context.Context, ref SubjectRef, detail, date string) (AddEntryResult, error) {
	detail = strings.TrimSpace(detail)
	if detail == "" {
		return AddEntryResult{}, newError(KindValidation, nil, "Entry details cannot be empty")
	}

	entryDate, err := s.entryDate(date)
	if err != nil {
		return AddEntryResult{}, err
	}

	var result AddEntryResult
	err = s.runInTx(ctx, func(tx *sql.Tx) error {
		res, err := s.resolve(ctx, tx, ref, true)
		if err != nil {
			return err
		}

		ins, err := tx.ExecContext(ctx,
			"INSERT INTO Entry (subject_id, date, detail) VALUES (?, ?, ?)",
			res.Subject.ID, entryDate, detail,
		)
		if err != nil {
			return err
		}
		id, err := ins.LastInsertId()
		if err != nil {
			return err
		}

		entry, err := s.entryByID(ctx, tx, id)
		if err != nil {
			return err
		}
		result = AddEntryResult{Entry: entry, SubjectCreated: res.Created, Message: "Entry added successfully"}
		return nil
	})
	if isForeignKeyViolation(err) {
		return AddEntryResult{}, newError(KindNotFound, err, "Subject '%s' not found", ref)
	}
	if err != nil {
		return AddEntryResult{}, s.transient(err, "Error adding entry: %v", err)
	}

	s.log.Info("entry added", "id", result.Entry.ID, "subject_id", result.Entry.SubjectID)
	return result, nil
}

// entryDate returns the canonical date for a new entry.
func (s *Store) entryDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return s.now().In(s.loc).Format(DateFormat), nil
	}

	t, err := dateparse.ParseIn(date, s.loc)
	if err == nil && isDigits(date) {
		// dateparse reads bare digits as a Unix timestamp
		err = fmt.Errorf("bare number %q is not a date", date)
	}
	if err != nil {
		if s.datePolicy == DateFallbackNow {
			s.log.Warn("invalid entry date, using current time", "date", date, "err", err)
			return s.now().In(s.loc).Format(DateFormat), nil
		}
		return "", newError(KindValidation, err, "Invalid date format. Use YYYY-MM-DD HH:MM:SS")
	}
	return t.In(s.loc).Format(DateFormat), nil
}

// DeleteEntry removes one entry by id.
func (s *Store) DeleteEntry(ctx context.Context, id int64) (DeleteEntryResult, error) {
	err := s.runInTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM Entry WHERE id = ?", id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return newError(KindNotFound, nil, "Entry with ID %d not found", id)
		}
		return nil
	})
	if err != nil {
		if IsExpected(err) {
			return DeleteEntryResult{}, err
		}
		return DeleteEntryResult{}, s.transient(err, "Error deleting entry ID %d: %v", id, err)
	}

	s.log.Info("entry deleted", "id", id)
	return DeleteEntryResult{ID: id, Message: fmt.Sprintf("Entry with ID %d deleted successfully", id)}, nil
}

// GetEntries lists the entries of the subject named subjectName (any
// letter case) sorted by date. limit > 0 keeps only the first limit rows
// in that order. An unknown subject yields an empty list, not an error.
func (s *Store) GetEntries(ctx context.Context, subjectName string, order Order, limit int) (EntryList, error) {
	name := strings.TrimSpace(subjectName)
	if name == "" {
		return EntryList{}, newError(KindValidation, nil, "Subject name cannot be empty")
	}
	dir, err := order.direction()
	if err != nil {
		return EntryList{}, err
	}

	sub, found, err := s.subjectByName(ctx, s.db, name)
	if err != nil {
		return EntryList{}, s.transient(err, "Error retrieving entries: %v", err)
	}
	if !found {
		msg := fmt.Sprintf("No entries found for '%s'", name)
		s.log.Info(msg)
		return EntryList{Subject: name, Order: order, Entries: []Entry{}, Message: msg}, nil
	}

	query := fmt.Sprintf(`
		SELECT e.id, e.subject_id, s.name, e.date, e.detail, e.created_at
		FROM Entry e
		JOIN Subject s ON s.id = e.subject_id
		WHERE e.subject_id = ?
		ORDER BY e.date %s, e.id %s`, dir, dir)
	args := []any{sub.ID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return EntryList{}, s.transient(err, "Error retrieving entries: %v", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return EntryList{}, s.transient(err, "Error retrieving entries: %v", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return EntryList{}, s.transient(err, "Error retrieving entries: %v", err)
	}

	msg := fmt.Sprintf("Found %d entries for '%s'", len(entries), sub.Name)
	if len(entries) == 0 {
		msg = fmt.Sprintf("No entries found for '%s'", sub.Name)
	}
	s.log.Info(msg)
	return EntryList{Subject: sub.Name, Order: order, Entries: entries, Count: len(entries), Message: msg}, nil
}

func (s *Store) entryByID(ctx context.Context, q querier, id int64) (Entry, error) {
	row := q.QueryRowContext(ctx, `
		SELECT e.id, e.subject_id, s.name, e.date, e.detail, e.created_at
		FROM Entry e
		JOIN Subject s ON s.id = e.subject_id
		WHERE e.id = ?`, id)
	return scanEntry(row)
}

func scanEntry(row interface{ Scan(...any) error }) (Entry, error) {
	var entry Entry
	err := row.Scan(&entry.ID, &entry.SubjectID, &entry.Subject, &entry.Date, &entry.Detail, &entry.CreatedAt)
	return entry, err
}

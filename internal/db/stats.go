// ABOUTME: Journal-wide statistics
// ABOUTME: Counts subjects and entries and reports the database file size
package db

import (
	"context"
	"os"
)

// Stats summarizes the journal.
type Stats struct {
	Subjects  int   `json:"total_subjects"`
	Entries   int   `json:"total_entries"`
	SizeBytes int64 `json:"database_size"`
}

// Stats counts subjects and entries. SizeBytes covers the database file
// and its write-ahead log, and is 0 when neither can be read.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		"SELECT (SELECT COUNT(*) FROM Subject), (SELECT COUNT(*) FROM Entry)",
	).Scan(&st.Subjects, &st.Entries)
	if err != nil {
		return Stats{}, s.transient(err, "Error getting database stats: %v", err)
	}

	// Pages not yet checkpointed live in the WAL file
	for _, path := range []string{s.path, s.path + "-wal"} {
		if info, err := os.Stat(path); err == nil {
			st.SizeBytes += info.Size()
		}
	}
	return st, nil
}

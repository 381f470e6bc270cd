// ABOUTME: Local database upkeep
// ABOUTME: Checkpoints the WAL, checks integrity, and vacuums
package db

import (
	"context"
	"strings"
)

// RepairResult reports which repair steps succeeded.
type RepairResult struct {
	WalCheckpointed bool     `json:"wal_checkpointed"`
	IntegrityOK     bool     `json:"integrity_ok"`
	Problems        []string `json:"problems,omitempty"`
	Vacuumed        bool     `json:"vacuumed"`
}

// Repair checkpoints the write-ahead log into the main file, runs an
// integrity check, and vacuums when the check passes. A failed check is
// reported in the result rather than as an error.
func (s *Store) Repair(ctx context.Context) (RepairResult, error) {
	var res RepairResult

	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		s.log.Warn("wal checkpoint failed", "err", err)
	} else {
		res.WalCheckpointed = true
	}

	rows, err := s.db.QueryContext(ctx, "PRAGMA integrity_check")
	if err != nil {
		return res, s.transient(err, "Error checking database integrity: %v", err)
	}
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			_ = rows.Close()
			return res, s.transient(err, "Error checking database integrity: %v", err)
		}
		if !strings.EqualFold(line, "ok") {
			res.Problems = append(res.Problems, line)
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return res, s.transient(err, "Error checking database integrity: %v", err)
	}
	_ = rows.Close()
	res.IntegrityOK = len(res.Problems) == 0

	if !res.IntegrityOK {
		s.log.Error("integrity check failed", "problems", len(res.Problems))
		return res, nil
	}

	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		s.log.Warn("vacuum failed", "err", err)
	} else {
		res.Vacuumed = true
	}

	s.log.Info("database repaired", "path", s.path)
	return res, nil
}

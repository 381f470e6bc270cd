// ABOUTME: Structured logger construction for the journal
// ABOUTME: Maps the configured level and destination onto a charm logger
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/harper/journal/internal/config"
)

// New builds the process logger from cfg. Output goes to stderr unless
// log_file is set, in which case lines are appended to that file. Every
// line carries a session field so runs can be told apart. The returned
// close func releases the log file and is safe to call when none is open.
func New(cfg *config.Config) (*log.Logger, func() error, error) {
	var w io.Writer = os.Stderr
	closeFn := func() error { return nil }

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil { //nolint:gosec // Standard directory permissions for user data
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // Log files are user readable
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(cfg.LogLevel),
		ReportTimestamp: true,
		Prefix:          "journal",
	})
	return logger.With("session", SessionID()), closeFn, nil
}

// ParseLevel maps a config level name onto a log level. Unknown names
// mean warn.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// SessionID returns a short random id for one process run.
func SessionID() string {
	return uuid.NewString()[:8]
}

// ABOUTME: Journal export file rendering and writing
// ABOUTME: Formats a subject's entries as markdown, JSON, or YAML
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/harper/journal/internal/db"
)

// Format is an export file format.
type Format string

const (
	Markdown Format = "markdown"
	JSON     Format = "json"
	YAML     Format = "yaml"
)

// ParseFormat accepts markdown (or md), json, and yaml (or yml). Empty
// means Markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return Markdown, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown export format %q (use markdown, json, or yaml)", s)
}

// Ext is the file extension for f, without the dot.
func (f Format) Ext() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return "md"
	}
}

type document struct {
	Subject    string     `json:"subject" yaml:"subject"`
	ExportedAt string     `json:"exported_at" yaml:"exported_at"`
	Count      int        `json:"count" yaml:"count"`
	Entries    []db.Entry `json:"entries" yaml:"entries"`
}

// Render formats list as a complete export file.
func Render(format Format, list db.EntryList, now time.Time) ([]byte, error) {
	entries := list.Entries
	if entries == nil {
		entries = []db.Entry{}
	}
	doc := document{
		Subject:    list.Subject,
		ExportedAt: now.Format(db.DateFormat),
		Count:      len(entries),
		Entries:    entries,
	}

	switch format {
	case JSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case Markdown:
		return []byte(formatMarkdown(doc)), nil
	}
	return nil, fmt.Errorf("unknown export format %q", format)
}

func formatMarkdown(doc document) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Journal Export - Subject: %s\n\n", doc.Subject))
	sb.WriteString(fmt.Sprintf("- **Export Date**: %s\n", doc.ExportedAt))
	sb.WriteString(fmt.Sprintf("- **Total Entries**: %d\n", doc.Count))

	for _, entry := range doc.Entries {
		sb.WriteString(fmt.Sprintf("\n## Entry #%d - %s\n\n", entry.ID, entry.Date))
		sb.WriteString(entry.Detail)
		sb.WriteString("\n")
	}

	return sb.String()
}

// FileName is journal_export_<subject>_<YYYYMMDD_HHMMSS>.<ext>. The
// subject keeps only letters, digits, spaces, hyphens, and underscores.
func FileName(subject string, format Format, now time.Time) string {
	safe := strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			return r
		}
		return -1
	}, subject))
	if safe == "" {
		safe = "subject"
	}
	return fmt.Sprintf("journal_export_%s_%s.%s", safe, now.Format("20060102_150405"), format.Ext())
}

// Write renders list into dir and returns the path of the new file.
func Write(dir string, format Format, list db.EntryList, now time.Time) (string, error) {
	data, err := Render(format, list, now)
	if err != nil {
		return "", err
	}

	// Create export directory if needed
	if err := os.MkdirAll(dir, 0755); err != nil { //nolint:gosec // Standard directory permissions for user data
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, FileName(list.Subject, format, now))
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // Exports are user readable
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}

// ABOUTME: Tests for project .journal file detection
// ABOUTME: Validates directory walking and overlay parsing
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindProjectRoot(t *testing.T) {
	// Create temp directory structure
	tmpDir := t.TempDir()

	projectRoot := filepath.Join(tmpDir, "project")
	subDir := filepath.Join(projectRoot, "src", "deep", "nested")
	_ = os.MkdirAll(subDir, 0755) //nolint:gosec // Test directory permissions

	// Create .journal file
	journalFile := filepath.Join(projectRoot, ".journal")
	_ = os.WriteFile(journalFile, []byte("db_path = \"notes.db\"\n"), 0644) //nolint:gosec // Test file permissions

	t.Run("finds project root from nested directory", func(t *testing.T) {
		root, err := FindProjectRoot(subDir)
		if err != nil {
			t.Fatalf("FindProjectRoot failed: %v", err)
		}
		if root != projectRoot {
			t.Errorf("got %s, want %s", root, projectRoot)
		}
	})

	t.Run("returns empty when no .journal found", func(t *testing.T) {
		otherDir := filepath.Join(tmpDir, "other")
		_ = os.MkdirAll(otherDir, 0755) //nolint:gosec // Test directory permissions

		root, err := FindProjectRoot(otherDir)
		if err != nil {
			t.Fatalf("FindProjectRoot failed: %v", err)
		}
		if root != "" {
			t.Errorf("got %s, want empty string", root)
		}
	})

	t.Run("ignores a .journal directory", func(t *testing.T) {
		dirRoot := filepath.Join(tmpDir, "dirmarker")
		_ = os.MkdirAll(filepath.Join(dirRoot, ".journal"), 0755) //nolint:gosec // Test directory permissions

		root, err := FindProjectRoot(dirRoot)
		if err != nil {
			t.Fatalf("FindProjectRoot failed: %v", err)
		}
		if root != "" {
			t.Errorf("got %s, want empty string", root)
		}
	})
}

func TestApplyProject(t *testing.T) {
	tmpDir := t.TempDir()

	content := `
db_path = "data/journal.db"
date_policy = "now"
export_dir = "/abs/exports"
`
	_ = os.WriteFile(filepath.Join(tmpDir, ".journal"), []byte(content), 0644) //nolint:gosec // Test file permissions

	cfg := Default()
	cfg.LogLevel = "debug"
	if err := applyProject(cfg, tmpDir); err != nil {
		t.Fatalf("applyProject failed: %v", err)
	}

	if want := filepath.Join(tmpDir, "data", "journal.db"); cfg.DBPath != want {
		t.Errorf("got DBPath %s, want %s", cfg.DBPath, want)
	}
	if cfg.DatePolicy != "now" {
		t.Errorf("got DatePolicy %s, want now", cfg.DatePolicy)
	}
	if cfg.ExportDir != "/abs/exports" {
		t.Errorf("got ExportDir %s, want /abs/exports", cfg.ExportDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("unset key overwritten: LogLevel %s", cfg.LogLevel)
	}
	if cfg.ProjectRoot != tmpDir {
		t.Errorf("got ProjectRoot %s, want %s", cfg.ProjectRoot, tmpDir)
	}
}

func TestApplyProjectInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	_ = os.WriteFile(filepath.Join(tmpDir, ".journal"), []byte("db_path = [unterminated"), 0644) //nolint:gosec // Test file permissions

	if err := applyProject(Default(), tmpDir); err == nil {
		t.Error("expected parse error")
	}
}

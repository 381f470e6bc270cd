// ABOUTME: Project .journal file detection and overlay loading
// ABOUTME: Walks directory tree to find project root
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ProjectFile marks a directory whose journal settings override the user's.
const ProjectFile = ".journal"

// FindProjectRoot walks up from dir looking for .journal file
// Returns empty string if not found
func FindProjectRoot(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	current := absDir
	for {
		candidate := filepath.Join(current, ProjectFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return current, nil
		}

		parent := filepath.Dir(current)

		// Stop at filesystem root or home directory
		if parent == current || current == homeDir {
			return "", nil
		}

		current = parent
	}
}

// applyProject decodes root/.journal over cfg. Keys missing from the file
// keep their current values. A relative db_path or export_dir is taken
// relative to root.
func applyProject(cfg *Config, root string) error {
	path := filepath.Join(root, ProjectFile)

	var overlay Config
	meta, err := toml.DecodeFile(path, &overlay)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if meta.IsDefined("db_path") {
		cfg.DBPath = relativeTo(root, overlay.DBPath)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = overlay.LogLevel
	}
	if meta.IsDefined("log_file") {
		cfg.LogFile = relativeTo(root, overlay.LogFile)
	}
	if meta.IsDefined("date_policy") {
		cfg.DatePolicy = overlay.DatePolicy
	}
	if meta.IsDefined("export_dir") {
		cfg.ExportDir = relativeTo(root, overlay.ExportDir)
	}
	if meta.IsDefined("export_format") {
		cfg.ExportFormat = overlay.ExportFormat
	}
	cfg.ProjectRoot = root
	return nil
}

func relativeTo(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// ABOUTME: XDG base directory helpers
// ABOUTME: Resolves journal data and config locations with fallbacks
package config

import (
	"os"
	"path/filepath"
)

const appName = "journal"

// xdgDir reads an XDG variable. Relative values are invalid under the
// base directory rules and fall through to HOME joined with rel.
func xdgDir(env string, rel ...string) string {
	if dir := os.Getenv(env); dir != "" && filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(append([]string{os.Getenv("HOME")}, rel...)...)
}

// GetDataHome is the base for journal.db.
func GetDataHome() string {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// GetConfigHome is the base for config.toml.
func GetConfigHome() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDBPath is where the journal lives when nothing overrides it.
func DefaultDBPath() string {
	return filepath.Join(GetDataHome(), appName, "journal.db")
}

// DefaultConfigPath is the user-level config file.
func DefaultConfigPath() string {
	return filepath.Join(GetConfigHome(), appName, "config.toml")
}

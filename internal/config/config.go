// ABOUTME: Journal configuration loading and validation
// ABOUTME: Layers defaults, user config, project overlay, and environment
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/harper/journal/internal/db"
)

// EnvDBPath overrides the database location from the environment.
const EnvDBPath = "JOURNAL_DB_PATH"

var validate = validator.New()

// Config holds every setting the journal reads at startup.
type Config struct {
	DBPath       string `toml:"db_path" validate:"required"`
	LogLevel     string `toml:"log_level" validate:"oneof=debug info warn error"`
	LogFile      string `toml:"log_file"`
	DatePolicy   string `toml:"date_policy" validate:"oneof=reject now"`
	ExportDir    string `toml:"export_dir" validate:"required"`
	ExportFormat string `toml:"export_format" validate:"oneof=markdown json yaml"`

	// ProjectRoot is the directory holding the .journal overlay, if any.
	ProjectRoot string `toml:"-"`
}

// Default returns the configuration used when no file sets anything.
func Default() *Config {
	return &Config{
		DBPath:       DefaultDBPath(),
		LogLevel:     "warn",
		DatePolicy:   "reject",
		ExportDir:    ".",
		ExportFormat: "markdown",
	}
}

// Load builds the configuration. path names the user config file; empty
// means DefaultConfigPath, which may be absent. workDir is where the
// search for a .journal overlay starts; empty skips the search.
func Load(path, workDir string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	// A missing default config is fine; a missing explicit one is not
	if _, err := toml.DecodeFile(path, cfg); err != nil && (explicit || !errors.Is(err, os.ErrNotExist)) {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if workDir != "" {
		root, err := FindProjectRoot(workDir)
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
		if root != "" {
			if err := applyProject(cfg, root); err != nil {
				return nil, err
			}
		}
	}

	if env := os.Getenv(EnvDBPath); env != "" {
		cfg.DBPath = env
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.DatePolicy = strings.ToLower(cfg.DatePolicy)
	cfg.ExportFormat = strings.ToLower(cfg.ExportFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values against their allowed sets.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s %q fails %s %s", fe.Field(), fe.Value(), fe.Tag(), fe.Param())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// StoreDatePolicy maps date_policy onto the store option.
func (c *Config) StoreDatePolicy() db.DatePolicy {
	if c.DatePolicy == "now" {
		return db.DateFallbackNow
	}
	return db.DateReject
}

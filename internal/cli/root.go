// ABOUTME: Root command definition and CLI setup
// ABOUTME: Handles global flags, store sessions, and bare-argument routing
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/journal/internal/config"
	"github.com/harper/journal/internal/db"
	"github.com/harper/journal/internal/logging"
)

var (
	dbPathFlag   string
	configFlag   string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "journal",
	Short: "Personal journal organized by subject",
	Long: `Journal keeps dated entries grouped under subjects in a local SQLite database.

Subjects are created on first use, so "journal add Work 'shipped the release'"
is all it takes to start.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI with the process arguments. An interrupt cancels
// the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd.SetArgs(routeArgs(os.Args[1:]))
	return rootCmd.ExecuteContext(ctx)
}

// routeArgs sends "journal SUBJECT DETAIL" to the add command when the
// first argument is neither a flag nor a known command.
func routeArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	arg := args[0]
	if len(arg) == 0 || arg[0] == '-' {
		return args
	}
	// Cobra registers these lazily
	if arg == "help" || arg == "completion" {
		return args
	}
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == arg || cmd.HasAlias(arg) {
			return args
		}
	}
	return append([]string{"add"}, args...)
}

// session is what a command needs to talk to the journal.
type session struct {
	cfg      *config.Config
	store    *db.Store
	log      *log.Logger
	closeLog func() error
}

// openSession loads configuration, applies global flags, and opens the store.
func openSession() (*session, error) {
	// Without a working directory the project overlay is skipped
	workDir, _ := os.Getwd()

	cfg, err := config.Load(configFlag, workDir)
	if err != nil {
		return nil, err
	}
	if dbPathFlag != "" {
		cfg.DBPath = dbPathFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logger, closeLog, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}

	store, err := db.Open(cfg.DBPath,
		db.WithLogger(logger),
		db.WithDatePolicy(cfg.StoreDatePolicy()),
	)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	return &session{cfg: cfg, store: store, log: logger, closeLog: closeLog}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
	}
	_ = s.closeLog()
}

var (
	success = color.New(color.FgGreen)
	warning = color.New(color.FgYellow)
	failure = color.New(color.FgRed)
)

// report prints expected outcomes and lets only real failures through.
func report(w io.Writer, err error) error {
	if err == nil {
		return nil
	}
	if db.IsExpected(err) {
		if errors.Is(err, db.ErrAlreadyExists) {
			_, _ = warning.Fprintln(w, err.Error())
		} else {
			_, _ = failure.Fprintln(w, err.Error())
		}
		return nil
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "Database file (overrides config and "+config.EnvDBPath+")")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default "+config.DefaultConfigPath()+")")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
}

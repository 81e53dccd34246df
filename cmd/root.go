// Package cmd implements the dayplan CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/dayplan/internal/board"
	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
	"github.com/twiced-technology-gmbh/dayplan/internal/config"
	"github.com/twiced-technology-gmbh/dayplan/internal/date"
	"github.com/twiced-technology-gmbh/dayplan/internal/filelock"
	"github.com/twiced-technology-gmbh/dayplan/internal/kv"
	"github.com/twiced-technology-gmbh/dayplan/internal/logging"
	"github.com/twiced-technology-gmbh/dayplan/internal/output"
	"github.com/twiced-technology-gmbh/dayplan/internal/persist"
	"github.com/twiced-technology-gmbh/dayplan/internal/store"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON     bool
	flagTable    bool
	flagCompact  bool
	flagDir      string
	flagNoColor  bool
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "dayplan",
	Short: "Terminal day planner with todos, daily tasks and a time grid",
	Long: `dayplan keeps a single list of tasks: undated todos, daily tasks pinned to a
date, and scheduled tasks with a date and a time of day.
Run dayplan with no arguments to open the interactive planner.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to planner directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "stderr log level (debug, info, warn, error); overrides log.level")
}

// flagAliases returns a normalize func that maps alternate flag spellings
// to their canonical names.
func flagAliases(aliases map[string]string) func(*pflag.FlagSet, string) pflag.NormalizedName {
	return func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if canonical, ok := aliases[name]; ok {
			name = canonical
		}
		return pflag.NormalizedName(name)
	}
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv(output.EnvVar) == "json"
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// defaultHomeDir returns the path to ~/.config/dayplan.
func defaultHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, config.HomeDir), nil
}

// resolveDir returns the planner directory: --dir, the nearest .dayplan/
// above the working directory, or ~/.config/dayplan.
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	dir, err := config.FindDir(cwd)
	if err == nil {
		return dir, nil
	}

	return defaultHomeDir()
}

// loadConfig finds and loads the planner config. The home default is
// created on first use.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err == nil {
		return cfg, nil
	}

	if !errors.Is(err, config.ErrNotFound) {
		return nil, err
	}
	homeDir, homeErr := defaultHomeDir()
	if homeErr != nil || dir != homeDir {
		return nil, clierr.Wrap(clierr.StoreNotFound, err, "loading "+dir)
	}

	return config.Init(homeDir)
}

// newLogger builds the stderr logger from config, with --log-level winning.
func newLogger(cfg *config.Config) *log.Logger {
	level := cfg.Log.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	return logging.New(os.Stderr, logging.Options{
		Level:  level,
		Format: cfg.Log.Format,
		Prefix: "dayplan",
	})
}

// session is an open task store plus the resources behind it.
type session struct {
	cfg    *config.Config
	store  *store.Store
	logger *log.Logger
	closer io.Closer
}

// Close releases the storage backend.
func (s *session) Close() error {
	return s.closer.Close()
}

// openStore loads the config and opens the task store it describes. Every
// mutation is appended to the activity log.
func openStore() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openStoreFor(cfg)
}

func openStoreFor(cfg *config.Config) (*session, error) {
	logger := newLogger(cfg)

	backend, err := kv.Open(cfg.Storage.Driver, cfg.Dir(), cfg.Storage.Path, logger)
	if err != nil {
		return nil, err
	}

	dir := cfg.Dir()
	repo := persist.New(backend, cfg.Storage.Key).OnWarning(func(w persist.Warning) {
		logger.Warn("skipping malformed task", "index", w.Index, "id", w.ID, "reason", w.Message)
	})
	s, err := store.New(repo,
		store.WithLogger(logger),
		store.WithDefaultTime(cfg.ScheduleTime()),
		store.WithObserver(func(m store.Mutation) {
			board.LogMutation(dir, m.Action, m.TaskID, m.Detail)
		}),
	)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	logger.Debug("store opened", "driver", cfg.Storage.Driver, "dir", dir, "tasks", s.Len())
	return &session{cfg: cfg, store: s, logger: logger, closer: backend}, nil
}

// mutateLockFile serializes read-modify-write commands across processes.
const (
	mutateLockFile    = ".mutate.lock"
	mutateLockTimeout = 5 * time.Second
)

// withStore opens the store and runs fn against it, closing it afterwards.
func withStore(fn func(*session) error) error {
	sess, err := openStore()
	if err != nil {
		return err
	}
	defer sess.Close() //nolint:errcheck // read-only use
	return fn(sess)
}

// mutate is withStore for commands that change tasks. The list is loaded
// after the lock is taken, so two commands never save over each other.
func mutate(fn func(*session) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	err = filelock.WithTimeout(filepath.Join(cfg.Dir(), mutateLockFile), mutateLockTimeout, func() error {
		sess, err := openStoreFor(cfg)
		if err != nil {
			return err
		}
		defer sess.Close() //nolint:errcheck // writes are flushed by Save
		return fn(sess)
	})
	if errors.Is(err, filelock.ErrTimeout) {
		return clierr.Wrap(clierr.PersistenceFailure, err, "planner is busy")
	}
	return err
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// parseDate accepts YYYY-MM-DD, today, tomorrow or yesterday.
func parseDate(field, raw string, today date.Date) (date.Date, error) {
	d, err := date.ParseRelative(raw, today)
	if err != nil {
		return date.Date{}, task.ValidateDate(field, raw, err)
	}
	return d, nil
}

// resolveTask maps a full or abbreviated id to the stored task.
func resolveTask(s *store.Store, ref string) (*task.Task, error) {
	id, err := s.Resolve(ref)
	if err != nil {
		return nil, err
	}
	t, ok := s.Get(id)
	if !ok {
		return nil, task.NotFound(ref)
	}
	return t, nil
}

// outputTask prints a single task after a mutation.
func outputTask(t *task.Task, format string, args ...any) error {
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, t)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, []*task.Task{t})
		return nil
	default:
		output.Messagef(os.Stdout, format, args...)
		return nil
	}
}

// runBatch executes fn for each id and collects results. Returns a SilentError
// with exit code 1 if any operation failed (after outputting results).
func runBatch(ids []string, fn func(string) error) error {
	results := make([]output.BatchResult, 0, len(ids))
	anyFailed := false

	for _, id := range ids {
		err := fn(id)
		if err != nil {
			anyFailed = true
			var cliErr *clierr.Error
			if errors.As(err, &cliErr) {
				results = append(results, output.BatchResult{ID: id, OK: false, Error: cliErr.Message, Code: cliErr.Code})
			} else {
				results = append(results, output.BatchResult{ID: id, OK: false, Error: err.Error()})
			}
		} else {
			results = append(results, output.BatchResult{ID: id, OK: true})
		}
	}

	if outputFormat() == output.FormatJSON {
		if err := output.JSON(os.Stdout, results); err != nil {
			return err
		}
	} else {
		var succeeded int
		for _, r := range results {
			if r.OK {
				succeeded++
			} else {
				fmt.Fprintf(os.Stderr, "Error: task %s: %s\n", r.ID, r.Error)
			}
		}
		output.Messagef(os.Stdout, "Completed %d/%d operations", succeeded, len(ids))
	}

	if anyFailed {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
	"github.com/twiced-technology-gmbh/dayplan/internal/config"
	"github.com/twiced-technology-gmbh/dayplan/internal/kv"
	"github.com/twiced-technology-gmbh/dayplan/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new planner",
	Long: `Creates a planner directory (.dayplan/ by default) with config.yml. Commands
run anywhere below it use this planner instead of ~/.config/dayplan.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("driver", config.DefaultDriver, "storage driver (file, sqlite, memory)")
	initCmd.Flags().String("move-policy", config.DefaultMovePolicy, "default move policy (keep, schedule, drop-time)")
	initCmd.Flags().String("schedule-time", config.DefaultScheduleTime, "time used when a move forces a schedule (HH:MM)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = config.DefaultDir
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	if _, err := os.Stat(filepath.Join(absDir, config.ConfigFileName)); err == nil {
		return clierr.Newf(clierr.StoreAlreadyExists, "planner already initialized in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}

	cfg := config.NewDefault()
	cfg.SetDir(absDir)
	cfg.Storage.Driver, _ = cmd.Flags().GetString("driver")
	cfg.Defaults.MovePolicy, _ = cmd.Flags().GetString("move-policy")
	cfg.Defaults.ScheduleTime, _ = cmd.Flags().GetString("schedule-time")

	if err := cfg.Validate(); err != nil {
		return clierr.Wrap(clierr.InvalidInput, err, "invalid init options")
	}

	const dirMode = 0o750
	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return fmt.Errorf("creating planner directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Open once so the storage backend creates its files up front.
	sess, err := openStoreFor(cfg)
	if err != nil {
		return err
	}
	_ = sess.Close()

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status": "initialized",
			"dir":    absDir,
			"config": cfg.ConfigPath(),
			"driver": cfg.Storage.Driver,
		})
	}

	output.Messagef(os.Stdout, "Initialized planner in %s", absDir)
	output.Messagef(os.Stdout, "  Config:  %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Storage: %s (%s)", cfg.Storage.Driver, storageLabel(cfg))
	output.Messagef(os.Stdout, "  Moves:   %s", cfg.MovePolicy())
	return nil
}

func storageLabel(cfg *config.Config) string {
	if cfg.Storage.Path != "" {
		return cfg.Storage.Path
	}
	if cfg.Storage.Driver == kv.DriverSQLite {
		return kv.DefaultSQLiteFile
	}
	return cfg.Storage.Key
}

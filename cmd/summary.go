package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/dayplan/internal/board"
	"github.com/twiced-technology-gmbh/dayplan/internal/output"
	"github.com/twiced-technology-gmbh/dayplan/internal/watcher"
)

var flagWatch bool

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"status"},
	Short:   "Show planner summary",
	Long: `Displays a summary of the planner: task counts per type, today's daily and
scheduled tasks, tasks dated before today, and the next scheduled task.

Use --watch to keep the display live-updating. The summary re-renders
automatically whenever the task store changes on disk (e.g., from another
terminal or the interactive planner). Press Ctrl+C to stop.`,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "live-update the summary on store changes")
}

func runSummary(_ *cobra.Command, _ []string) error {
	return withStore(func(sess *session) error {
		if err := renderSummary(sess); err != nil {
			return err
		}
		if !flagWatch {
			return nil
		}
		return watchSummary(sess)
	})
}

func renderSummary(sess *session) error {
	summary := board.Summary(sess.store.All(), time.Now())

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, summary)
	}
	if format == output.FormatCompact {
		output.OverviewCompact(os.Stdout, summary)
		return nil
	}

	output.OverviewTable(os.Stdout, summary)
	return nil
}

func watchSummary(sess *session) error {
	dirs, names := watchTargets(sess.cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New(dirs, names, func() {
		clearScreen()
		if reloadErr := sess.store.Reload(); reloadErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: reloading tasks: %v\n", reloadErr)
		}
		if renderErr := renderSummary(sess); renderErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: rendering summary: %v\n", renderErr)
		}
	})
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer w.Close()

	fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")

	w.Run(ctx, func(watchErr error) {
		sess.logger.Warn("file watcher", "err", watchErr)
	})

	return nil
}

// clearScreen sends ANSI escape codes to clear the terminal and move the
// cursor to the top-left corner.
func clearScreen() {
	fmt.Fprint(os.Stdout, "\033[2J\033[H")
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/dayplan/internal/board"
	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
	"github.com/twiced-technology-gmbh/dayplan/internal/clock"
	"github.com/twiced-technology-gmbh/dayplan/internal/date"
	"github.com/twiced-technology-gmbh/dayplan/internal/output"
	"github.com/twiced-technology-gmbh/dayplan/internal/store"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

var moveCmd = &cobra.Command{
	Use:   "move ID[,ID,...] DATE",
	Short: "Move tasks to a date",
	Long: `Moves tasks to DATE (YYYY-MM-DD, today, tomorrow, yesterday).

By default the move follows defaults.move_policy: "keep" keeps any existing
time, "schedule" forces a time (--time, the task's own, or
defaults.schedule_time) and "drop-time" always lands the task as daily.
--schedule and --drop-time override the configured policy.
Multiple IDs can be provided as a comma-separated list.`,
	Args: cobra.ExactArgs(2), //nolint:mnd // ids and date
	RunE: runMove,
}

func init() {
	moveCmd.Flags().Bool("schedule", false, "force the task to be scheduled")
	moveCmd.Flags().String("time", "", "time for --schedule (HH:MM)")
	moveCmd.Flags().Bool("drop-time", false, "drop any time so the task lands as daily")
	moveCmd.Flags().SetNormalizeFunc(flagAliases(map[string]string{"at": "time"}))
	moveCmd.MarkFlagsMutuallyExclusive("schedule", "drop-time")
	rootCmd.AddCommand(moveCmd)
}

// moveResult wraps a task with the date it was moved from.
type moveResult struct {
	*task.Task
	From *date.Date `json:"from"`
}

func runMove(cmd *cobra.Command, args []string) error {
	ids, err := board.ParseIDs(args[0])
	if err != nil {
		return err
	}

	schedule, _ := cmd.Flags().GetBool("schedule")
	dropTime, _ := cmd.Flags().GetBool("drop-time")
	rawTime, _ := cmd.Flags().GetString("time")

	var at *clock.Time
	if rawTime != "" {
		if !schedule {
			return clierr.New(clierr.InvalidInput, "--time requires --schedule")
		}
		parsed, err := clock.Parse(rawTime)
		if err != nil {
			return err
		}
		at = &parsed
	}

	return mutate(func(sess *session) error {
		d, err := parseDate("target", args[1], sess.store.Today())
		if err != nil {
			return err
		}

		policy := sess.cfg.MovePolicy()
		switch {
		case schedule:
			policy = store.MoveSchedule
		case dropTime:
			policy = store.MoveDropTime
		}

		if len(ids) == 1 {
			return moveSingleTask(sess.store, ids[0], d, policy, at)
		}
		return runBatch(ids, func(ref string) error {
			_, _, err := executeMove(sess.store, ref, d, policy, at)
			return err
		})
	})
}

func moveSingleTask(s *store.Store, ref string, d date.Date, policy store.MovePolicy, at *clock.Time) error {
	t, from, err := executeMove(s, ref, d, policy, at)
	if t == nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		if outErr := output.JSON(os.Stdout, moveResult{Task: t, From: from}); outErr != nil {
			return outErr
		}
		return err
	}

	fromLabel := "todos"
	if from != nil {
		fromLabel = from.String()
	}
	when := t.Date.String()
	if t.Time != nil {
		when += " " + t.Time.String()
	}
	output.Messagef(os.Stdout, "Moved %s: %s -> %s (%s)", t.ShortID(), fromLabel, when, t.Type)
	return err
}

// executeMove resolves ref and applies the move. It returns the task's
// previous date alongside the moved task.
func executeMove(s *store.Store, ref string, d date.Date, policy store.MovePolicy, at *clock.Time) (*task.Task, *date.Date, error) {
	current, err := resolveTask(s, ref)
	if err != nil {
		return nil, nil, err
	}
	t, err := s.Move(current.ID, d, policy, at)
	return t, current.Date, err
}

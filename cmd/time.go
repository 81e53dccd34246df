package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
)

var timeCmd = &cobra.Command{
	Use:   "time ID [HH:MM]",
	Short: "Set or clear a task's time",
	Long: `Assigns a 24-hour HH:MM time to a task, making it scheduled. An undated todo
is dated with --date (default today). With --clear the time is removed and a
dated task becomes a daily task.`,
	Args: cobra.RangeArgs(1, 2), //nolint:mnd // id and optional time
	RunE: runTime,
}

func init() {
	timeCmd.Flags().Bool("clear", false, "remove the time")
	timeCmd.Flags().String("date", "", "date used when the task has none (default today)")
	rootCmd.AddCommand(timeCmd)
}

func runTime(cmd *cobra.Command, args []string) error {
	clearTime, _ := cmd.Flags().GetBool("clear")
	rawDate, _ := cmd.Flags().GetString("date")

	raw := ""
	switch {
	case clearTime && len(args) > 1:
		return clierr.New(clierr.InvalidInput, "give either a time or --clear, not both")
	case !clearTime && len(args) < 2: //nolint:mnd // id and time
		return clierr.New(clierr.InvalidInput, "a time (HH:MM) or --clear is required")
	case !clearTime:
		raw = args[1]
	}

	return mutate(func(sess *session) error {
		ref, err := parseDate("reference", rawDate, sess.store.Today())
		if err != nil {
			return err
		}
		current, err := resolveTask(sess.store, args[0])
		if err != nil {
			return err
		}
		t, err := sess.store.SetTimeString(current.ID, raw, ref)
		if t == nil {
			return err
		}
		if clearTime {
			if outErr := outputTask(t, "Cleared time of %s (%s)", t.ShortID(), t.Type); outErr != nil {
				return outErr
			}
			return err
		}
		if outErr := outputTask(t, "Scheduled %s on %s at %s", t.ShortID(), t.Date, t.Time); outErr != nil {
			return outErr
		}
		return err
	})
}

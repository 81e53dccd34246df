package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/dayplan/internal/board"
)

var unscheduleCmd = &cobra.Command{
	Use:     "unschedule ID[,ID,...]",
	Aliases: []string{"undate"},
	Short:   "Return tasks to the todo list",
	Long: `Clears the date of each task, and with it any time, so the tasks become
undated todos again. Multiple IDs can be provided as a comma-separated list.`,
	Args: cobra.ExactArgs(1),
	RunE: runUnschedule,
}

func init() {
	rootCmd.AddCommand(unscheduleCmd)
}

func runUnschedule(_ *cobra.Command, args []string) error {
	ids, err := board.ParseIDs(args[0])
	if err != nil {
		return err
	}

	return mutate(func(sess *session) error {
		clearOne := func(ref string) error {
			current, err := resolveTask(sess.store, ref)
			if err != nil {
				return err
			}
			t, err := sess.store.ClearDate(current.ID)
			if t != nil && len(ids) == 1 {
				if outErr := outputTask(t, "Moved %s back to todos", t.ShortID()); outErr != nil {
					return outErr
				}
			}
			return err
		}

		if len(ids) == 1 {
			return clearOne(ids[0])
		}
		return runBatch(ids, clearOne)
	})
}

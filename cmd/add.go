package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

var addCmd = &cobra.Command{
	Use:     "add TEXT",
	Aliases: []string{"create"},
	Short:   "Add a todo, or a daily task with --date",
	Long: `Adds a task. Without --date the task is an undated todo; with --date it is a
daily task on that date. Use "dayplan time" afterwards to schedule it.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringP("date", "d", "", "date for a daily task (YYYY-MM-DD, today, tomorrow, yesterday)")
	addCmd.Flags().SetNormalizeFunc(flagAliases(map[string]string{"on": "date", "day": "date"}))
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	rawDate, _ := cmd.Flags().GetString("date")
	dated := cmd.Flags().Changed("date")

	return mutate(func(sess *session) error {
		var (
			t   *task.Task
			err error
		)
		if dated {
			d, dateErr := parseDate("task", rawDate, sess.store.Today())
			if dateErr != nil {
				return dateErr
			}
			t, err = sess.store.AddDaily(args[0], d)
		} else {
			t, err = sess.store.AddTodo(args[0])
		}
		if t == nil {
			return err
		}
		if outErr := outputTask(t, "Added %s %s: %s", t.Type, t.ShortID(), t.Text); outErr != nil {
			return outErr
		}
		return err
	})
}

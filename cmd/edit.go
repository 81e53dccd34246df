package cmd

import (
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit ID TEXT",
	Short: "Change a task's text",
	Args:  cobra.ExactArgs(2), //nolint:mnd // id and text
	RunE:  runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(_ *cobra.Command, args []string) error {
	return mutate(func(sess *session) error {
		current, err := resolveTask(sess.store, args[0])
		if err != nil {
			return err
		}
		t, err := sess.store.EditText(current.ID, args[1])
		if t == nil {
			return err
		}
		if outErr := outputTask(t, "Updated %s: %s", t.ShortID(), t.Text); outErr != nil {
			return outErr
		}
		return err
	})
}

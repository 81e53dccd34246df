package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/dayplan/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show task details",
	Long:  `Displays a single task. ID may be the full id or a unique prefix of at least 4 characters.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	return withStore(func(sess *session) error {
		t, err := resolveTask(sess.store, args[0])
		if err != nil {
			return err
		}

		format := outputFormat()
		if format == output.FormatJSON {
			return output.JSON(os.Stdout, t)
		}
		if format == output.FormatCompact {
			output.TaskDetailCompact(os.Stdout, t)
			return nil
		}

		output.TaskDetail(os.Stdout, t)
		return nil
	})
}

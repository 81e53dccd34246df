package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/dayplan/internal/board"
	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
	"github.com/twiced-technology-gmbh/dayplan/internal/output"
	"github.com/twiced-technology-gmbh/dayplan/internal/store"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

var deleteCmd = &cobra.Command{
	Use:     "delete ID[,ID,...]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Removes a task from the planner. Prompts for confirmation in interactive mode.
Deleting an id that does not exist succeeds and changes nothing.
Multiple IDs can be provided as a comma-separated list (requires --yes).`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ids, err := board.ParseIDs(args[0])
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")

	if len(ids) > 1 && !yes {
		return clierr.New(clierr.ConfirmationReq,
			"batch delete requires --yes")
	}

	return mutate(func(sess *session) error {
		if len(ids) == 1 {
			return deleteSingleTask(sess.store, ids[0], yes)
		}
		return runBatch(ids, func(ref string) error {
			_, _, err := executeDelete(sess.store, ref)
			return err
		})
	})
}

// deleteSingleTask handles a single task delete with confirmation and output.
func deleteSingleTask(s *store.Store, ref string, yes bool) error {
	t, err := resolveTask(s, ref)
	if clierr.Is(err, clierr.NotFound) {
		return outputDeleted(ref, nil, false)
	}
	if err != nil {
		return err
	}

	if !yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return clierr.New(clierr.ConfirmationReq,
				"cannot prompt for confirmation (not a terminal); use --yes")
		}
		fmt.Fprintf(os.Stderr, "Delete task %s %q? [y/N] ", t.ShortID(), t.Text)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(os.Stderr, "Canceled.")
			return nil
		}
	}

	removed, err := s.Delete(t.ID)
	if outErr := outputDeleted(ref, t, removed); outErr != nil {
		return outErr
	}
	return err
}

// executeDelete resolves ref and removes the task. A reference that matches
// nothing is not an error.
func executeDelete(s *store.Store, ref string) (*task.Task, bool, error) {
	t, err := resolveTask(s, ref)
	if clierr.Is(err, clierr.NotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	removed, err := s.Delete(t.ID)
	return t, removed, err
}

func outputDeleted(ref string, t *task.Task, removed bool) error {
	if outputFormat() == output.FormatJSON {
		resp := map[string]any{"status": "deleted", "id": ref, "removed": removed}
		if t != nil {
			resp["id"] = t.ID
			resp["text"] = t.Text
		}
		return output.JSON(os.Stdout, resp)
	}

	if !removed {
		output.Messagef(os.Stdout, "No task %s; nothing deleted", ref)
		return nil
	}
	output.Messagef(os.Stdout, "Deleted task %s: %s", t.ShortID(), t.Text)
	return nil
}

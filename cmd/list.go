package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/dayplan/internal/board"
	"github.com/twiced-technology-gmbh/dayplan/internal/date"
	"github.com/twiced-technology-gmbh/dayplan/internal/output"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `Lists tasks with optional filtering, sorting, and output format control.
Tasks are shown in insertion order unless --sort date is given.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringSlice("type", nil, "filter by type: todo, daily, scheduled (comma-separated)")
	listCmd.Flags().String("date", "", "only tasks on this date")
	listCmd.Flags().String("from", "", "only tasks on or after this date")
	listCmd.Flags().String("to", "", "only tasks on or before this date")
	listCmd.Flags().StringP("search", "s", "", "search task text (case-insensitive)")
	listCmd.Flags().String("sort", board.SortInsertion, "sort order (insertion, date)")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	listCmd.Flags().SetNormalizeFunc(flagAliases(map[string]string{"types": "type", "since": "from", "until": "to"}))
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	rawTypes, _ := cmd.Flags().GetStringSlice("type")
	search, _ := cmd.Flags().GetString("search")
	sortBy, _ := cmd.Flags().GetString("sort")
	limit, _ := cmd.Flags().GetInt("limit")

	types := make([]task.Type, 0, len(rawTypes))
	for _, raw := range rawTypes {
		typ, err := task.ParseType(raw)
		if err != nil {
			return err
		}
		types = append(types, typ)
	}

	return withStore(func(sess *session) error {
		filter := board.FilterOptions{Types: types, Search: search}
		today := sess.store.Today()
		for _, f := range []struct {
			name string
			dst  **date.Date
		}{
			{"date", &filter.Date},
			{"from", &filter.From},
			{"to", &filter.To},
		} {
			raw, _ := cmd.Flags().GetString(f.name)
			if raw == "" {
				continue
			}
			d, err := parseDate(f.name, raw, today)
			if err != nil {
				return err
			}
			*f.dst = &d
		}

		tasks, err := board.List(sess.store.All(), board.ListOptions{
			Filter: filter,
			SortBy: sortBy,
			Limit:  limit,
		})
		if err != nil {
			return err
		}
		return outputTaskList(tasks)
	})
}

func outputTaskList(tasks []*task.Task) error {
	format := outputFormat()
	if format == output.FormatJSON {
		if tasks == nil {
			tasks = []*task.Task{}
		}
		return output.JSON(os.Stdout, tasks)
	}
	if format == output.FormatCompact {
		output.TaskCompact(os.Stdout, tasks)
		return nil
	}

	output.TaskTable(os.Stdout, tasks)
	return nil
}

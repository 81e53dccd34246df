package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/dayplan/internal/clock"
	"github.com/twiced-technology-gmbh/dayplan/internal/date"
	"github.com/twiced-technology-gmbh/dayplan/internal/grid"
	"github.com/twiced-technology-gmbh/dayplan/internal/output"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

var dayCmd = &cobra.Command{
	Use:   "day [DATE]",
	Short: "Show a day's time grid",
	Long: `Shows one day as a grid of time slots with each scheduled task in the slot
that contains its time. --zoom picks a level from grid.zoom_levels and
--center the time the zoomed window is centered on. Tasks after the window
fall into its last slot; tasks before it are listed separately, followed by
the day's daily tasks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDay,
}

func init() {
	dayCmd.Flags().StringP("zoom", "z", "", "zoom level name (default grid.default_zoom)")
	dayCmd.Flags().String("center", "", "center of the zoomed window (HH:MM, default grid.center)")
	rootCmd.AddCommand(dayCmd)
}

// dayView is the JSON form of a day grid.
type dayView struct {
	Date     date.Date    `json:"date"`
	Zoom     grid.Level   `json:"zoom"`
	Center   clock.Time   `json:"center"`
	Cells    []grid.Cell  `json:"cells"`
	Unplaced []*task.Task `json:"unplaced"`
	Daily    []*task.Task `json:"daily"`
}

func runDay(cmd *cobra.Command, args []string) error {
	zoom, _ := cmd.Flags().GetString("zoom")
	rawCenter, _ := cmd.Flags().GetString("center")

	return withStore(func(sess *session) error {
		d := sess.store.Today()
		if len(args) == 1 {
			var err error
			if d, err = parseDate("day", args[0], d); err != nil {
				return err
			}
		}

		level, err := sess.cfg.ZoomLevel(zoom)
		if err != nil {
			return err
		}
		center := sess.cfg.Center()
		if rawCenter != "" {
			if center, err = clock.Parse(rawCenter); err != nil {
				return err
			}
		}

		slots, err := grid.BuildIntervals(level.Config(center))
		if err != nil {
			return err
		}
		layout := grid.Lay(sess.store.ListForDate(d, task.TypeScheduled), slots)
		daily := sess.store.ListForDate(d, task.TypeDaily)
		sess.logger.Debug("day grid", "date", d, "zoom", level.Name, "slots", len(slots), "unplaced", len(layout.Unplaced))

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, dayView{
				Date:     d,
				Zoom:     level,
				Center:   center,
				Cells:    layout.Cells,
				Unplaced: nonNil(layout.Unplaced),
				Daily:    nonNil(daily),
			})
		}

		output.DayGrid(os.Stdout, d, level.Name, layout, daily)
		return nil
	})
}

func nonNil(tasks []*task.Task) []*task.Task {
	if tasks == nil {
		return []*task.Task{}
	}
	return tasks
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/dayplan/internal/calendar"
	"github.com/twiced-technology-gmbh/dayplan/internal/date"
	"github.com/twiced-technology-gmbh/dayplan/internal/output"
)

var agendaCmd = &cobra.Command{
	Use:   "agenda [DATE]",
	Short: "Show daily and scheduled tasks for a day, week, month or 30 days",
	Long: `Lists dated tasks for the period around DATE (default today). --view selects
day, week, month or 30d (default defaults.view); --offset steps that many
periods forward or back, like pressing h/l in the planner.

--markdown prints the agenda as markdown, rendered for the terminal when
stdout is one and written raw otherwise.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAgenda,
}

func init() {
	agendaCmd.Flags().String("view", "", "period: day, week, month, 30d")
	agendaCmd.Flags().Int("offset", 0, "number of periods to move from DATE")
	agendaCmd.Flags().Bool("markdown", false, "output as markdown")
	rootCmd.AddCommand(agendaCmd)
}

// agendaView is the JSON form of an agenda.
type agendaView struct {
	Title  string               `json:"title"`
	View   calendar.Granularity `json:"view"`
	Anchor date.Date            `json:"anchor"`
	Days   []calendar.AgendaDay `json:"days"`
}

func runAgenda(cmd *cobra.Command, args []string) error {
	rawView, _ := cmd.Flags().GetString("view")
	offset, _ := cmd.Flags().GetInt("offset")
	markdown, _ := cmd.Flags().GetBool("markdown")

	return withStore(func(sess *session) error {
		g := sess.cfg.View()
		if rawView != "" {
			var err error
			if g, err = calendar.ParseGranularity(rawView); err != nil {
				return err
			}
		}

		anchor := sess.store.Today()
		if len(args) == 1 {
			var err error
			if anchor, err = parseDate("agenda", args[0], anchor); err != nil {
				return err
			}
		}
		anchor = calendar.Navigate(anchor, offset, g)

		weekStart := sess.cfg.WeekStart()
		title := calendar.Title(anchor, g, weekStart)
		days := calendar.Agenda(sess.store, anchor, g, weekStart)

		switch {
		case markdown || outputFormat() == output.FormatMarkdown:
			styled := term.IsTerminal(int(os.Stdout.Fd())) && output.ColorEnabled()
			return output.RenderMarkdown(os.Stdout, output.AgendaMarkdown(title, days), styled)
		case outputFormat() == output.FormatJSON:
			return output.JSON(os.Stdout, agendaView{Title: title, View: g, Anchor: anchor, Days: days})
		case outputFormat() == output.FormatCompact:
			output.AgendaCompact(os.Stdout, days)
		default:
			output.AgendaTable(os.Stdout, title, days)
		}
		return nil
	})
}

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/twiced-technology-gmbh/dayplan/internal/calendar"
)

const markdownWrap = 80

// AgendaMarkdown renders agenda days as a markdown document.
func AgendaMarkdown(title string, days []calendar.AgendaDay) string {
	var b strings.Builder
	b.WriteString("# " + title + "\n")

	empty := true
	for _, d := range days {
		if d.Empty() {
			continue
		}
		empty = false
		b.WriteString("\n## " + d.Date.Format("Monday, January 2") + "\n\n")
		for _, t := range d.Daily {
			fmt.Fprintf(&b, "- %s `%s`\n", escapeMarkdown(t.Text), t.ShortID())
		}
		for _, t := range d.Scheduled {
			fmt.Fprintf(&b, "- **%s** %s `%s`\n", t.Time, escapeMarkdown(t.Text), t.ShortID())
		}
	}
	if empty {
		b.WriteString("\n_Nothing planned._\n")
	}
	return b.String()
}

// RenderMarkdown writes md to w. When styled is false the raw markdown is
// written; otherwise it is rendered for the terminal with glamour.
func RenderMarkdown(w io.Writer, md string, styled bool) error {
	if !styled {
		_, err := io.WriteString(w, md)
		return err
	}

	style := "dark"
	if !colorEnabled {
		style = "notty"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(markdownWrap),
	)
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "#", `\#`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

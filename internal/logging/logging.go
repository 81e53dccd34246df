// Package logging builds the leveled stderr logger shared by the CLI, the
// TUI and the storage layer.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Accepted level and format names.
var (
	Levels  = []string{"debug", "info", "warn", "error", "fatal"}
	Formats = []string{"text", "json", "logfmt"}
)

// Options holds logger configuration.
type Options struct {
	Level           string
	Format          string
	ReportTimestamp bool
	Prefix          string
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormatter(opts.Format),
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// ParseLevel maps a level name to a log.Level. Unknown names map to warn.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

// ParseFormatter maps a format name to a log.Formatter. Unknown names map to text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// ValidLevel reports whether level is an accepted level name. "warning" is
// accepted as an alias of warn.
func ValidLevel(level string) bool {
	level = strings.ToLower(level)
	return level == "warning" || contains(Levels, level)
}

// ValidFormat reports whether format is an accepted format name.
func ValidFormat(format string) bool {
	return contains(Formats, strings.ToLower(format))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Package output handles formatting CLI output as table, JSON, compact or
// markdown.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Format represents an output format.
type Format int

// Output formats. FormatAuto resolves to table.
const (
	FormatAuto Format = iota
	FormatJSON
	FormatTable
	FormatCompact
	FormatMarkdown
)

// EnvVar overrides the default format when no flag is given.
const EnvVar = "DAYPLAN_OUTPUT"

var formatNames = map[string]Format{
	"json":     FormatJSON,
	"table":    FormatTable,
	"compact":  FormatCompact,
	"oneline":  FormatCompact,
	"markdown": FormatMarkdown,
	"md":       FormatMarkdown,
}

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, bool) {
	f, ok := formatNames[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCompact:
		return "compact"
	case FormatMarkdown:
		return "markdown"
	default:
		return "table"
	}
}

// Detect picks the format from flags, then $DAYPLAN_OUTPUT, then table.
// Markdown only applies to commands that can render it; the rest fall back
// to their table output.
func Detect(jsonFlag, tableFlag, compactFlag bool) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case compactFlag:
		return FormatCompact
	case tableFlag:
		return FormatTable
	}
	if f, ok := ParseFormat(os.Getenv(EnvVar)); ok {
		return f
	}
	return FormatTable
}

// JSON writes data as indented JSON to the given writer.
func JSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorResponse is the JSON envelope for structured error output.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// JSONError writes a structured error to w. Write failures are ignored
// since the process is about to exit.
func JSONError(w io.Writer, code, msg string, details map[string]any) {
	_ = JSON(w, ErrorResponse{Error: msg, Code: code, Details: details})
}

// BatchResult is the outcome for one id of a comma-separated batch.
type BatchResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}

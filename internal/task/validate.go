package task

import (
	"strings"

	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
)

// ValidateText trims text and rejects it when empty. Invalid UTF-8 sequences
// are replaced with U+FFFD.
func ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(strings.ToValidUTF8(text, "\uFFFD"))
	if trimmed == "" {
		return "", clierr.New(clierr.InvalidInput, "task text must not be empty").
			WithDetails(map[string]any{"input": text})
	}
	return trimmed, nil
}

// ValidateDate returns a CLIError for invalid date input.
func ValidateDate(field, input string, err error) *clierr.Error {
	return clierr.Newf(clierr.InvalidDate, "invalid %s date: %v", field, err).
		WithDetails(map[string]any{
			"field": field,
			"input": input,
		})
}

// NotFound returns a CLIError for an unknown task reference.
func NotFound(ref string) *clierr.Error {
	return clierr.Newf(clierr.NotFound, "task not found: %s", ref).
		WithDetails(map[string]any{"id": ref})
}

// Ambiguous returns a CLIError for an id prefix that matches several tasks.
func Ambiguous(ref string, matches []string) *clierr.Error {
	return clierr.Newf(clierr.InvalidInput, "task reference %q is ambiguous (%d matches)", ref, len(matches)).
		WithDetails(map[string]any{
			"id":      ref,
			"matches": matches,
		})
}

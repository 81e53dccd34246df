package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/twiced-technology-gmbh/dayplan/internal/clock"
	"github.com/twiced-technology-gmbh/dayplan/internal/date"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

// record is the wire shape of a task. Field order is the serialized order.
type record struct {
	ID   string  `json:"id"`
	Text string  `json:"text"`
	Date *string `json:"date"`
	Time *string `json:"time"`
	Type string  `json:"type"`
}

// looseRecord accepts any JSON value per field so one bad field cannot
// reject the whole document.
type looseRecord struct {
	ID   any `json:"id"`
	Text any `json:"text"`
	Date any `json:"date"`
	Time any `json:"time"`
	Type any `json:"type"`
}

// Warning describes a record that was repaired or skipped while decoding.
type Warning struct {
	Index   int    // position in the stored array, -1 for the whole document
	ID      string // task id if known
	Message string
}

func (w Warning) String() string {
	if w.Index < 0 {
		return w.Message
	}
	if w.ID == "" {
		return fmt.Sprintf("record %d: %s", w.Index, w.Message)
	}
	return fmt.Sprintf("record %d (%s): %s", w.Index, w.ID, w.Message)
}

// Encode serializes tasks as a compact JSON array. The output depends only
// on the task values, so encoding the result of Decode reproduces the input
// for any document Encode produced. Invalid UTF-8 in text is written as
// U+FFFD.
func Encode(tasks []*task.Task) ([]byte, error) {
	records := make([]record, len(tasks))
	for i, t := range tasks {
		r := record{ID: t.ID, Text: strings.ToValidUTF8(t.Text, "\uFFFD"), Type: string(t.Type)}
		if t.Date != nil {
			s := t.Date.String()
			r.Date = &s
		}
		if t.Time != nil {
			s := t.Time.String()
			r.Time = &s
		}
		records[i] = r
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encoding tasks: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses a stored document. It never fails: an unparsable document
// yields no tasks and a single warning, and individual records are repaired
// so every returned task satisfies the type invariant.
func Decode(data []byte) ([]*task.Task, []Warning) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var raw []looseRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, []Warning{{Index: -1, Message: "unparsable task list: " + err.Error()}}
	}

	tasks := make([]*task.Task, 0, len(raw))
	var warnings []Warning
	seen := make(map[string]bool, len(raw))
	for i, r := range raw {
		t, ws := decodeRecord(i, r)
		warnings = append(warnings, ws...)
		if t == nil {
			continue
		}
		if seen[t.ID] {
			warnings = append(warnings, Warning{Index: i, ID: t.ID, Message: "duplicate id, record skipped"})
			continue
		}
		seen[t.ID] = true
		tasks = append(tasks, t)
	}
	return tasks, warnings
}

func decodeRecord(i int, r looseRecord) (*task.Task, []Warning) {
	var warnings []Warning
	warn := func(id, msg string) {
		warnings = append(warnings, Warning{Index: i, ID: id, Message: msg})
	}

	id, _ := r.ID.(string)
	text, _ := r.Text.(string)
	if strings.TrimSpace(text) == "" {
		warn(id, "empty text, record skipped")
		return nil, warnings
	}
	if id == "" {
		id = repairID(i, text)
		warn(id, "missing id, assigned one")
	}

	t := &task.Task{ID: id, Text: text}
	if r.Date != nil {
		s, _ := r.Date.(string)
		if d, err := date.Parse(s); err == nil {
			t.Date = &d
		} else {
			warn(id, fmt.Sprintf("invalid date %v dropped", r.Date))
		}
	}
	if r.Time != nil {
		s, _ := r.Time.(string)
		if tm, err := clock.Parse(s); err == nil {
			t.Time = &tm
		} else {
			warn(id, fmt.Sprintf("invalid time %v dropped", r.Time))
		}
	}
	if t.Date == nil && t.Time != nil {
		warn(id, "time without a date dropped")
	}

	task.Normalize(t)
	if stored, _ := r.Type.(string); stored != string(t.Type) {
		warn(id, fmt.Sprintf("type %q corrected to %q", stored, t.Type))
	}
	return t, warnings
}

// repairID derives an id for a record stored without one. It depends only on
// the record's position and text, so reloading an unrepaired slot yields the
// same id.
func repairID(i int, text string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "%d:%s", i, text)).String()
}

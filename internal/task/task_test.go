package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
	"github.com/twiced-technology-gmbh/dayplan/internal/clock"
	"github.com/twiced-technology-gmbh/dayplan/internal/date"
)

func TestDerive(t *testing.T) {
	d := date.MustParse("2024-03-01")
	tm := clock.MustParse("09:30")

	assert.Equal(t, TypeTodo, Derive(nil, nil))
	assert.Equal(t, TypeDaily, Derive(&d, nil))
	assert.Equal(t, TypeScheduled, Derive(&d, &tm))
	assert.Equal(t, TypeTodo, Derive(nil, &tm))
}

func TestCheck_RejectsTimeWithoutDate(t *testing.T) {
	tm := clock.MustParse("09:30")
	tk := &Task{ID: "a", Text: "x", Time: &tm, Type: TypeTodo}

	err := tk.Check()
	require.Error(t, err)
	assert.Equal(t, clierr.InvalidInput, clierr.CodeOf(err))
}

func TestCheck_RejectsWrongType(t *testing.T) {
	tk := &Task{ID: "a", Text: "x", Date: date.MustParse("2024-03-01").Ptr(), Type: TypeTodo}
	assert.Error(t, tk.Check())

	tk.Type = TypeDaily
	assert.NoError(t, tk.Check())
}

func TestLifecycle_Transitions(t *testing.T) {
	ref := date.MustParse("2024-03-01")
	tk := &Task{ID: "a", Text: "x", Type: TypeTodo}

	AssignTime(tk, clock.MustParse("09:30"), ref)
	require.NoError(t, tk.Check())
	assert.Equal(t, TypeScheduled, tk.Type)
	assert.Equal(t, "2024-03-01", tk.Date.String())
	assert.Equal(t, "09:30", tk.Time.String())

	ClearTime(tk)
	require.NoError(t, tk.Check())
	assert.Equal(t, TypeDaily, tk.Type)
	assert.Equal(t, "2024-03-01", tk.Date.String())
	assert.Nil(t, tk.Time)

	ClearDate(tk)
	require.NoError(t, tk.Check())
	assert.Equal(t, TypeTodo, tk.Type)

	AssignDate(tk, ref)
	assert.Equal(t, TypeDaily, tk.Type)
}

func TestAssignTime_KeepsExistingDate(t *testing.T) {
	tk := &Task{ID: "a", Text: "x", Date: date.MustParse("2024-05-05").Ptr(), Type: TypeDaily}

	AssignTime(tk, clock.MustParse("18:00"), date.MustParse("2024-03-01"))
	assert.Equal(t, "2024-05-05", tk.Date.String())
	assert.Equal(t, TypeScheduled, tk.Type)
}

func TestClearDate_DropsTime(t *testing.T) {
	tk := &Task{ID: "a", Text: "x"}
	AssignTime(tk, clock.MustParse("07:00"), date.MustParse("2024-03-01"))

	ClearDate(tk)
	assert.Nil(t, tk.Time)
	assert.Equal(t, TypeTodo, tk.Type)
}

func TestNormalize(t *testing.T) {
	tm := clock.MustParse("10:00")
	tk := &Task{ID: "a", Text: "x", Time: &tm, Type: TypeScheduled}

	assert.True(t, Normalize(tk))
	assert.Nil(t, tk.Time)
	assert.Equal(t, TypeTodo, tk.Type)
	assert.False(t, Normalize(tk))
}

func TestClone_IsDeep(t *testing.T) {
	tk := &Task{ID: "a", Text: "x"}
	AssignTime(tk, clock.MustParse("07:00"), date.MustParse("2024-03-01"))

	c := tk.Clone()
	AssignTime(c, clock.MustParse("08:00"), date.MustParse("2024-03-02"))
	assert.Equal(t, "07:00", tk.Time.String())
	assert.Equal(t, "08:00", c.Time.String())
}

func TestValidateText(t *testing.T) {
	got, err := ValidateText("  buy milk ")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", got)

	got, err = ValidateText("caf\xe9")
	require.NoError(t, err)
	assert.Equal(t, "caf\uFFFD", got)

	_, err = ValidateText(" \t ")
	assert.Equal(t, clierr.InvalidInput, clierr.CodeOf(err))
}

func TestParseType(t *testing.T) {
	got, err := ParseType("Scheduled")
	require.NoError(t, err)
	assert.Equal(t, TypeScheduled, got)

	_, err = ParseType("weekly")
	assert.Error(t, err)
}

func TestSortByTime_UntimedLastAndStable(t *testing.T) {
	d := date.MustParse("2024-03-01").Ptr()
	at := func(s string) *clock.Time { v := clock.MustParse(s); return &v }

	tasks := []*Task{
		{ID: "u1", Date: d},
		{ID: "b", Date: d, Time: at("10:00")},
		{ID: "a1", Date: d, Time: at("08:00")},
		{ID: "u2", Date: d},
		{ID: "a2", Date: d, Time: at("08:00")},
	}
	SortByTime(tasks)

	ids := make([]string, len(tasks))
	for i, tk := range tasks {
		ids[i] = tk.ID
	}
	assert.Equal(t, []string{"a1", "a2", "b", "u1", "u2"}, ids)
}

func TestSortByDate(t *testing.T) {
	tasks := []*Task{
		{ID: "todo"},
		{ID: "late", Date: date.MustParse("2024-03-02").Ptr()},
		{ID: "early", Date: date.MustParse("2024-03-01").Ptr()},
	}
	SortByDate(tasks)
	assert.Equal(t, "early", tasks[0].ID)
	assert.Equal(t, "late", tasks[1].ID)
	assert.Equal(t, "todo", tasks[2].ID)
}

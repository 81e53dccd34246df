package date

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
)

func TestParse(t *testing.T) {
	d, err := Parse("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.February, d.Month())
	assert.Equal(t, "2024-02-29", d.String())

	_, err = Parse("2023-02-29")
	assert.Equal(t, clierr.InvalidDate, clierr.CodeOf(err))
}

func TestParseRelative(t *testing.T) {
	today := New(2024, time.March, 1)

	got, err := ParseRelative("tomorrow", today)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", got.String())

	got, err = ParseRelative("Yesterday", today)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", got.String())

	got, err = ParseRelative("", today)
	require.NoError(t, err)
	assert.True(t, got.Equal(today))

	got, err = ParseRelative("2025-01-10", today)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-10", got.String())
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, New(2024, time.February, 10).DaysIn())
	assert.Equal(t, 31, New(2024, time.December, 1).DaysIn())
	assert.Equal(t, 30, New(2024, time.April, 30).DaysIn())
}

func TestCompare(t *testing.T) {
	a := New(2024, time.March, 1)
	b := a.AddDays(1)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
	assert.True(t, b.AddDays(-1).Equal(a))
}

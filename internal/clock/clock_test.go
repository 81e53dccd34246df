package clock

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
)

func TestParse(t *testing.T) {
	got, err := Parse("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, got.Minutes())
	assert.Equal(t, "09:30", got.String())

	got, err = Parse("23:59")
	require.NoError(t, err)
	assert.Equal(t, 23, got.Hour())
	assert.Equal(t, 59, got.Minute())
}

func TestParse_Malformed(t *testing.T) {
	for _, in := range []string{"25:61", "24:00", "12:60", "9:30", "09:3", "0930", "09-30", "ab:cd", "", " 09:30", "09:30 "} {
		_, err := Parse(in)
		require.Error(t, err, in)
		assert.Equal(t, clierr.MalformedTime, clierr.CodeOf(err), in)
	}
}

func TestNew(t *testing.T) {
	got, err := New(7, 5)
	require.NoError(t, err)
	assert.Equal(t, "07:05", got.String())

	_, err = New(24, 0)
	assert.Equal(t, clierr.MalformedTime, clierr.CodeOf(err))
}

func TestFromMinutes_Wraps(t *testing.T) {
	assert.Equal(t, "00:00", FromMinutes(MinutesPerDay).String())
	assert.Equal(t, "23:00", FromMinutes(-60).String())
}

func TestJSON(t *testing.T) {
	data, err := json.Marshal(MustParse("18:45"))
	require.NoError(t, err)
	assert.Equal(t, `"18:45"`, string(data))

	var got Time
	require.NoError(t, json.Unmarshal([]byte(`"06:15"`), &got))
	assert.Equal(t, "06:15", got.String())

	assert.Error(t, json.Unmarshal([]byte(`"6:15"`), &got))
}

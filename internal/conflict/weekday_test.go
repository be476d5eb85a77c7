package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDays(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Weekday
	}{
		{name: "single day", input: "M", want: []Weekday{Monday}},
		{name: "monday thursday", input: "M TH", want: []Weekday{Monday, Thursday}},
		{name: "three days", input: "M W F", want: []Weekday{Monday, Wednesday, Friday}},
		{name: "weekend", input: "S SU", want: []Weekday{Saturday, Sunday}},
		{name: "duplicates collapse", input: "T T T", want: []Weekday{Tuesday}},
		{name: "lowercase accepted", input: "m th", want: []Weekday{Monday, Thursday}},
		{name: "extra whitespace", input: "  W   F  ", want: []Weekday{Wednesday, Friday}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			set, err := ParseDays(tc.input)
			require.NoError(t, err)
			assert.Len(t, set, len(tc.want))
			for _, day := range tc.want {
				assert.True(t, set.Contains(day), "expected %s in set", day)
			}
		})
	}
}

func TestParseDaysRejectsUnknownToken(t *testing.T) {
	_, err := ParseDays("M XY F")
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, InvalidDayToken, parseErr.Kind)
	assert.Equal(t, "XY", parseErr.Token)
}

func TestParseDaysRejectsBlankInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := ParseDays(input)
		require.Error(t, err)

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, MissingDays, parseErr.Kind)
	}
}

func TestDaySetCanonicalRoundTrip(t *testing.T) {
	// Re-parsing a set's own serialisation must yield the same set.
	inputs := []string{"F M", "TH T SU", "M T W TH F S SU", "W"}
	for _, input := range inputs {
		first, err := ParseDays(input)
		require.NoError(t, err)

		second, err := ParseDays(first.String())
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, first.String(), second.String())
	}
}

func TestDaySetIntersects(t *testing.T) {
	mwf, err := ParseDays("M W F")
	require.NoError(t, err)
	tth, err := ParseDays("T TH")
	require.NoError(t, err)
	wednesday, err := ParseDays("W")
	require.NoError(t, err)

	assert.False(t, mwf.Intersects(tth))
	assert.False(t, tth.Intersects(mwf))
	assert.True(t, mwf.Intersects(wednesday))
	assert.True(t, wednesday.Intersects(mwf))
}

func TestDaySetStringOrder(t *testing.T) {
	set, err := ParseDays("SU F M")
	require.NoError(t, err)
	assert.Equal(t, "M F SU", set.String())
}

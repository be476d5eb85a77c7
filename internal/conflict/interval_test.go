package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantStart int
		wantEnd   int
	}{
		{name: "late morning", input: "11:00 AM - 12:00 PM", wantStart: 660, wantEnd: 720},
		{name: "midnight start", input: "12:00 AM - 1:00 AM", wantStart: 0, wantEnd: 60},
		{name: "noon start", input: "12:00 PM - 1:30 PM", wantStart: 720, wantEnd: 810},
		{name: "afternoon", input: "2:15 PM - 4:45 PM", wantStart: 855, wantEnd: 1065},
		{name: "morning into afternoon", input: "11:30 AM - 1:00 PM", wantStart: 690, wantEnd: 780},
		{name: "late evening", input: "10:00 PM - 11:59 PM", wantStart: 1320, wantEnd: 1439},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			interval, err := ParseTimeRange(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStart, interval.Start)
			assert.Equal(t, tc.wantEnd, interval.End)
		})
	}
}

func TestParseTimeRangeFailures(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ParseErrorKind
	}{
		{name: "crosses midnight", input: "2:00 PM - 1:00 AM", kind: PMToAMSpan},
		{name: "end before start", input: "2:00 PM - 1:00 PM", kind: EndBeforeOrEqualStart},
		{name: "end equals start", input: "9:00 AM - 9:00 AM", kind: EndBeforeOrEqualStart},
		{name: "missing dash", input: "9:00 AM to 10:00 AM", kind: InvalidTimeFormat},
		{name: "24 hour clock", input: "14:00 PM - 15:00 PM", kind: InvalidTimeFormat},
		{name: "hour zero", input: "0:30 AM - 1:00 AM", kind: InvalidTimeFormat},
		{name: "missing meridiem", input: "9:00 - 10:00", kind: InvalidTimeFormat},
		{name: "empty", input: "", kind: InvalidTimeFormat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTimeRange(tc.input)
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tc.kind, parseErr.Kind)
		})
	}
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{name: "identical", a: Interval{600, 660}, b: Interval{600, 660}, want: true},
		{name: "partial overlap", a: Interval{600, 660}, b: Interval{630, 690}, want: true},
		{name: "containment", a: Interval{600, 720}, b: Interval{630, 660}, want: true},
		{name: "touching endpoints", a: Interval{0, 600}, b: Interval{600, 700}, want: false},
		{name: "disjoint", a: Interval{480, 540}, b: Interval{600, 660}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestIntervalString(t *testing.T) {
	tests := []struct {
		interval Interval
		want     string
	}{
		{Interval{660, 720}, "11:00 AM - 12:00 PM"},
		{Interval{0, 60}, "12:00 AM - 1:00 AM"},
		{Interval{720, 810}, "12:00 PM - 1:30 PM"},
		{Interval{855, 1065}, "2:15 PM - 4:45 PM"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.interval.String())
	}
}

func TestIntervalStringRoundTrip(t *testing.T) {
	interval, err := ParseTimeRange("7:30 AM - 9:00 AM")
	require.NoError(t, err)

	again, err := ParseTimeRange(interval.String())
	require.NoError(t, err)
	assert.Equal(t, interval, again)
}

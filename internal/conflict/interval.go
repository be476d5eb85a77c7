package conflict

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Interval is a half-open meeting time expressed in minutes since midnight.
// Invariant: 0 <= Start < End <= 1440; meetings never span midnight.
type Interval struct {
	Start int
	End   int
}

const minutesPerDay = 24 * 60

var clockPattern = regexp.MustCompile(`^(1[0-2]|[1-9]):([0-5][0-9]) (AM|PM)$`)

// ParseTimeRange parses a 12-hour range such as "11:00 AM - 12:00 PM".
// Ranges whose end is not after their start, or that would cross midnight,
// are rejected with distinct failure kinds.
func ParseTimeRange(input string) (Interval, error) {
	parts := strings.Split(input, "-")
	if len(parts) != 2 {
		return Interval{}, newParseError(InvalidTimeFormat, input)
	}

	start, err := parseClock(strings.TrimSpace(parts[0]))
	if err != nil {
		return Interval{}, newParseError(InvalidTimeFormat, input)
	}
	end, err := parseClock(strings.TrimSpace(parts[1]))
	if err != nil {
		return Interval{}, newParseError(InvalidTimeFormat, input)
	}

	// A PM start with an AM end reads as crossing midnight, which schedules
	// do not allow. Checked before the ordering rule so the caller sees the
	// more specific failure.
	if start >= 12*60 && end < 12*60 {
		return Interval{}, newParseError(PMToAMSpan, input)
	}
	if end <= start {
		return Interval{}, newParseError(EndBeforeOrEqualStart, input)
	}

	return Interval{Start: start, End: end}, nil
}

// parseClock converts "H:MM AM|PM" into minutes since midnight. 12 AM maps
// to 0:00 and 12 PM to 12:00.
func parseClock(s string) (int, error) {
	match := clockPattern.FindStringSubmatch(strings.ToUpper(s))
	if match == nil {
		return 0, fmt.Errorf("malformed clock time %q", s)
	}

	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])

	if hour == 12 {
		hour = 0
	}
	if match[3] == "PM" {
		hour += 12
	}
	return hour*60 + minute, nil
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints do not overlap: a meeting ending at 10:00 does not collide with
// one starting at 10:00.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// String renders the interval back into 12-hour form, e.g. "11:00 AM - 12:00 PM".
func (i Interval) String() string {
	return fmt.Sprintf("%s - %s", formatClock(i.Start), formatClock(i.End))
}

func formatClock(minute int) string {
	minute %= minutesPerDay
	hour := minute / 60
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute%60, meridiem)
}

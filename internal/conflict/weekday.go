package conflict

import "strings"

// Weekday is a canonical day-of-week token. TH disambiguates Thursday from
// T, which means Tuesday.
type Weekday string

const (
	Monday    Weekday = "M"
	Tuesday   Weekday = "T"
	Wednesday Weekday = "W"
	Thursday  Weekday = "TH"
	Friday    Weekday = "F"
	Saturday  Weekday = "S"
	Sunday    Weekday = "SU"
)

// weekOrder fixes the canonical serialisation order of a day set.
var weekOrder = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var validWeekdays = map[Weekday]struct{}{
	Monday:    {},
	Tuesday:   {},
	Wednesday: {},
	Thursday:  {},
	Friday:    {},
	Saturday:  {},
	Sunday:    {},
}

// DaySet is the set of weekdays a section meets on. Order is irrelevant and
// duplicates are collapsed at parse time.
type DaySet map[Weekday]struct{}

// ParseDays parses a whitespace-separated day-code string such as "M TH"
// into a DaySet. Unrecognised tokens and blank input are rejected.
func ParseDays(input string) (DaySet, error) {
	fields := strings.Fields(strings.ToUpper(input))
	if len(fields) == 0 {
		return nil, newParseError(MissingDays, input)
	}

	set := make(DaySet, len(fields))
	for _, field := range fields {
		day := Weekday(field)
		if _, ok := validWeekdays[day]; !ok {
			return nil, newParseError(InvalidDayToken, field)
		}
		set[day] = struct{}{}
	}
	return set, nil
}

// Contains reports whether the set includes the given weekday.
func (s DaySet) Contains(day Weekday) bool {
	_, ok := s[day]
	return ok
}

// Intersects reports whether the two sets share at least one weekday.
func (s DaySet) Intersects(other DaySet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for day := range small {
		if _, ok := large[day]; ok {
			return true
		}
	}
	return false
}

// String serialises the set in canonical Monday-first order, e.g. "M W F".
func (s DaySet) String() string {
	tokens := make([]string, 0, len(s))
	for _, day := range weekOrder {
		if s.Contains(day) {
			tokens = append(tokens, string(day))
		}
	}
	return strings.Join(tokens, " ")
}

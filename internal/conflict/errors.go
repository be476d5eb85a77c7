package conflict

import "fmt"

// ParseErrorKind enumerates the distinct input-validation failures raised
// while normalising a candidate's day and time strings.
type ParseErrorKind string

const (
	// InvalidDayToken marks an unrecognised day code in the input.
	InvalidDayToken ParseErrorKind = "INVALID_DAY_TOKEN"
	// MissingDays marks an empty or blank day string.
	MissingDays ParseErrorKind = "MISSING_DAYS"
	// InvalidTimeFormat marks a time range that does not match "H:MM AM - H:MM PM".
	InvalidTimeFormat ParseErrorKind = "INVALID_TIME_FORMAT"
	// EndBeforeOrEqualStart marks a range whose end does not come after its start.
	EndBeforeOrEqualStart ParseErrorKind = "END_BEFORE_OR_EQUAL_START"
	// PMToAMSpan marks a range that would cross midnight; meetings are same-day only.
	PMToAMSpan ParseErrorKind = "PM_TO_AM_SPAN"
)

// ParseError describes why a day or time string was rejected.
type ParseError struct {
	Kind  ParseErrorKind
	Token string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case InvalidDayToken:
		return fmt.Sprintf("unrecognised day token %q", e.Token)
	case MissingDays:
		return "day string is empty"
	case InvalidTimeFormat:
		return fmt.Sprintf("time range %q does not match H:MM AM - H:MM PM", e.Token)
	case EndBeforeOrEqualStart:
		return "end time must be after start time"
	case PMToAMSpan:
		return "time range may not cross midnight"
	default:
		return string(e.Kind)
	}
}

func newParseError(kind ParseErrorKind, token string) *ParseError {
	return &ParseError{Kind: kind, Token: token}
}

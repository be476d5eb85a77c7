package conflict

import (
	"fmt"
	"strings"
)

// FormatMessage renders a Result into the human-readable detail message shown
// to the scheduler. Room conflicts are listed first, each group as a numbered
// list. The empty string is returned when there is nothing to report; no
// conflict detection is re-derived here.
func FormatMessage(result Result) string {
	if !result.HasConflict {
		return ""
	}

	var rooms, faculty []Record
	for _, record := range result.Conflicts {
		switch record.Type {
		case RoomConflict:
			rooms = append(rooms, record)
		case FacultyConflict:
			faculty = append(faculty, record)
		}
	}

	var b strings.Builder
	if len(rooms) > 0 {
		b.WriteString("Room Conflicts:\n")
		for i, record := range rooms {
			fmt.Fprintf(&b, "%d. %s %s in room %s\n", i+1, record.Course, record.Section, record.Room)
		}
	}
	if len(faculty) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Faculty Conflicts:\n")
		for i, record := range faculty {
			fmt.Fprintf(&b, "%d. %s %s (%s)\n", i+1, record.Course, record.Section, record.Schedule)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDays(t *testing.T, input string) DaySet {
	t.Helper()
	set, err := ParseDays(input)
	require.NoError(t, err)
	return set
}

func mustTime(t *testing.T, input string) Interval {
	t.Helper()
	interval, err := ParseTimeRange(input)
	require.NoError(t, err)
	return interval
}

// sectionA is the fixture most scenarios check against: room 301, M/W
// 10:00-11:00, taught by F1.
func sectionA(t *testing.T) Section {
	t.Helper()
	return Section{
		ID:           "sec-a",
		CourseCode:   "CS101",
		SectionLabel: "A",
		Type:         Lecture,
		RoomID:       "301",
		FacultyID:    "F1",
		Days:         mustDays(t, "M W"),
		Time:         mustTime(t, "10:00 AM - 11:00 AM"),
	}
}

func TestCheckRoomConflict(t *testing.T) {
	corpus := []Section{sectionA(t)}
	candidate := Candidate{
		RoomID:    "301",
		FacultyID: "F2",
		Days:      mustDays(t, "M"),
		Time:      mustTime(t, "10:30 AM - 11:30 AM"),
	}

	result := Check(candidate, corpus)
	require.True(t, result.HasConflict)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, RoomConflict, result.Conflicts[0].Type)
	assert.Equal(t, "CS101", result.Conflicts[0].Course)
	assert.Equal(t, "A", result.Conflicts[0].Section)
	assert.Equal(t, "301", result.Conflicts[0].Room)
}

func TestCheckFacultyConflict(t *testing.T) {
	corpus := []Section{sectionA(t)}
	candidate := Candidate{
		RoomID:    "305",
		FacultyID: "F1",
		Days:      mustDays(t, "W"),
		Time:      mustTime(t, "10:15 AM - 10:45 AM"),
	}

	result := Check(candidate, corpus)
	require.True(t, result.HasConflict)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, FacultyConflict, result.Conflicts[0].Type)
	assert.Equal(t, "M W 10:00 AM - 11:00 AM", result.Conflicts[0].Schedule)
}

func TestCheckNoSharedDay(t *testing.T) {
	corpus := []Section{sectionA(t)}
	candidate := Candidate{
		RoomID:    "301",
		FacultyID: "F1",
		Days:      mustDays(t, "T"),
		Time:      mustTime(t, "10:00 AM - 11:00 AM"),
	}

	result := Check(candidate, corpus)
	assert.False(t, result.HasConflict)
	assert.Empty(t, result.Conflicts)
}

func TestCheckTouchingTimesDoNotConflict(t *testing.T) {
	corpus := []Section{sectionA(t)}
	candidate := Candidate{
		RoomID:    "301",
		FacultyID: "F1",
		Days:      mustDays(t, "M"),
		Time:      mustTime(t, "11:00 AM - 12:00 PM"),
	}

	result := Check(candidate, corpus)
	assert.False(t, result.HasConflict)
}

func TestCheckBothConflictTypesForOneSection(t *testing.T) {
	corpus := []Section{sectionA(t)}
	candidate := Candidate{
		RoomID:    "301",
		FacultyID: "F1",
		Days:      mustDays(t, "M W"),
		Time:      mustTime(t, "10:00 AM - 11:00 AM"),
	}

	result := Check(candidate, corpus)
	require.True(t, result.HasConflict)
	require.Len(t, result.Conflicts, 2)
	assert.Equal(t, RoomConflict, result.Conflicts[0].Type)
	assert.Equal(t, FacultyConflict, result.Conflicts[1].Type)
}

func TestCheckExcludesSectionBeingEdited(t *testing.T) {
	existing := sectionA(t)
	candidate := Candidate{
		RoomID:           existing.RoomID,
		FacultyID:        existing.FacultyID,
		Days:             existing.Days,
		Time:             existing.Time,
		ExcludeSectionID: existing.ID,
	}

	result := Check(candidate, []Section{existing})
	assert.False(t, result.HasConflict)
}

func TestCheckNoFacultyConflictWhenEitherSideUnassigned(t *testing.T) {
	unassigned := sectionA(t)
	unassigned.FacultyID = ""
	corpus := []Section{unassigned}

	// Candidate with a faculty id against an unassigned section.
	withFaculty := Candidate{
		RoomID:    "999",
		FacultyID: "F1",
		Days:      mustDays(t, "M"),
		Time:      mustTime(t, "10:00 AM - 11:00 AM"),
	}
	assert.False(t, Check(withFaculty, corpus).HasConflict)

	// Candidate without a faculty id; the room path still catches a
	// same-room collision.
	sameRoom := Candidate{
		RoomID: "301",
		Days:   mustDays(t, "M"),
		Time:   mustTime(t, "10:00 AM - 11:00 AM"),
	}
	result := Check(sameRoom, corpus)
	require.True(t, result.HasConflict)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, RoomConflict, result.Conflicts[0].Type)
}

func TestCheckNoRoomConflictForRoomlessDraft(t *testing.T) {
	corpus := []Section{sectionA(t)}
	draft := Candidate{
		FacultyID: "F2",
		Days:      mustDays(t, "M"),
		Time:      mustTime(t, "10:00 AM - 11:00 AM"),
	}
	assert.False(t, Check(draft, corpus).HasConflict)
}

func TestCheckReportsCorpusOrder(t *testing.T) {
	first := sectionA(t)
	second := sectionA(t)
	second.ID = "sec-b"
	second.CourseCode = "MATH201"
	second.SectionLabel = "B"

	candidate := Candidate{
		RoomID:    "301",
		FacultyID: "F9",
		Days:      mustDays(t, "M"),
		Time:      mustTime(t, "10:00 AM - 11:00 AM"),
	}

	result := Check(candidate, []Section{first, second})
	require.Len(t, result.Conflicts, 2)
	assert.Equal(t, "CS101", result.Conflicts[0].Course)
	assert.Equal(t, "MATH201", result.Conflicts[1].Course)
}

func TestCheckIsDeterministic(t *testing.T) {
	corpus := []Section{sectionA(t)}
	candidate := Candidate{
		RoomID:    "301",
		FacultyID: "F1",
		Days:      mustDays(t, "M"),
		Time:      mustTime(t, "10:30 AM - 11:30 AM"),
	}

	first := Check(candidate, corpus)
	second := Check(candidate, corpus)
	assert.Equal(t, first, second)
}

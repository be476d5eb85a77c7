package models

import (
	"time"

	"github.com/campusatlas/scheduling-api/internal/conflict"
)

// Section represents one scheduled meeting of a course section as persisted.
// Day and TimeSlot keep the operator-entered strings ("M TH",
// "10:00 AM - 11:00 AM"); they are parsed into canonical form at the service
// boundary and never re-parsed downstream.
type Section struct {
	ID           string    `db:"id" json:"id"`
	CourseID     string    `db:"course_id" json:"course_id"`
	CourseCode   string    `db:"course_code" json:"course_code"`
	SectionLabel string    `db:"section_label" json:"section_label"`
	Type         string    `db:"type" json:"type"`
	RoomID       string    `db:"room_id" json:"room_id"`
	FacultyID    *string   `db:"faculty_id" json:"faculty_id,omitempty"`
	Day          string    `db:"day" json:"day"`
	TimeSlot     string    `db:"time_slot" json:"time_slot"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// SectionFilter describes query params for listing sections.
type SectionFilter struct {
	CourseID  string
	RoomID    string
	FacultyID string
	Day       string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// SectionConflictError is returned when a candidate section collides with
// existing ones. Details carries the formatted per-section message.
type SectionConflictError struct {
	Message string          `json:"message"`
	Details string          `json:"details"`
	Result  conflict.Result `json:"result"`
}

// Error implements the error interface for conflict errors.
func (e *SectionConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

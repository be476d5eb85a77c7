package conflict

// SectionType distinguishes lecture and laboratory meetings. It is
// informational only and plays no part in conflict rules.
type SectionType string

const (
	Lecture    SectionType = "LECTURE"
	Laboratory SectionType = "LABORATORY"
)

// Section is one scheduled meeting of a course section, already normalised
// into a canonical day set and minute interval.
type Section struct {
	ID           string
	CourseCode   string
	SectionLabel string
	Type         SectionType
	RoomID       string
	FacultyID    string // empty when no instructor is assigned
	Days         DaySet
	Time         Interval
}

// Candidate is the section assignment being validated against the corpus.
// ExcludeSectionID skips the record being edited so a section never
// conflicts with itself.
type Candidate struct {
	RoomID           string
	FacultyID        string
	Days             DaySet
	Time             Interval
	ExcludeSectionID string
}

// RecordType tags a conflict record as a room or faculty collision.
type RecordType string

const (
	RoomConflict    RecordType = "room"
	FacultyConflict RecordType = "faculty"
)

// Record is one reported collision between the candidate and an existing
// section. Course, Section, Room and Schedule describe the existing section.
type Record struct {
	Type     RecordType `json:"type"`
	Course   string     `json:"course"`
	Section  string     `json:"section"`
	Room     string     `json:"room"`
	Schedule string     `json:"schedule"`
}

// Result aggregates every collision found for a candidate.
type Result struct {
	HasConflict bool     `json:"has_conflict"`
	Conflicts   []Record `json:"conflicts,omitempty"`
}

// Check scans the corpus in order and records a room conflict for every
// existing section sharing the candidate's room, and a faculty conflict for
// every section sharing its instructor, whenever the two meet on a common
// day with overlapping times. One section can yield both records. The scan
// is pure: identical inputs always produce the identical result.
func Check(candidate Candidate, corpus []Section) Result {
	var records []Record

	for _, s := range corpus {
		if candidate.ExcludeSectionID != "" && s.ID == candidate.ExcludeSectionID {
			continue
		}
		if !s.Days.Intersects(candidate.Days) {
			continue
		}
		if !s.Time.Overlaps(candidate.Time) {
			continue
		}

		if candidate.RoomID != "" && s.RoomID == candidate.RoomID {
			records = append(records, newRecord(RoomConflict, s))
		}
		if candidate.FacultyID != "" && s.FacultyID == candidate.FacultyID {
			records = append(records, newRecord(FacultyConflict, s))
		}
	}

	return Result{HasConflict: len(records) > 0, Conflicts: records}
}

func newRecord(kind RecordType, s Section) Record {
	return Record{
		Type:     kind,
		Course:   s.CourseCode,
		Section:  s.SectionLabel,
		Room:     s.RoomID,
		Schedule: s.Days.String() + " " + s.Time.String(),
	}
}

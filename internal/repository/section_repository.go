package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusatlas/scheduling-api/internal/models"
)

const sectionColumns = "id, course_id, course_code, section_label, type, room_id, faculty_id, day, time_slot, created_at, updated_at"

// SectionRepository provides persistence for class sections.
type SectionRepository struct {
	db *sqlx.DB
}

// NewSectionRepository creates a new section repository.
func NewSectionRepository(db *sqlx.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

// List returns sections with optional filtering and pagination.
func (r *SectionRepository) List(ctx context.Context, filter models.SectionFilter) ([]models.Section, int, error) {
	base := "FROM sections WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.CourseID != "" {
		conditions = append(conditions, fmt.Sprintf("course_id = $%d", len(args)+1))
		args = append(args, filter.CourseID)
	}
	if filter.RoomID != "" {
		conditions = append(conditions, fmt.Sprintf("room_id = $%d", len(args)+1))
		args = append(args, filter.RoomID)
	}
	if filter.FacultyID != "" {
		conditions = append(conditions, fmt.Sprintf("faculty_id = $%d", len(args)+1))
		args = append(args, filter.FacultyID)
	}
	if filter.Day != "" {
		conditions = append(conditions, fmt.Sprintf("day = $%d", len(args)+1))
		args = append(args, filter.Day)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"course_code": true,
		"room_id":     true,
		"day":         true,
		"created_at":  true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "course_code"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", sectionColumns, base, sortBy, order, size, offset)
	var sections []models.Section
	if err := r.db.SelectContext(ctx, &sections, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list sections: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count sections: %w", err)
	}

	return sections, total, nil
}

// ListAll returns the full section corpus for conflict checking.
func (r *SectionRepository) ListAll(ctx context.Context) ([]models.Section, error) {
	query := fmt.Sprintf("SELECT %s FROM sections ORDER BY created_at ASC", sectionColumns)
	var sections []models.Section
	if err := r.db.SelectContext(ctx, &sections, query); err != nil {
		return nil, fmt.Errorf("list section corpus: %w", err)
	}
	return sections, nil
}

// ListByRoom returns sections meeting in a room ordered by day and time.
func (r *SectionRepository) ListByRoom(ctx context.Context, roomID string) ([]models.Section, error) {
	query := fmt.Sprintf("SELECT %s FROM sections WHERE room_id = $1 ORDER BY day ASC, time_slot ASC", sectionColumns)
	var sections []models.Section
	if err := r.db.SelectContext(ctx, &sections, query, roomID); err != nil {
		return nil, fmt.Errorf("list sections by room: %w", err)
	}
	return sections, nil
}

// ListByFaculty returns sections taught by an instructor.
func (r *SectionRepository) ListByFaculty(ctx context.Context, facultyID string) ([]models.Section, error) {
	query := fmt.Sprintf("SELECT %s FROM sections WHERE faculty_id = $1 ORDER BY day ASC, time_slot ASC", sectionColumns)
	var sections []models.Section
	if err := r.db.SelectContext(ctx, &sections, query, facultyID); err != nil {
		return nil, fmt.Errorf("list sections by faculty: %w", err)
	}
	return sections, nil
}

// FindByID loads a section by id.
func (r *SectionRepository) FindByID(ctx context.Context, id string) (*models.Section, error) {
	query := fmt.Sprintf("SELECT %s FROM sections WHERE id = $1", sectionColumns)
	var section models.Section
	if err := r.db.GetContext(ctx, &section, query, id); err != nil {
		return nil, err
	}
	return &section, nil
}

// Create stores a new section record.
func (r *SectionRepository) Create(ctx context.Context, section *models.Section) error {
	if section.ID == "" {
		section.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if section.CreatedAt.IsZero() {
		section.CreatedAt = now
	}
	section.UpdatedAt = now

	const query = `INSERT INTO sections (id, course_id, course_code, section_label, type, room_id, faculty_id, day, time_slot, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	if _, err := r.db.ExecContext(ctx, query,
		section.ID, section.CourseID, section.CourseCode, section.SectionLabel, section.Type,
		section.RoomID, section.FacultyID, section.Day, section.TimeSlot,
		section.CreatedAt, section.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create section: %w", err)
	}
	return nil
}

// Update replaces an existing section record.
func (r *SectionRepository) Update(ctx context.Context, section *models.Section) error {
	section.UpdatedAt = time.Now().UTC()

	const query = `UPDATE sections SET course_id = $2, course_code = $3, section_label = $4, type = $5, room_id = $6, faculty_id = $7, day = $8, time_slot = $9, updated_at = $10 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query,
		section.ID, section.CourseID, section.CourseCode, section.SectionLabel, section.Type,
		section.RoomID, section.FacultyID, section.Day, section.TimeSlot, section.UpdatedAt,
	); err != nil {
		return fmt.Errorf("update section: %w", err)
	}
	return nil
}

// Delete removes a section by id.
func (r *SectionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sections WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusatlas/scheduling-api/internal/conflict"
	"github.com/campusatlas/scheduling-api/internal/models"
	appErrors "github.com/campusatlas/scheduling-api/pkg/errors"
)

type sectionRepository interface {
	List(ctx context.Context, filter models.SectionFilter) ([]models.Section, int, error)
	ListAll(ctx context.Context) ([]models.Section, error)
	ListByRoom(ctx context.Context, roomID string) ([]models.Section, error)
	ListByFaculty(ctx context.Context, facultyID string) ([]models.Section, error)
	FindByID(ctx context.Context, id string) (*models.Section, error)
	Create(ctx context.Context, section *models.Section) error
	Update(ctx context.Context, section *models.Section) error
	Delete(ctx context.Context, id string) error
}

type sectionCourseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type sectionRoomReader interface {
	FindByID(ctx context.Context, id string) (*models.Room, error)
}

type sectionFacultyReader interface {
	FindByID(ctx context.Context, id string) (*models.Faculty, error)
}

type sectionAuditWriter interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// CheckSectionRequest describes a candidate assignment to validate without
// persisting anything.
type CheckSectionRequest struct {
	RoomID           string `json:"room_id" validate:"required"`
	FacultyID        string `json:"faculty_id"`
	Day              string `json:"day" validate:"required"`
	TimeSlot         string `json:"time_slot" validate:"required"`
	ExcludeSectionID string `json:"exclude_section_id"`
}

// CheckSectionResult is the outcome of a conflict check. Details is empty
// when there is no conflict.
type CheckSectionResult struct {
	HasConflict bool              `json:"has_conflict"`
	Details     string            `json:"details,omitempty"`
	Conflicts   []conflict.Record `json:"conflicts,omitempty"`
}

// CreateSectionRequest describes payload for creating a section. ActorID
// identifies the admin performing the change for the audit trail.
type CreateSectionRequest struct {
	CourseID     string `json:"course_id" validate:"required"`
	SectionLabel string `json:"section_label" validate:"required"`
	Type         string `json:"type" validate:"required,oneof=LECTURE LABORATORY"`
	RoomID       string `json:"room_id" validate:"required"`
	FacultyID    string `json:"faculty_id"`
	Day          string `json:"day" validate:"required"`
	TimeSlot     string `json:"time_slot" validate:"required"`
	ActorID      string `json:"-"`
}

// UpdateSectionRequest replaces an existing section in full.
type UpdateSectionRequest struct {
	CourseID     string `json:"course_id" validate:"required"`
	SectionLabel string `json:"section_label" validate:"required"`
	Type         string `json:"type" validate:"required,oneof=LECTURE LABORATORY"`
	RoomID       string `json:"room_id" validate:"required"`
	FacultyID    string `json:"faculty_id"`
	Day          string `json:"day" validate:"required"`
	TimeSlot     string `json:"time_slot" validate:"required"`
	ActorID      string `json:"-"`
}

// SectionService coordinates section scheduling: it normalises candidate
// day/time strings, runs the conflict engine against the stored corpus, and
// persists sections that pass.
type SectionService struct {
	repo      sectionRepository
	courses   sectionCourseReader
	rooms     sectionRoomReader
	faculty   sectionFacultyReader
	audit     sectionAuditWriter
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSectionService instantiates SectionService. The audit writer and
// metrics service are optional.
func NewSectionService(repo sectionRepository, courses sectionCourseReader, rooms sectionRoomReader, faculty sectionFacultyReader, audit sectionAuditWriter, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *SectionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SectionService{repo: repo, courses: courses, rooms: rooms, faculty: faculty, audit: audit, metrics: metrics, validator: validate, logger: logger}
}

// List returns sections with pagination metadata.
func (s *SectionService) List(ctx context.Context, filter models.SectionFilter) ([]models.Section, *models.Pagination, error) {
	sections, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sections")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return sections, pagination, nil
}

// ListByRoom returns sections meeting in a room.
func (s *SectionService) ListByRoom(ctx context.Context, roomID string) ([]models.Section, error) {
	sections, err := s.repo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list room sections")
	}
	return sections, nil
}

// ListByFaculty returns sections taught by an instructor.
func (s *SectionService) ListByFaculty(ctx context.Context, facultyID string) ([]models.Section, error) {
	sections, err := s.repo.ListByFaculty(ctx, facultyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faculty sections")
	}
	return sections, nil
}

// Get returns one section by id.
func (s *SectionService) Get(ctx context.Context, id string) (*models.Section, error) {
	section, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section")
	}
	return section, nil
}

// CheckConflict runs the conflict engine for a candidate without persisting.
// A conflicting result is a normal outcome here, never an error.
func (s *SectionService) CheckConflict(ctx context.Context, req CheckSectionRequest) (*CheckSectionResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid conflict check payload")
	}

	candidate, err := s.buildCandidate(req.RoomID, req.FacultyID, req.Day, req.TimeSlot, req.ExcludeSectionID)
	if err != nil {
		return nil, err
	}

	result, err := s.runCheck(ctx, candidate)
	if err != nil {
		return nil, err
	}

	return &CheckSectionResult{
		HasConflict: result.HasConflict,
		Details:     conflict.FormatMessage(result),
		Conflicts:   result.Conflicts,
	}, nil
}

// Create inserts a new section after conflict detection.
func (s *SectionService) Create(ctx context.Context, req CreateSectionRequest) (*models.Section, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid section payload")
	}

	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	if err := s.verifyAssignees(ctx, req.RoomID, req.FacultyID); err != nil {
		return nil, err
	}

	candidate, err := s.buildCandidate(req.RoomID, req.FacultyID, req.Day, req.TimeSlot, "")
	if err != nil {
		return nil, err
	}

	if err := s.ensureNoConflict(ctx, candidate); err != nil {
		return nil, err
	}

	section := models.Section{
		CourseID:     course.ID,
		CourseCode:   course.Code,
		SectionLabel: req.SectionLabel,
		Type:         req.Type,
		RoomID:       req.RoomID,
		FacultyID:    optionalID(req.FacultyID),
		Day:          candidate.Days.String(),
		TimeSlot:     candidate.Time.String(),
	}

	if err := s.repo.Create(ctx, &section); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create section")
	}
	s.recordAudit(ctx, req.ActorID, models.AuditActionSectionCreate, section.ID, &section)
	return &section, nil
}

// Update replaces an existing section, excluding it from its own check.
func (s *SectionService) Update(ctx context.Context, id string, req UpdateSectionRequest) (*models.Section, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid section payload")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section")
	}

	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	if err := s.verifyAssignees(ctx, req.RoomID, req.FacultyID); err != nil {
		return nil, err
	}

	candidate, err := s.buildCandidate(req.RoomID, req.FacultyID, req.Day, req.TimeSlot, existing.ID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNoConflict(ctx, candidate); err != nil {
		return nil, err
	}

	updated := models.Section{
		ID:           existing.ID,
		CourseID:     course.ID,
		CourseCode:   course.Code,
		SectionLabel: req.SectionLabel,
		Type:         req.Type,
		RoomID:       req.RoomID,
		FacultyID:    optionalID(req.FacultyID),
		Day:          candidate.Days.String(),
		TimeSlot:     candidate.Time.String(),
		CreatedAt:    existing.CreatedAt,
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update section")
	}
	s.recordAudit(ctx, req.ActorID, models.AuditActionSectionUpdate, updated.ID, &updated)
	return &updated, nil
}

// Delete removes a section.
func (s *SectionService) Delete(ctx context.Context, id, actorID string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "section not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete section")
	}
	s.recordAudit(ctx, actorID, models.AuditActionSectionDelete, existing.ID, existing)
	return nil
}

// recordAudit writes an audit row for a section mutation. Audit failures are
// logged, never surfaced; the mutation itself already succeeded.
func (s *SectionService) recordAudit(ctx context.Context, actorID, action, sectionID string, section *models.Section) {
	if s.audit == nil {
		return
	}
	values, err := json.Marshal(section)
	if err != nil {
		values = nil
	}
	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     optionalID(actorID),
		Action:     action,
		Resource:   "sections",
		ResourceID: &sectionID,
		NewValues:  values,
	}); err != nil {
		s.logger.Warn("failed to record section audit log",
			zap.String("section_id", sectionID), zap.String("action", action), zap.Error(err))
	}
}

// buildCandidate parses the operator-entered day and time strings once at
// the boundary. Parse failures surface as validation errors before any
// corpus fetch happens.
func (s *SectionService) buildCandidate(roomID, facultyID, day, timeSlot, excludeID string) (conflict.Candidate, error) {
	days, err := conflict.ParseDays(day)
	if err != nil {
		return conflict.Candidate{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	interval, err := conflict.ParseTimeRange(timeSlot)
	if err != nil {
		return conflict.Candidate{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	return conflict.Candidate{
		RoomID:           roomID,
		FacultyID:        facultyID,
		Days:             days,
		Time:             interval,
		ExcludeSectionID: excludeID,
	}, nil
}

// runCheck fetches the corpus and runs the pure engine. A failed fetch means
// conflict status is unknown; the caller must not treat it as no-conflict.
func (s *SectionService) runCheck(ctx context.Context, candidate conflict.Candidate) (conflict.Result, error) {
	start := time.Now()
	stored, err := s.repo.ListAll(ctx)
	s.metrics.ObserveDBQuery("sections_list_all", time.Since(start))
	if err != nil {
		s.logger.Error("section corpus fetch failed", zap.Error(err))
		return conflict.Result{}, appErrors.Wrap(err, appErrors.ErrRepositoryUnavailable.Code, appErrors.ErrRepositoryUnavailable.Status, "failed to fetch section corpus")
	}

	corpus := make([]conflict.Section, 0, len(stored))
	for _, row := range stored {
		section, err := corpusSection(row)
		if err != nil {
			// A stored section that no longer parses is data corruption.
			// Skipping it could hide a real conflict, so the check aborts.
			s.logger.Error("stored section failed to parse",
				zap.String("section_id", row.ID), zap.Error(err))
			return conflict.Result{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
				fmt.Sprintf("stored section %s has an invalid schedule", row.ID))
		}
		corpus = append(corpus, section)
	}

	return conflict.Check(candidate, corpus), nil
}

func (s *SectionService) ensureNoConflict(ctx context.Context, candidate conflict.Candidate) error {
	result, err := s.runCheck(ctx, candidate)
	if err != nil {
		return err
	}
	if !result.HasConflict {
		return nil
	}

	details := conflict.FormatMessage(result)
	domainErr := &models.SectionConflictError{
		Message: "section conflicts with existing schedule",
		Details: details,
		Result:  result,
	}
	return appErrors.Wrap(domainErr, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status,
		fmt.Sprintf("schedule conflict: %s", strings.ReplaceAll(details, "\n", " ")))
}

func (s *SectionService) verifyAssignees(ctx context.Context, roomID, facultyID string) error {
	if _, err := s.rooms.FindByID(ctx, roomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}
	if facultyID != "" {
		if _, err := s.faculty.FindByID(ctx, facultyID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
		}
	}
	return nil
}

// corpusSection normalises a stored row into the engine's canonical form.
func corpusSection(row models.Section) (conflict.Section, error) {
	days, err := conflict.ParseDays(row.Day)
	if err != nil {
		return conflict.Section{}, err
	}
	interval, err := conflict.ParseTimeRange(row.TimeSlot)
	if err != nil {
		return conflict.Section{}, err
	}
	facultyID := ""
	if row.FacultyID != nil {
		facultyID = *row.FacultyID
	}
	return conflict.Section{
		ID:           row.ID,
		CourseCode:   row.CourseCode,
		SectionLabel: row.SectionLabel,
		Type:         conflict.SectionType(row.Type),
		RoomID:       row.RoomID,
		FacultyID:    facultyID,
		Days:         days,
		Time:         interval,
	}, nil
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusatlas/scheduling-api/internal/models"
	"github.com/campusatlas/scheduling-api/internal/service"
)

type fakeSectionRepo struct {
	sections []models.Section
	created  *models.Section
}

func (f *fakeSectionRepo) List(ctx context.Context, filter models.SectionFilter) ([]models.Section, int, error) {
	return f.sections, len(f.sections), nil
}

func (f *fakeSectionRepo) ListAll(ctx context.Context) ([]models.Section, error) {
	return f.sections, nil
}

func (f *fakeSectionRepo) ListByRoom(ctx context.Context, roomID string) ([]models.Section, error) {
	return f.sections, nil
}

func (f *fakeSectionRepo) ListByFaculty(ctx context.Context, facultyID string) ([]models.Section, error) {
	return f.sections, nil
}

func (f *fakeSectionRepo) FindByID(ctx context.Context, id string) (*models.Section, error) {
	for i := range f.sections {
		if f.sections[i].ID == id {
			return &f.sections[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeSectionRepo) Create(ctx context.Context, section *models.Section) error {
	f.created = section
	f.sections = append(f.sections, *section)
	return nil
}

func (f *fakeSectionRepo) Update(ctx context.Context, section *models.Section) error {
	return nil
}

func (f *fakeSectionRepo) Delete(ctx context.Context, id string) error {
	return nil
}

type fakeCourseReader struct{}

func (fakeCourseReader) FindByID(ctx context.Context, id string) (*models.Course, error) {
	return &models.Course{ID: id, Code: "CS101"}, nil
}

type fakeRoomReader struct{}

func (fakeRoomReader) FindByID(ctx context.Context, id string) (*models.Room, error) {
	return &models.Room{ID: id, Number: "301"}, nil
}

type fakeFacultyReader struct{}

func (fakeFacultyReader) FindByID(ctx context.Context, id string) (*models.Faculty, error) {
	return &models.Faculty{ID: id}, nil
}

func scheduledSection() models.Section {
	return models.Section{
		ID:           "s1",
		CourseID:     "c1",
		CourseCode:   "CS101",
		SectionLabel: "A",
		Type:         "LECTURE",
		RoomID:       "room-301",
		Day:          "M W",
		TimeSlot:     "10:00 AM - 11:00 AM",
	}
}

func newSectionRouter(repo *fakeSectionRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewSectionService(repo, fakeCourseReader{}, fakeRoomReader{}, fakeFacultyReader{}, nil, nil, nil, nil)
	h := NewSectionHandler(svc, nil)

	r := gin.New()
	r.POST("/sections/check", h.Check)
	r.POST("/sections", h.Create)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	return rec
}

func TestSectionHandlerCheckReportsRoomConflict(t *testing.T) {
	repo := &fakeSectionRepo{sections: []models.Section{scheduledSection()}}
	r := newSectionRouter(repo)

	rec := postJSON(t, r, "/sections/check", service.CheckSectionRequest{
		RoomID:   "room-301",
		Day:      "M",
		TimeSlot: "10:30 AM - 11:30 AM",
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data service.CheckSectionResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.HasConflict)
	assert.Contains(t, envelope.Data.Details, "Room Conflicts:")
	require.Len(t, envelope.Data.Conflicts, 1)
	assert.Equal(t, "room-301", envelope.Data.Conflicts[0].Room)
}

func TestSectionHandlerCheckClearScheduleReturnsOK(t *testing.T) {
	repo := &fakeSectionRepo{sections: []models.Section{scheduledSection()}}
	r := newSectionRouter(repo)

	rec := postJSON(t, r, "/sections/check", service.CheckSectionRequest{
		RoomID:   "room-301",
		Day:      "T TH",
		TimeSlot: "10:00 AM - 11:00 AM",
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data service.CheckSectionResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.HasConflict)
	assert.Empty(t, envelope.Data.Details)
}

func TestSectionHandlerCheckMalformedTimeSlot(t *testing.T) {
	r := newSectionRouter(&fakeSectionRepo{})

	rec := postJSON(t, r, "/sections/check", service.CheckSectionRequest{
		RoomID:   "room-301",
		Day:      "M",
		TimeSlot: "10 to 11",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSectionHandlerCreateConflictReturns409(t *testing.T) {
	repo := &fakeSectionRepo{sections: []models.Section{scheduledSection()}}
	r := newSectionRouter(repo)

	rec := postJSON(t, r, "/sections", service.CreateSectionRequest{
		CourseID:     "c2",
		SectionLabel: "B",
		Type:         "LECTURE",
		RoomID:       "room-301",
		Day:          "M",
		TimeSlot:     "10:30 AM - 11:30 AM",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Nil(t, repo.created, "conflicting section must not be persisted")
}

func TestSectionHandlerCreatePersistsClearSchedule(t *testing.T) {
	repo := &fakeSectionRepo{sections: []models.Section{scheduledSection()}}
	r := newSectionRouter(repo)

	rec := postJSON(t, r, "/sections", service.CreateSectionRequest{
		CourseID:     "c2",
		SectionLabel: "B",
		Type:         "LECTURE",
		RoomID:       "room-302",
		Day:          "m w",
		TimeSlot:     "10:00 AM - 11:00 AM",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, repo.created)
	assert.Equal(t, "M W", repo.created.Day, "day set should be stored in canonical form")
}

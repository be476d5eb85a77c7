package handler

import (
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

type fakeRoomRepo struct {
	rooms map[string][]models.Room
}

func (f *fakeRoomRepo) List(ctx context.Context, filter models.RoomFilter) ([]models.Room, int, error) {
	var all []models.Room
	for _, rooms := range f.rooms {
		all = append(all, rooms...)
	}
	return all, len(all), nil
}

func (f *fakeRoomRepo) ListByBuilding(ctx context.Context, buildingID string) ([]models.Room, error) {
	return f.rooms[buildingID], nil
}

func (f *fakeRoomRepo) FindByID(ctx context.Context, id string) (*models.Room, error) {
	for _, rooms := range f.rooms {
		for i := range rooms {
			if rooms[i].ID == id {
				return &rooms[i], nil
			}
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeRoomRepo) Create(ctx context.Context, room *models.Room) error { return nil }

func (f *fakeRoomRepo) Update(ctx context.Context, room *models.Room) error { return nil }

func (f *fakeRoomRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeBuildingReader struct{}

func (fakeBuildingReader) FindByID(ctx context.Context, id string) (*models.Building, error) {
	if id == "missing" {
		return nil, sql.ErrNoRows
	}
	return &models.Building{ID: id, Name: "Engineering Hall"}, nil
}

func newRoomRouter(repo *fakeRoomRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewRoomService(repo, fakeBuildingReader{}, nil, nil, nil)
	h := NewRoomHandler(svc, nil)

	r := gin.New()
	r.GET("/buildings/:id/rooms", h.ByBuilding)
	return r
}

func TestRoomHandlerByBuilding(t *testing.T) {
	repo := &fakeRoomRepo{rooms: map[string][]models.Room{
		"bldg-1": {
			{ID: "room-301", BuildingID: "bldg-1", Number: "301"},
			{ID: "room-302", BuildingID: "bldg-1", Number: "302"},
		},
	}}
	r := newRoomRouter(repo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/buildings/bldg-1/rooms", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []models.Room `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
	assert.Equal(t, "301", envelope.Data[0].Number)
}

func TestRoomHandlerByBuildingUnknownBuilding(t *testing.T) {
	r := newRoomRouter(&fakeRoomRepo{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/buildings/missing/rooms", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

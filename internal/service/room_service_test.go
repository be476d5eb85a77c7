package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusatlas/scheduling-api/internal/models"
	appErrors "github.com/campusatlas/scheduling-api/pkg/errors"
)

type mockRoomRepo struct {
	rooms map[string][]models.Room
}

func (m *mockRoomRepo) List(ctx context.Context, filter models.RoomFilter) ([]models.Room, int, error) {
	var all []models.Room
	for _, rooms := range m.rooms {
		all = append(all, rooms...)
	}
	return all, len(all), nil
}

func (m *mockRoomRepo) ListByBuilding(ctx context.Context, buildingID string) ([]models.Room, error) {
	return m.rooms[buildingID], nil
}

func (m *mockRoomRepo) FindByID(ctx context.Context, id string) (*models.Room, error) {
	for _, rooms := range m.rooms {
		for _, room := range rooms {
			if room.ID == id {
				return &room, nil
			}
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockRoomRepo) Create(ctx context.Context, room *models.Room) error {
	if m.rooms == nil {
		m.rooms = make(map[string][]models.Room)
	}
	m.rooms[room.BuildingID] = append(m.rooms[room.BuildingID], *room)
	return nil
}

func (m *mockRoomRepo) Update(ctx context.Context, room *models.Room) error { return nil }

func (m *mockRoomRepo) Delete(ctx context.Context, id string) error { return nil }

type mockBuildingReader struct{}

func (m *mockBuildingReader) FindByID(ctx context.Context, id string) (*models.Building, error) {
	if id == "missing" {
		return nil, sql.ErrNoRows
	}
	return &models.Building{ID: id, Name: "Engineering Hall"}, nil
}

func TestRoomServiceListByBuilding(t *testing.T) {
	repo := &mockRoomRepo{rooms: map[string][]models.Room{
		"bldg-1": {
			{ID: "room-301", BuildingID: "bldg-1", Number: "301"},
			{ID: "room-302", BuildingID: "bldg-1", Number: "302"},
		},
		"bldg-2": {
			{ID: "room-101", BuildingID: "bldg-2", Number: "101"},
		},
	}}
	svc := NewRoomService(repo, &mockBuildingReader{}, nil, nil, nil)

	rooms, err := svc.ListByBuilding(context.Background(), "bldg-1")
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "room-301", rooms[0].ID)
}

func TestRoomServiceListByBuildingUnknownBuilding(t *testing.T) {
	svc := NewRoomService(&mockRoomRepo{}, &mockBuildingReader{}, nil, nil, nil)

	_, err := svc.ListByBuilding(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRoomServiceListByBuildingEmpty(t *testing.T) {
	svc := NewRoomService(&mockRoomRepo{}, &mockBuildingReader{}, nil, nil, nil)

	rooms, err := svc.ListByBuilding(context.Background(), "bldg-9")
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

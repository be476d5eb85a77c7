package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusatlas/scheduling-api/internal/models"
	appErrors "github.com/campusatlas/scheduling-api/pkg/errors"
)

type roomRepository interface {
	List(ctx context.Context, filter models.RoomFilter) ([]models.Room, int, error)
	ListByBuilding(ctx context.Context, buildingID string) ([]models.Room, error)
	FindByID(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id string) error
}

type roomBuildingReader interface {
	FindByID(ctx context.Context, id string) (*models.Building, error)
}

// CreateRoomRequest describes payload for creating a room.
type CreateRoomRequest struct {
	BuildingID string `json:"building_id" validate:"required"`
	Number     string `json:"number" validate:"required"`
	Floor      int    `json:"floor"`
	Type       string `json:"type" validate:"required,oneof=CLASSROOM LABORATORY OFFICE"`
	Capacity   int    `json:"capacity" validate:"gte=0"`
}

// UpdateRoomRequest updates an existing room.
type UpdateRoomRequest struct {
	BuildingID string `json:"building_id" validate:"required"`
	Number     string `json:"number" validate:"required"`
	Floor      int    `json:"floor"`
	Type       string `json:"type" validate:"required,oneof=CLASSROOM LABORATORY OFFICE"`
	Capacity   int    `json:"capacity" validate:"gte=0"`
}

// RoomService manages rooms within buildings.
type RoomService struct {
	repo      roomRepository
	buildings roomBuildingReader
	cache     mapCache
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoomService instantiates RoomService.
func NewRoomService(repo roomRepository, buildings roomBuildingReader, cache mapCache, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{repo: repo, buildings: buildings, cache: cache, validator: validate, logger: logger}
}

// List returns rooms with pagination metadata.
func (s *RoomService) List(ctx context.Context, filter models.RoomFilter) ([]models.Room, *models.Pagination, error) {
	rooms, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 50
	}
	return rooms, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// ListByBuilding returns every room in a building.
func (s *RoomService) ListByBuilding(ctx context.Context, buildingID string) ([]models.Room, error) {
	if _, err := s.buildings.FindByID(ctx, buildingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "building not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load building")
	}
	rooms, err := s.repo.ListByBuilding(ctx, buildingID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list building rooms")
	}
	return rooms, nil
}

// FindByID returns one room.
func (s *RoomService) FindByID(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}
	return room, nil
}

// Create inserts a new room after verifying its building exists.
func (s *RoomService) Create(ctx context.Context, req CreateRoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}

	if _, err := s.buildings.FindByID(ctx, req.BuildingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "building not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load building")
	}

	room := models.Room{
		BuildingID: req.BuildingID,
		Number:     req.Number,
		Floor:      req.Floor,
		Type:       models.RoomType(req.Type),
		Capacity:   req.Capacity,
	}
	if err := s.repo.Create(ctx, &room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create room")
	}
	s.invalidate(ctx)
	return &room, nil
}

// Update replaces an existing room.
func (s *RoomService) Update(ctx context.Context, id string, req UpdateRoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}

	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.buildings.FindByID(ctx, req.BuildingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "building not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load building")
	}

	updated := models.Room{
		ID:         existing.ID,
		BuildingID: req.BuildingID,
		Number:     req.Number,
		Floor:      req.Floor,
		Type:       models.RoomType(req.Type),
		Capacity:   req.Capacity,
		CreatedAt:  existing.CreatedAt,
	}
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update room")
	}
	s.invalidate(ctx)
	return &updated, nil
}

// Delete removes a room.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete room")
	}
	s.invalidate(ctx)
	return nil
}

func (s *RoomService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "map:*"); err != nil {
		s.logger.Warn("map cache invalidation failed", zap.Error(err))
	}
}

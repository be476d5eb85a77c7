package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusatlas/scheduling-api/internal/models"
	appErrors "github.com/campusatlas/scheduling-api/pkg/errors"
)

const buildingListCacheKey = "map:buildings:all"

type buildingRepository interface {
	List(ctx context.Context, filter models.BuildingFilter) ([]models.Building, int, error)
	FindByID(ctx context.Context, id string) (*models.Building, error)
	Create(ctx context.Context, building *models.Building) error
	Update(ctx context.Context, building *models.Building) error
	Delete(ctx context.Context, id string) error
}

type mapCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CreateBuildingRequest describes payload for creating a building.
type CreateBuildingRequest struct {
	Code        string  `json:"code" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	ImagePath   string  `json:"image_path"`
}

// UpdateBuildingRequest updates an existing building.
type UpdateBuildingRequest struct {
	Code        string  `json:"code" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	ImagePath   string  `json:"image_path"`
}

// BuildingService serves campus-map building data. The unfiltered list is
// the map's main payload and is cached in Redis; every write invalidates it.
type BuildingService struct {
	repo      buildingRepository
	cache     mapCache
	cacheTTL  time.Duration
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBuildingService instantiates BuildingService. The metrics service is
// optional.
func NewBuildingService(repo buildingRepository, cache mapCache, cacheTTL time.Duration, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *BuildingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Minute
	}
	return &BuildingService{repo: repo, cache: cache, cacheTTL: cacheTTL, metrics: metrics, validator: validate, logger: logger}
}

// List returns buildings. The unfiltered first page is served from cache
// when possible; a cache failure falls through to Postgres.
func (s *BuildingService) List(ctx context.Context, filter models.BuildingFilter) ([]models.Building, *models.Pagination, bool, error) {
	cacheable := filter.Search == "" && filter.Page <= 1

	if cacheable && s.cache != nil {
		var cached []models.Building
		if err := s.cache.Get(ctx, buildingListCacheKey, &cached); err == nil {
			pagination := &models.Pagination{Page: 1, PageSize: len(cached), TotalCount: len(cached)}
			return cached, pagination, true, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("building cache read failed", zap.Error(err))
		}
	}

	start := time.Now()
	buildings, total, err := s.repo.List(ctx, filter)
	s.metrics.ObserveDBQuery("buildings_list", time.Since(start))
	if err != nil {
		return nil, nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list buildings")
	}

	if cacheable && s.cache != nil {
		if err := s.cache.Set(ctx, buildingListCacheKey, buildings, s.cacheTTL); err != nil {
			s.logger.Warn("building cache write failed", zap.Error(err))
		}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 50
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return buildings, pagination, false, nil
}

// FindByID returns one building.
func (s *BuildingService) FindByID(ctx context.Context, id string) (*models.Building, error) {
	building, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "building not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load building")
	}
	return building, nil
}

// Create inserts a new building and invalidates the map cache.
func (s *BuildingService) Create(ctx context.Context, req CreateBuildingRequest) (*models.Building, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid building payload")
	}

	building := models.Building{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ImagePath:   req.ImagePath,
	}
	if err := s.repo.Create(ctx, &building); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create building")
	}
	s.invalidate(ctx)
	return &building, nil
}

// Update replaces an existing building and invalidates the map cache.
func (s *BuildingService) Update(ctx context.Context, id string, req UpdateBuildingRequest) (*models.Building, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid building payload")
	}

	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := models.Building{
		ID:          existing.ID,
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ImagePath:   req.ImagePath,
		CreatedAt:   existing.CreatedAt,
	}
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update building")
	}
	s.invalidate(ctx)
	return &updated, nil
}

// Delete removes a building and invalidates the map cache.
func (s *BuildingService) Delete(ctx context.Context, id string) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete building")
	}
	s.invalidate(ctx)
	return nil
}

func (s *BuildingService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "map:buildings*"); err != nil {
		s.logger.Warn("building cache invalidation failed", zap.Error(err))
	}
}

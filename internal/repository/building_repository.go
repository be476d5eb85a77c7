package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusatlas/scheduling-api/internal/models"
)

const buildingColumns = "id, code, name, description, latitude, longitude, image_path, created_at, updated_at"

// BuildingRepository provides persistence for campus buildings.
type BuildingRepository struct {
	db *sqlx.DB
}

// NewBuildingRepository creates a new building repository.
func NewBuildingRepository(db *sqlx.DB) *BuildingRepository {
	return &BuildingRepository{db: db}
}

// List returns buildings, optionally matching a search term on code or name.
func (r *BuildingRepository) List(ctx context.Context, filter models.BuildingFilter) ([]models.Building, int, error) {
	base := "FROM buildings WHERE 1=1"
	var args []interface{}

	if filter.Search != "" {
		base += " AND (code ILIKE $1 OR name ILIKE $1)"
		args = append(args, "%"+filter.Search+"%")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY code ASC LIMIT %d OFFSET %d", buildingColumns, base, size, offset)
	var buildings []models.Building
	if err := r.db.SelectContext(ctx, &buildings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list buildings: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count buildings: %w", err)
	}

	return buildings, total, nil
}

// FindByID loads a building by id.
func (r *BuildingRepository) FindByID(ctx context.Context, id string) (*models.Building, error) {
	query := fmt.Sprintf("SELECT %s FROM buildings WHERE id = $1", buildingColumns)
	var building models.Building
	if err := r.db.GetContext(ctx, &building, query, id); err != nil {
		return nil, err
	}
	return &building, nil
}

// Create stores a new building record.
func (r *BuildingRepository) Create(ctx context.Context, building *models.Building) error {
	if building.ID == "" {
		building.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if building.CreatedAt.IsZero() {
		building.CreatedAt = now
	}
	building.UpdatedAt = now

	const query = `INSERT INTO buildings (id, code, name, description, latitude, longitude, image_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := r.db.ExecContext(ctx, query,
		building.ID, building.Code, building.Name, building.Description,
		building.Latitude, building.Longitude, building.ImagePath,
		building.CreatedAt, building.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create building: %w", err)
	}
	return nil
}

// Update replaces an existing building record.
func (r *BuildingRepository) Update(ctx context.Context, building *models.Building) error {
	building.UpdatedAt = time.Now().UTC()

	const query = `UPDATE buildings SET code = $2, name = $3, description = $4, latitude = $5, longitude = $6, image_path = $7, updated_at = $8 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query,
		building.ID, building.Code, building.Name, building.Description,
		building.Latitude, building.Longitude, building.ImagePath, building.UpdatedAt,
	); err != nil {
		return fmt.Errorf("update building: %w", err)
	}
	return nil
}

// Delete removes a building by id.
func (r *BuildingRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM buildings WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete building: %w", err)
	}
	return nil
}

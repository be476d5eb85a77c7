package models

import "time"

// Building represents one campus-map building with its marker coordinates.
type Building struct {
	ID          string    `db:"id" json:"id"`
	Code        string    `db:"code" json:"code"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Latitude    float64   `db:"latitude" json:"latitude"`
	Longitude   float64   `db:"longitude" json:"longitude"`
	ImagePath   string    `db:"image_path" json:"image_path,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// BuildingFilter captures filtering criteria for listing buildings.
type BuildingFilter struct {
	Search   string
	Page     int
	PageSize int
}

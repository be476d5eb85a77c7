package models

import "time"

// RoomType classifies the use of a room.
type RoomType string

const (
	RoomClassroom  RoomType = "CLASSROOM"
	RoomLaboratory RoomType = "LABORATORY"
	RoomOffice     RoomType = "OFFICE"
)

// Room represents a bookable room inside a building.
type Room struct {
	ID         string    `db:"id" json:"id"`
	BuildingID string    `db:"building_id" json:"building_id"`
	Number     string    `db:"number" json:"number"`
	Floor      int       `db:"floor" json:"floor"`
	Type       RoomType  `db:"type" json:"type"`
	Capacity   int       `db:"capacity" json:"capacity"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// RoomFilter captures filtering criteria for listing rooms.
type RoomFilter struct {
	BuildingID string
	Type       RoomType
	Page       int
	PageSize   int
}

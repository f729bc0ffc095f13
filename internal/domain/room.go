package domain

import (
	"sibiria/internal/pkg/decimal"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "Available"
	RoomOccupied    RoomStatus = "Occupied"
	RoomMaintenance RoomStatus = "Maintenance"
)

type Room struct {
	ID          int64           `json:"id"`
	RoomTypeID  int64           `json:"room_type_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Capacity    int             `json:"capacity"`
	Amenities   []string        `json:"amenities"`
	ImageURLs   []string        `json:"image_urls"`
	Status      RoomStatus      `json:"status"`
}

type RoomType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

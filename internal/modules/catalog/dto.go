package catalog

import "sibiria/internal/pkg/decimal"

type CreateRoomRequest struct {
	RoomTypeID  int64           `json:"room_type_id" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Capacity    int             `json:"capacity" binding:"required,min=1"`
	Amenities   []string        `json:"amenities"`
	ImageURLs   []string        `json:"image_urls"`
}

type UpdateRoomRequest struct {
	RoomTypeID  int64           `json:"room_type_id" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Capacity    int             `json:"capacity" binding:"required,min=1"`
	Amenities   []string        `json:"amenities"`
	ImageURLs   []string        `json:"image_urls"`
}

type CreateRoomTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
}

type UpdateServiceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
}

package catalog

import (
	"context"

	"sibiria/internal/domain"
)

// RoomRepository defines the room storage operations the catalog needs.
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	GetAll(ctx context.Context) ([]domain.Room, error)
	FindCandidates(ctx context.Context, guests int, roomTypeID *int64) ([]domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id int64) error
}

type RoomTypeRepository interface {
	Create(ctx context.Context, rt *domain.RoomType) error
	GetAll(ctx context.Context) ([]domain.RoomType, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) error
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetAll(ctx context.Context) ([]domain.Service, error)
	Update(ctx context.Context, s *domain.Service) error
	Delete(ctx context.Context, id int64) error
}

// BookingReader supplies confirmed bookings for the availability check.
type BookingReader interface {
	GetConfirmedByRoomIDs(ctx context.Context, roomIDs []int64) ([]domain.Booking, error)
}

package stats

import (
	"context"

	"sibiria/internal/domain"
)

type BookingReader interface {
	GetAll(ctx context.Context) ([]domain.Booking, error)
}

type RoomReader interface {
	GetAll(ctx context.Context) ([]domain.Room, error)
	CountByStatus(ctx context.Context, status domain.RoomStatus) (int64, error)
}

type StatisticRepository interface {
	Create(ctx context.Context, s *domain.AdminStatistic) error
	GetAll(ctx context.Context) ([]domain.AdminStatistic, error)
}

package repository

import (
	"context"
	"time"

	"sibiria/internal/domain"
	"sibiria/internal/pkg/decimal"

	"gorm.io/gorm"
)

type StatisticRepository struct {
	db *gorm.DB
}

func NewStatisticRepository(db *gorm.DB) *StatisticRepository {
	return &StatisticRepository{db: db}
}

type adminStatisticModel struct {
	ID             int64           `gorm:"column:id;primaryKey"`
	Date           time.Time       `gorm:"column:date"`
	OccupancyRate  decimal.Decimal `gorm:"column:occupancy_rate"`
	TotalVisitors  int             `gorm:"column:total_visitors"`
	Performance    decimal.Decimal `gorm:"column:performance"`
	TotalBookings  int             `gorm:"column:total_bookings"`
	AvailableRooms int             `gorm:"column:available_rooms"`
	TotalRevenue   decimal.Decimal `gorm:"column:total_revenue"`
}

func (adminStatisticModel) TableName() string { return "admin_statistics" }

func toDomainStatistic(m adminStatisticModel) *domain.AdminStatistic {
	return &domain.AdminStatistic{
		ID:             m.ID,
		Date:           m.Date,
		OccupancyRate:  m.OccupancyRate,
		TotalVisitors:  m.TotalVisitors,
		Performance:    m.Performance,
		TotalBookings:  m.TotalBookings,
		AvailableRooms: m.AvailableRooms,
		TotalRevenue:   m.TotalRevenue,
	}
}

// Create always inserts a fresh snapshot row; recomputing a month is
// intentionally not an upsert.
func (r *StatisticRepository) Create(ctx context.Context, s *domain.AdminStatistic) error {
	m := adminStatisticModel{
		Date:           s.Date,
		OccupancyRate:  s.OccupancyRate,
		TotalVisitors:  s.TotalVisitors,
		Performance:    s.Performance,
		TotalBookings:  s.TotalBookings,
		AvailableRooms: s.AvailableRooms,
		TotalRevenue:   s.TotalRevenue,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	s.ID = m.ID
	return nil
}

func (r *StatisticRepository) GetAll(ctx context.Context) ([]domain.AdminStatistic, error) {
	var ms []adminStatisticModel
	tx := r.db.WithContext(ctx).Order("date DESC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.AdminStatistic, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainStatistic(m))
	}
	return out, nil
}

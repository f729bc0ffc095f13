package stats

import (
	"context"
	"time"

	"sibiria/internal/domain"
	"sibiria/internal/pkg/decimal"
)

type Service struct {
	bookings BookingReader
	rooms    RoomReader
	stats    StatisticRepository
}

func NewService(bookings BookingReader, rooms RoomReader, stats StatisticRepository) *Service {
	return &Service{bookings: bookings, rooms: rooms, stats: stats}
}

// ComputeMonthly builds the snapshot for [first of month, +1 month)
// and inserts it as a fresh row. Running it twice for the same month
// inserts two rows with identical figures; there is no upsert.
//
// Bookings count toward the month regardless of status. This is looser
// than the availability check on purpose: a cancelled stay still
// happened from the reporting point of view.
func (s *Service) ComputeMonthly(ctx context.Context, year int, month time.Month) (*domain.AdminStatistic, error) {
	if year < 1 || month < time.January || month > time.December {
		return nil, ErrValidation
	}

	periodStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)
	daysInMonth := int64(periodEnd.Sub(periodStart).Hours() / 24)

	bookings, err := s.bookings.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	rooms, err := s.rooms.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var (
		occupiedNights int64
		revenue        decimal.Decimal
		totalBookings  int
	)
	visitors := make(map[string]bool)

	for i := range bookings {
		b := &bookings[i]
		if !domain.Overlaps(b.CheckIn, b.CheckOut, periodStart, periodEnd) {
			continue
		}
		totalBookings++
		occupiedNights += b.ClampNights(periodStart, periodEnd)
		revenue = revenue.Add(b.TotalPrice)
		if b.ContactValue != "" {
			visitors[b.ContactValue] = true
		}
	}

	roomCount := int64(len(rooms))
	totalRoomNights := roomCount * daysInMonth
	occupancyRate := decimal.PercentOfCount(occupiedNights, totalRoomNights)

	var avgRoomPrice decimal.Decimal
	for _, r := range rooms {
		avgRoomPrice = avgRoomPrice.Add(r.Price)
	}
	avgRoomPrice = avgRoomPrice.DivInt(roomCount)

	maxRevenue := avgRoomPrice.MulInt(totalRoomNights)
	performance := decimal.Percent(revenue, maxRevenue)

	availableRooms, err := s.rooms.CountByStatus(ctx, domain.RoomAvailable)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.AdminStatistic{
		Date:           periodStart,
		OccupancyRate:  occupancyRate,
		TotalVisitors:  len(visitors),
		Performance:    performance,
		TotalBookings:  totalBookings,
		AvailableRooms: int(availableRooms),
		TotalRevenue:   revenue,
	}
	if err := s.stats.Create(ctx, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *Service) List(ctx context.Context) ([]domain.AdminStatistic, error) {
	return s.stats.GetAll(ctx)
}

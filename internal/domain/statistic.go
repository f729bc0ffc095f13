package domain

import (
	"time"

	"sibiria/internal/pkg/decimal"
)

// AdminStatistic is an append-only monthly snapshot. Date is the first
// day of the month at UTC midnight. Rates are percentages with two
// decimal places.
type AdminStatistic struct {
	ID             int64           `json:"id"`
	Date           time.Time       `json:"date"`
	OccupancyRate  decimal.Decimal `json:"occupancy_rate"`
	TotalVisitors  int             `json:"total_visitors"`
	Performance    decimal.Decimal `json:"performance"`
	TotalBookings  int             `json:"total_bookings"`
	AvailableRooms int             `json:"available_rooms"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
}

package domain

import (
	"errors"
	"time"

	"sibiria/internal/pkg/decimal"
)

type BookingStatus string

const (
	BookingPending             BookingStatus = "Pending"
	BookingConfirmed           BookingStatus = "Confirmed"
	BookingCancelled           BookingStatus = "Cancelled"
	BookingWaitingConfirmation BookingStatus = "WaitingConfirmation"
)

var ErrUnknownStatus = errors.New("unknown booking status")

// ParseBookingStatus matches the canonical status names exactly.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingWaitingConfirmation:
		return BookingStatus(s), nil
	}
	return "", ErrUnknownStatus
}

// CanTransition is the optional strict transition graph. The default
// lifecycle is permissive (any status to any status); operators enable
// this guard via BOOKING_STRICT_TRANSITIONS.
func CanTransition(from, to BookingStatus) bool {
	switch from {
	case BookingWaitingConfirmation:
		return to == BookingConfirmed || to == BookingCancelled || to == BookingPending
	case BookingPending:
		return to == BookingConfirmed || to == BookingCancelled
	case BookingConfirmed:
		return to == BookingCancelled
	default:
		return false
	}
}

type ContactType string

const (
	ContactPhone    ContactType = "Phone"
	ContactEmail    ContactType = "Email"
	ContactTelegram ContactType = "Telegram"
)

type Booking struct {
	ID             int64           `json:"id"`
	GuestFirstName string          `json:"guest_first_name"`
	GuestLastName  string          `json:"guest_last_name"`
	ContactType    ContactType     `json:"contact_type"`
	ContactValue   string          `json:"contact_value"`
	RoomID         int64           `json:"room_id"`
	CheckIn        time.Time       `json:"check_in"`
	CheckOut       time.Time       `json:"check_out"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Status         BookingStatus   `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`

	Services []Service `json:"services,omitempty"`
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect: aStart < bEnd && aEnd > bStart.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ClampNights clamps the booking interval to [periodStart, periodEnd)
// and returns the whole number of nights inside the period, never
// negative. Partial days truncate.
func (b *Booking) ClampNights(periodStart, periodEnd time.Time) int64 {
	start := b.CheckIn
	if start.Before(periodStart) {
		start = periodStart
	}
	end := b.CheckOut
	if end.After(periodEnd) {
		end = periodEnd
	}
	if !end.After(start) {
		return 0
	}
	return int64(end.Sub(start).Hours()) / 24
}

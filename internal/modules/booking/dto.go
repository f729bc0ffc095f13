package booking

import (
	"time"

	"sibiria/internal/domain"
	"sibiria/internal/pkg/decimal"
)

type CreateBookingRequest struct {
	GuestFirstName string          `json:"guest_first_name" binding:"required"`
	GuestLastName  string          `json:"guest_last_name" binding:"required"`
	ContactType    string          `json:"contact_type" binding:"required,oneof=Phone Email Telegram"`
	ContactValue   string          `json:"contact_value" binding:"required"`
	RoomID         int64           `json:"room_id" binding:"required"`
	CheckIn        time.Time       `json:"check_in" binding:"required"`
	CheckOut       time.Time       `json:"check_out" binding:"required"`
	TotalPrice     decimal.Decimal `json:"total_price" binding:"required"`
	ServiceIDs     []int64         `json:"service_ids"`
}

type CreateWithPaymentRequest struct {
	CreateBookingRequest
	ReturnURL string `json:"return_url" binding:"required,url"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type PaymentResponse struct {
	BookingID       int64  `json:"booking_id"`
	PaymentID       string `json:"payment_id"`
	ConfirmationURL string `json:"confirmation_url"`
}

// WaitingBookingResponse is the admin review row: booking plus room
// title plus the resolved service records.
type WaitingBookingResponse struct {
	ID             int64            `json:"id"`
	GuestFirstName string           `json:"guest_first_name"`
	GuestLastName  string           `json:"guest_last_name"`
	ContactType    string           `json:"contact_type"`
	ContactValue   string           `json:"contact_value"`
	RoomID         int64            `json:"room_id"`
	RoomTitle      string           `json:"room_title"`
	CheckIn        time.Time        `json:"check_in"`
	CheckOut       time.Time        `json:"check_out"`
	TotalPrice     decimal.Decimal  `json:"total_price"`
	Status         string           `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	Services       []domain.Service `json:"services"`
}

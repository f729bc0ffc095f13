package booking

import (
	"context"

	"sibiria/internal/domain"
	"sibiria/internal/pkg/decimal"
	"sibiria/internal/repository"
)

// BookingRepository defines the storage operations of the lifecycle.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking, serviceIDs []int64) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByStatusWithDetails(ctx context.Context, status domain.BookingStatus) ([]repository.AdminBookingRow, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// PaymentGateway creates a payment and returns the id and the URL the
// guest is redirected to.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, amount decimal.Decimal, description, returnURL string, bookingID int64) (paymentID, confirmationURL string, err error)
}

// Notifier pushes booking events to connected admin clients. A nil
// notifier disables the feed.
type Notifier interface {
	BookingCreated(b *domain.Booking)
}

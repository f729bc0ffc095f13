package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sibiria/internal/domain"
	"sibiria/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	gateway  PaymentGateway
	notifier Notifier

	// strictTransitions turns the lifecycle graph into a hard guard.
	// Off by default: the gateway redirect PATCHes a status without
	// knowing the previous one.
	strictTransitions bool
}

func NewService(bookings BookingRepository, gateway PaymentGateway, notifier Notifier, strictTransitions bool) *Service {
	return &Service{
		bookings:          bookings,
		gateway:           gateway,
		notifier:          notifier,
		strictTransitions: strictTransitions,
	}
}

// Create persists a guest booking with status WaitingConfirmation.
// The total price is the caller's figure and is stored as sent. There
// is no availability check here: a clash is resolved by the admin when
// confirming.
func (s *Service) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if !req.CheckIn.Before(req.CheckOut) {
		return nil, ErrValidation
	}

	b := &domain.Booking{
		GuestFirstName: strings.TrimSpace(req.GuestFirstName),
		GuestLastName:  strings.TrimSpace(req.GuestLastName),
		ContactType:    domain.ContactType(req.ContactType),
		ContactValue:   strings.TrimSpace(req.ContactValue),
		RoomID:         req.RoomID,
		CheckIn:        req.CheckIn.UTC(),
		CheckOut:       req.CheckOut.UTC(),
		TotalPrice:     req.TotalPrice,
		Status:         domain.BookingWaitingConfirmation,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.bookings.Create(ctx, b, req.ServiceIDs); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.BookingCreated(b)
	}
	return b, nil
}

// CreateWithPayment persists the booking, then asks the gateway for a
// payment whose return URL carries the new booking id. A gateway
// failure propagates with its message; the booking row stays.
func (s *Service) CreateWithPayment(ctx context.Context, req CreateWithPaymentRequest) (*PaymentResponse, error) {
	b, err := s.Create(ctx, req.CreateBookingRequest)
	if err != nil {
		return nil, err
	}

	returnURL := appendBookingID(req.ReturnURL, b.ID)
	description := fmt.Sprintf("Booking #%d, room %d", b.ID, b.RoomID)

	paymentID, confirmationURL, err := s.gateway.CreatePayment(ctx, b.TotalPrice, description, returnURL, b.ID)
	if err != nil {
		return nil, err
	}

	return &PaymentResponse{
		BookingID:       b.ID,
		PaymentID:       paymentID,
		ConfirmationURL: confirmationURL,
	}, nil
}

func appendBookingID(returnURL string, bookingID int64) string {
	sep := "?"
	if strings.Contains(returnURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%sbookingId=%d", returnURL, sep, bookingID)
}

// ChangeStatus parses the requested status by its exact name and
// updates the row. By default any current status may move to any other;
// updating a missing id succeeds without effect.
func (s *Service) ChangeStatus(ctx context.Context, id int64, statusName string) error {
	status, err := domain.ParseBookingStatus(statusName)
	if err != nil {
		return ErrInvalidStatus
	}

	if s.strictTransitions {
		current, err := s.bookings.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if !domain.CanTransition(current.Status, status) {
			return ErrTransitionNotAllowed
		}
	}

	return s.bookings.UpdateStatus(ctx, id, status)
}

func (s *Service) ListWaitingConfirmation(ctx context.Context) ([]WaitingBookingResponse, error) {
	rows, err := s.bookings.GetByStatusWithDetails(ctx, domain.BookingWaitingConfirmation)
	if err != nil {
		return nil, err
	}
	out := make([]WaitingBookingResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toWaitingResponse(r))
	}
	return out, nil
}

func toWaitingResponse(r repository.AdminBookingRow) WaitingBookingResponse {
	services := r.Booking.Services
	if services == nil {
		services = []domain.Service{}
	}
	return WaitingBookingResponse{
		ID:             r.Booking.ID,
		GuestFirstName: r.Booking.GuestFirstName,
		GuestLastName:  r.Booking.GuestLastName,
		ContactType:    string(r.Booking.ContactType),
		ContactValue:   r.Booking.ContactValue,
		RoomID:         r.Booking.RoomID,
		RoomTitle:      r.RoomTitle,
		CheckIn:        r.Booking.CheckIn,
		CheckOut:       r.Booking.CheckOut,
		TotalPrice:     r.Booking.TotalPrice,
		Status:         string(r.Booking.Status),
		CreatedAt:      r.Booking.CreatedAt,
		Services:       services,
	}
}

package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"sibiria/internal/domain"
	"sibiria/internal/pkg/decimal"
	"sibiria/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking, serviceIDs []int64) error {
	args := m.Called(ctx, b, serviceIDs)
	if b != nil {
		b.ID = 77
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByStatusWithDetails(ctx context.Context, status domain.BookingStatus) ([]repository.AdminBookingRow, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]repository.AdminBookingRow), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreatePayment(ctx context.Context, amount decimal.Decimal, description, returnURL string, bookingID int64) (string, string, error) {
	args := m.Called(ctx, amount, description, returnURL, bookingID)
	return args.String(0), args.String(1), args.Error(2)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingCreated(b *domain.Booking) {
	m.Called(b)
}

func day(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		GuestFirstName: "Ivan",
		GuestLastName:  "Petrov",
		ContactType:    "Phone",
		ContactValue:   "+79990001122",
		RoomID:         3,
		CheckIn:        day(2026, 9, 10),
		CheckOut:       day(2026, 9, 14),
		TotalPrice:     decimal.FromInt(18000),
		ServiceIDs:     []int64{1, 2},
	}
}

func TestCreate_StartsWaitingConfirmation(t *testing.T) {
	repo := new(MockBookingRepository)
	notifs := new(MockNotifier)
	service := NewService(repo, nil, notifs, false)

	repo.On("Create", mock.Anything, mock.Anything, []int64{1, 2}).Return(nil)
	notifs.On("BookingCreated", mock.Anything).Return()

	b, err := service.Create(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingWaitingConfirmation, b.Status)
	assert.Equal(t, decimal.FromInt(18000), b.TotalPrice)
	notifs.AssertCalled(t, "BookingCreated", mock.Anything)
}

func TestCreate_InvalidRange(t *testing.T) {
	service := NewService(new(MockBookingRepository), nil, nil, false)

	req := validRequest()
	req.CheckIn, req.CheckOut = req.CheckOut, req.CheckIn

	_, err := service.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateWithPayment_AppendsBookingID(t *testing.T) {
	repo := new(MockBookingRepository)
	gateway := new(MockPaymentGateway)
	service := NewService(repo, gateway, nil, false)

	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	gateway.On("CreatePayment", mock.Anything, decimal.FromInt(18000), mock.Anything,
		"https://hotel.example/thanks?bookingId=77", int64(77)).
		Return("pay-123", "https://yookassa.example/confirm", nil)

	req := CreateWithPaymentRequest{
		CreateBookingRequest: validRequest(),
		ReturnURL:            "https://hotel.example/thanks",
	}
	out, err := service.CreateWithPayment(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, int64(77), out.BookingID)
	assert.Equal(t, "pay-123", out.PaymentID)
	assert.Equal(t, "https://yookassa.example/confirm", out.ConfirmationURL)
	gateway.AssertExpectations(t)
}

func TestCreateWithPayment_ReturnURLWithQuery(t *testing.T) {
	assert.Equal(t, "https://h.example/p?a=1&bookingId=5", appendBookingID("https://h.example/p?a=1", 5))
	assert.Equal(t, "https://h.example/p?bookingId=5", appendBookingID("https://h.example/p", 5))
}

func TestCreateWithPayment_GatewayFailureKeepsBooking(t *testing.T) {
	repo := new(MockBookingRepository)
	gateway := new(MockPaymentGateway)
	service := NewService(repo, gateway, nil, false)

	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	gateway.On("CreatePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", "", errors.New("yookassa: invalid shop credentials"))

	req := CreateWithPaymentRequest{
		CreateBookingRequest: validRequest(),
		ReturnURL:            "https://hotel.example/thanks",
	}
	_, err := service.CreateWithPayment(context.Background(), req)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "yookassa")
	// The booking was persisted before the gateway call.
	repo.AssertCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeStatus_UnknownName(t *testing.T) {
	service := NewService(new(MockBookingRepository), nil, nil, false)

	err := service.ChangeStatus(context.Background(), 1, "Approved")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// Names match exactly, no case folding.
	err = service.ChangeStatus(context.Background(), 1, "confirmed")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestChangeStatus_PermissiveByDefault(t *testing.T) {
	repo := new(MockBookingRepository)
	service := NewService(repo, nil, nil, false)

	// Cancelled straight back to Confirmed is fine without the guard.
	repo.On("UpdateStatus", mock.Anything, int64(5), domain.BookingConfirmed).Return(nil)

	err := service.ChangeStatus(context.Background(), 5, "Confirmed")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestChangeStatus_StrictGuardRejects(t *testing.T) {
	repo := new(MockBookingRepository)
	service := NewService(repo, nil, nil, true)

	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID:     5,
		Status: domain.BookingCancelled,
	}, nil)

	err := service.ChangeStatus(context.Background(), 5, "Confirmed")
	assert.ErrorIs(t, err, ErrTransitionNotAllowed)
}

func TestChangeStatus_StrictGuardMissingIDIsNoOp(t *testing.T) {
	repo := new(MockBookingRepository)
	service := NewService(repo, nil, nil, true)

	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	err := service.ChangeStatus(context.Background(), 404, "Confirmed")
	assert.NoError(t, err)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestListWaitingConfirmation(t *testing.T) {
	repo := new(MockBookingRepository)
	service := NewService(repo, nil, nil, false)

	rows := []repository.AdminBookingRow{
		{
			Booking: domain.Booking{
				ID:       9,
				RoomID:   3,
				Status:   domain.BookingWaitingConfirmation,
				Services: []domain.Service{{ID: 1, Name: "Breakfast"}},
			},
			RoomTitle: "Suite 7",
		},
	}
	repo.On("GetByStatusWithDetails", mock.Anything, domain.BookingWaitingConfirmation).Return(rows, nil)

	out, err := service.ListWaitingConfirmation(context.Background())

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "Suite 7", out[0].RoomTitle)
	assert.Len(t, out[0].Services, 1)
}

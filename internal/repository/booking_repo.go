package repository

import (
	"context"
	"time"

	"sibiria/internal/domain"
	"sibiria/internal/pkg/decimal"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID             int64           `gorm:"column:id;primaryKey"`
	GuestFirstName string          `gorm:"column:guest_first_name;size:100"`
	GuestLastName  string          `gorm:"column:guest_last_name;size:100"`
	ContactType    string          `gorm:"column:contact_type;size:16"`
	ContactValue   string          `gorm:"column:contact_value;size:255"`
	RoomID         int64           `gorm:"column:room_id;index"`
	CheckIn        time.Time       `gorm:"column:check_in"`
	CheckOut       time.Time       `gorm:"column:check_out"`
	TotalPrice     decimal.Decimal `gorm:"column:total_price"`
	Status         string          `gorm:"column:status;size:32;index"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
}

func (bookingModel) TableName() string { return "bookings" }

type bookingServiceModel struct {
	ID        int64 `gorm:"column:id;primaryKey"`
	BookingID int64 `gorm:"column:booking_id;index"`
	ServiceID int64 `gorm:"column:service_id;index"`
}

func (bookingServiceModel) TableName() string { return "booking_services" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:             m.ID,
		GuestFirstName: m.GuestFirstName,
		GuestLastName:  m.GuestLastName,
		ContactType:    domain.ContactType(m.ContactType),
		ContactValue:   m.ContactValue,
		RoomID:         m.RoomID,
		CheckIn:        m.CheckIn,
		CheckOut:       m.CheckOut,
		TotalPrice:     m.TotalPrice,
		Status:         domain.BookingStatus(m.Status),
		CreatedAt:      m.CreatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:             b.ID,
		GuestFirstName: b.GuestFirstName,
		GuestLastName:  b.GuestLastName,
		ContactType:    string(b.ContactType),
		ContactValue:   b.ContactValue,
		RoomID:         b.RoomID,
		CheckIn:        b.CheckIn,
		CheckOut:       b.CheckOut,
		TotalPrice:     b.TotalPrice,
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt,
	}
}

// Create persists the booking and its service join rows in one
// transaction, so a failed join insert never leaves a dangling booking.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking, serviceIDs []int64) error {
	m := toBookingModel(b)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		for _, svcID := range serviceIDs {
			row := bookingServiceModel{BookingID: m.ID, ServiceID: svcID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetAll(ctx context.Context) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).Order("id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// GetConfirmedByRoomIDs loads every Confirmed booking for the given
// rooms; the availability overlap test runs in the service layer.
func (r *BookingRepository) GetConfirmedByRoomIDs(ctx context.Context, roomIDs []int64) ([]domain.Booking, error) {
	if len(roomIDs) == 0 {
		return []domain.Booking{}, nil
	}
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("room_id IN ?", roomIDs).
		Where("status = ?", string(domain.BookingConfirmed)).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// AdminBookingRow pairs a booking with the room title and the full
// service records for the admin review screen.
type AdminBookingRow struct {
	Booking   domain.Booking
	RoomTitle string
}

func (r *BookingRepository) GetByStatusWithDetails(ctx context.Context, status domain.BookingStatus) ([]AdminBookingRow, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).Where("status = ?", string(status)).Order("id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if len(ms) == 0 {
		return []AdminBookingRow{}, nil
	}

	roomIDs := make([]int64, 0, len(ms))
	bookingIDs := make([]int64, 0, len(ms))
	for _, m := range ms {
		roomIDs = append(roomIDs, m.RoomID)
		bookingIDs = append(bookingIDs, m.ID)
	}

	var rooms []roomModel
	if err := r.db.WithContext(ctx).Where("id IN ?", roomIDs).Find(&rooms).Error; err != nil {
		return nil, err
	}
	titles := make(map[int64]string, len(rooms))
	for _, rm := range rooms {
		titles[rm.ID] = rm.Title
	}

	var joins []bookingServiceModel
	if err := r.db.WithContext(ctx).Where("booking_id IN ?", bookingIDs).Find(&joins).Error; err != nil {
		return nil, err
	}
	serviceIDs := make([]int64, 0, len(joins))
	for _, j := range joins {
		serviceIDs = append(serviceIDs, j.ServiceID)
	}

	services := make(map[int64]domain.Service)
	if len(serviceIDs) > 0 {
		var svcModels []serviceModel
		if err := r.db.WithContext(ctx).Where("id IN ?", serviceIDs).Find(&svcModels).Error; err != nil {
			return nil, err
		}
		for _, sm := range svcModels {
			services[sm.ID] = *toDomainService(sm)
		}
	}

	byBooking := make(map[int64][]domain.Service)
	for _, j := range joins {
		if svc, ok := services[j.ServiceID]; ok {
			byBooking[j.BookingID] = append(byBooking[j.BookingID], svc)
		}
	}

	out := make([]AdminBookingRow, 0, len(ms))
	for _, m := range ms {
		b := *toDomainBooking(m)
		b.Services = byBooking[m.ID]
		out = append(out, AdminBookingRow{Booking: b, RoomTitle: titles[m.RoomID]})
	}
	return out, nil
}

// UpdateStatus touches exactly one row; a missing id is a silent no-op.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

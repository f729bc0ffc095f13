package repository

import (
	"context"
	"encoding/json"

	"sibiria/internal/domain"
	"sibiria/internal/pkg/decimal"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID          int64           `gorm:"column:id;primaryKey"`
	RoomTypeID  int64           `gorm:"column:room_type_id;index"`
	Title       string          `gorm:"column:title;size:255"`
	Description string          `gorm:"column:description;type:text"`
	Price       decimal.Decimal `gorm:"column:price"`
	Capacity    int             `gorm:"column:capacity"`
	Amenities   string          `gorm:"column:amenities;type:text"`
	ImageURLs   string          `gorm:"column:image_urls;type:text"`
	Status      string          `gorm:"column:status;size:32"`
}

func (roomModel) TableName() string { return "rooms" }

// Amenity and image lists live as JSON text in a single column; the
// domain only ever sees []string.
func toDomainRoom(m roomModel) *domain.Room {
	return &domain.Room{
		ID:          m.ID,
		RoomTypeID:  m.RoomTypeID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		Capacity:    m.Capacity,
		Amenities:   decodeStringList(m.Amenities),
		ImageURLs:   decodeStringList(m.ImageURLs),
		Status:      domain.RoomStatus(m.Status),
	}
}

func toRoomModel(r *domain.Room) roomModel {
	return roomModel{
		ID:          r.ID,
		RoomTypeID:  r.RoomTypeID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Capacity:    r.Capacity,
		Amenities:   encodeStringList(r.Amenities),
		ImageURLs:   encodeStringList(r.ImageURLs),
		Status:      string(r.Status),
	}
}

func decodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []string{}
	}
	return out
}

func encodeStringList(list []string) string {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	return string(b)
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) GetAll(ctx context.Context) ([]domain.Room, error) {
	var ms []roomModel
	tx := r.db.WithContext(ctx).Order("id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Room, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

// FindCandidates returns rooms with enough capacity, optionally
// restricted to a room type. Booking overlap is resolved by the caller.
func (r *RoomRepository) FindCandidates(ctx context.Context, guests int, roomTypeID *int64) ([]domain.Room, error) {
	q := r.db.WithContext(ctx).Where("capacity >= ?", guests)
	if roomTypeID != nil {
		q = q.Where("room_type_id = ?", *roomTypeID)
	}
	var ms []roomModel
	tx := q.Order("id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Room, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

// Update is a silent no-op when the room does not exist.
func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	var existing roomModel
	tx := r.db.WithContext(ctx).First(&existing, room.ID)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil
		}
		return tx.Error
	}

	m := toRoomModel(room)
	return r.db.WithContext(ctx).Model(&existing).Updates(map[string]any{
		"room_type_id": m.RoomTypeID,
		"title":        m.Title,
		"description":  m.Description,
		"price":        m.Price,
		"capacity":     m.Capacity,
		"amenities":    m.Amenities,
		"image_urls":   m.ImageURLs,
		"status":       m.Status,
	}).Error
}

// Delete cascades to the room's bookings and their service join rows.
// Missing ids are a silent no-op.
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bookingIDs []int64
		if err := tx.Model(&bookingModel{}).Where("room_id = ?", id).Pluck("id", &bookingIDs).Error; err != nil {
			return err
		}
		if len(bookingIDs) > 0 {
			if err := tx.Where("booking_id IN ?", bookingIDs).Delete(&bookingServiceModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("room_id = ?", id).Delete(&bookingModel{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&roomModel{}, id).Error
	})
}

func (r *RoomRepository) CountByStatus(ctx context.Context, status domain.RoomStatus) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&roomModel{}).Where("status = ?", string(status)).Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

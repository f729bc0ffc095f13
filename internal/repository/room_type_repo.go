package repository

import (
	"context"

	"sibiria/internal/domain"

	"gorm.io/gorm"
)

type RoomTypeRepository struct {
	db *gorm.DB
}

func NewRoomTypeRepository(db *gorm.DB) *RoomTypeRepository {
	return &RoomTypeRepository{db: db}
}

type roomTypeModel struct {
	ID          int64  `gorm:"column:id;primaryKey"`
	Name        string `gorm:"column:name;size:255"`
	Description string `gorm:"column:description;type:text"`
}

func (roomTypeModel) TableName() string { return "room_types" }

func (r *RoomTypeRepository) Create(ctx context.Context, rt *domain.RoomType) error {
	m := roomTypeModel{ID: rt.ID, Name: rt.Name, Description: rt.Description}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	rt.ID = m.ID
	return nil
}

func (r *RoomTypeRepository) GetAll(ctx context.Context) ([]domain.RoomType, error) {
	var ms []roomTypeModel
	tx := r.db.WithContext(ctx).Order("id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.RoomType, 0, len(ms))
	for _, m := range ms {
		out = append(out, domain.RoomType{ID: m.ID, Name: m.Name, Description: m.Description})
	}
	return out, nil
}

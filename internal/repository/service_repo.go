package repository

import (
	"context"

	"sibiria/internal/domain"
	"sibiria/internal/pkg/decimal"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type serviceModel struct {
	ID          int64           `gorm:"column:id;primaryKey"`
	Name        string          `gorm:"column:name;size:255"`
	Description string          `gorm:"column:description;type:text"`
	Price       decimal.Decimal `gorm:"column:price"`
}

func (serviceModel) TableName() string { return "services" }

func toDomainService(m serviceModel) *domain.Service {
	return &domain.Service{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
	}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	m := serviceModel{Name: s.Name, Description: s.Description, Price: s.Price}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	s.ID = m.ID
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var m serviceModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainService(m), nil
}

func (r *ServiceRepository) GetAll(ctx context.Context) ([]domain.Service, error) {
	var ms []serviceModel
	tx := r.db.WithContext(ctx).Order("id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Service, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainService(m))
	}
	return out, nil
}

// Update fails with gorm.ErrRecordNotFound for a missing id; the
// catalog surface reports that as 404, unlike the permissive room
// update.
func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	var existing serviceModel
	tx := r.db.WithContext(ctx).First(&existing, s.ID)
	if tx.Error != nil {
		return tx.Error
	}
	return r.db.WithContext(ctx).Model(&existing).Updates(map[string]any{
		"name":        s.Name,
		"description": s.Description,
		"price":       s.Price,
	}).Error
}

// Delete is a silent no-op for a missing id.
func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&serviceModel{}, id).Error
}

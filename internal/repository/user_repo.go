package repository

import (
	"context"
	"strings"
	"time"

	"sibiria/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID                   int64      `gorm:"column:id;primaryKey"`
	FullName             string     `gorm:"column:full_name;size:255"`
	Email                string     `gorm:"column:email;size:255;uniqueIndex"`
	Phone                string     `gorm:"column:phone;size:20"`
	PasswordHash         string     `gorm:"column:password_hash;size:255"`
	Role                 string     `gorm:"column:role;size:16"`
	PasswordResetToken   *string    `gorm:"column:password_reset_token;size:6"`
	PasswordResetExpires *time.Time `gorm:"column:password_reset_expires"`
	CreatedAt            time.Time  `gorm:"column:created_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	var token string
	if m.PasswordResetToken != nil {
		token = *m.PasswordResetToken
	}
	return &domain.User{
		ID:                   m.ID,
		FullName:             m.FullName,
		Email:                m.Email,
		Phone:                m.Phone,
		PasswordHash:         m.PasswordHash,
		Role:                 domain.UserRole(m.Role),
		PasswordResetToken:   token,
		PasswordResetExpires: m.PasswordResetExpires,
		CreatedAt:            m.CreatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	var token *string
	if u.PasswordResetToken != "" {
		v := u.PasswordResetToken
		token = &v
	}
	return userModel{
		ID:                   u.ID,
		FullName:             u.FullName,
		Email:                strings.TrimSpace(strings.ToLower(u.Email)),
		Phone:                u.Phone,
		PasswordHash:         u.PasswordHash,
		Role:                 string(u.Role),
		PasswordResetToken:   token,
		PasswordResetExpires: u.PasswordResetExpires,
		CreatedAt:            u.CreatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	var ms []userModel
	tx := r.db.WithContext(ctx).Order("id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.User, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainUser(m))
	}
	return out, nil
}

// Update is a silent no-op for a missing id. The password hash is only
// touched when a new one is supplied.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	var existing userModel
	tx := r.db.WithContext(ctx).First(&existing, u.ID)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil
		}
		return tx.Error
	}

	updates := map[string]any{
		"full_name": u.FullName,
		"email":     strings.TrimSpace(strings.ToLower(u.Email)),
		"phone":     u.Phone,
	}
	if u.PasswordHash != "" {
		updates["password_hash"] = u.PasswordHash
	}
	return r.db.WithContext(ctx).Model(&existing).Updates(updates).Error
}

func (r *UserRepository) SetResetToken(ctx context.Context, userID int64, token string, expires time.Time) error {
	return r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"password_reset_token":   token,
			"password_reset_expires": expires,
		}).Error
}

// ResetPassword swaps the hash and invalidates the one-time code.
func (r *UserRepository) ResetPassword(ctx context.Context, userID int64, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"password_hash":          passwordHash,
			"password_reset_token":   nil,
			"password_reset_expires": nil,
		}).Error
}

package auth

import (
	"context"
	"time"

	"sibiria/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	SetResetToken(ctx context.Context, userID int64, token string, expires time.Time) error
	ResetPassword(ctx context.Context, userID int64, passwordHash string) error
}

type TokenIssuer interface {
	GenerateToken(userID int64, email, role string) (string, error)
}

type Mailer interface {
	SendPasswordResetCode(ctx context.Context, toEmail, code string) error
}

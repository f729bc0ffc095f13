package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"sibiria/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	users  UserRepository
	tokens TokenIssuer
	mailer Mailer

	resetCodeTTL time.Duration
}

func NewService(users UserRepository, tokens TokenIssuer, mailer Mailer, resetCodeTTL time.Duration) *Service {
	return &Service{
		users:        users,
		tokens:       tokens,
		mailer:       mailer,
		resetCodeTTL: resetCodeTTL,
	}
}

// Login never reveals whether the email or the password was wrong.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, User: ToUserResponse(user)}, nil
}

func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// isUniqueViolation covers both backends: pgconn exposes the SQLSTATE,
// the sqlite driver only a message.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}

func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.GetAll(ctx)
}

func (s *Service) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) error {
	user := &domain.User{
		ID:       id,
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    strings.TrimSpace(req.Phone),
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.PasswordHash = string(hash)
	}
	return s.users.Update(ctx, user)
}

// RequestPasswordReset generates a 6-digit code and mails it. The
// caller always gets the same outcome whether the account exists or
// not, so the endpoint cannot be used to probe for emails.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	code, err := generateResetCode()
	if err != nil {
		return err
	}
	expires := time.Now().UTC().Add(s.resetCodeTTL)

	if err := s.users.SetResetToken(ctx, user.ID, code, expires); err != nil {
		return err
	}

	// Fire and forget: a dead relay must not block the response.
	go func(email, code string) {
		if err := s.mailer.SendPasswordResetCode(context.Background(), email, code); err != nil {
			log.Printf("password reset mail failed email=%s err=%v", email, err)
		}
	}(user.Email, code)

	return nil
}

func (s *Service) ConfirmPasswordReset(ctx context.Context, req ConfirmResetRequest) error {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetCode
		}
		return err
	}

	if user.PasswordResetToken == "" || user.PasswordResetToken != req.Code {
		return ErrInvalidResetCode
	}
	if user.PasswordResetExpires == nil || time.Now().UTC().After(*user.PasswordResetExpires) {
		return ErrInvalidResetCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.ResetPassword(ctx, user.ID, string(hash))
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "User"
	RoleAdmin UserRole = "Admin"
)

type User struct {
	ID           int64    `json:"id"`
	FullName     string   `json:"full_name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`

	// Password-reset state: a 6-digit code with a short expiry, cleared
	// once the password is reset.
	PasswordResetToken   string     `json:"-"`
	PasswordResetExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

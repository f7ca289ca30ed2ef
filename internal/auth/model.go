package auth

import (
	"time"
)

type User struct {
	ID             uint   `gorm:"primaryKey"`
	Username       string `gorm:"uniqueIndex;not null"`
	PasswordHash   string `gorm:"not null"`
	IsAdmin        bool   `gorm:"not null;default:false"`
	TokenVersion   int    `gorm:"not null;default:0"`
	FailedAttempts int    `gorm:"not null;default:0"`
	LockUntil      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastLoginAt    *time.Time
}

func (User) TableName() string {
	return "auth_users"
}

// LoginFailure is an append-only audit record of a failed login attempt.
// Username and IPAddress may both be unknown.
type LoginFailure struct {
	ID        uint    `gorm:"primaryKey"`
	Username  *string `gorm:"index"`
	IPAddress *string `gorm:"index"`
	CreatedAt time.Time
}

func (LoginFailure) TableName() string {
	return "auth_login_failures"
}

// PublicUser is the caller-facing view of an account. It never carries
// the password hash.
type PublicUser struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	IsAdmin     bool       `json:"is_admin"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		IsAdmin:     u.IsAdmin,
		LastLoginAt: u.LastLoginAt,
	}
}

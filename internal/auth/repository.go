package auth

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	CreateUser(user *User) error
	GetUserByID(id uint) (*User, error)
	GetUserByUsername(username string) (*User, error)
	UpdateFailedAttempts(userID uint, attempts int, lockUntil *time.Time) error
	ResetFailures(userID uint) error
	TouchLastLogin(userID uint) error
	UpdatePassword(userID uint, passwordHash string, tokenVersion int) error
	RecordFailure(username, ipAddress *string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateUser(user *User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *repository) GetUserByID(id uint) (*User, error) {
	var user User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetUserByUsername(username string) (*User, error) {
	var user User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) UpdateFailedAttempts(userID uint, attempts int, lockUntil *time.Time) error {
	return r.db.Model(&User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"failed_attempts": attempts,
		"lock_until":      lockUntil,
	}).Error
}

func (r *repository) ResetFailures(userID uint) error {
	return r.db.Model(&User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"failed_attempts": 0,
		"lock_until":      nil,
	}).Error
}

func (r *repository) TouchLastLogin(userID uint) error {
	return r.db.Model(&User{}).Where("id = ?", userID).
		Update("last_login_at", time.Now()).Error
}

func (r *repository) UpdatePassword(userID uint, passwordHash string, tokenVersion int) error {
	return r.db.Model(&User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_hash":   passwordHash,
		"token_version":   tokenVersion,
		"failed_attempts": 0,
		"lock_until":      nil,
	}).Error
}

func (r *repository) RecordFailure(username, ipAddress *string) error {
	return r.db.Create(&LoginFailure{
		Username:  username,
		IPAddress: ipAddress,
	}).Error
}

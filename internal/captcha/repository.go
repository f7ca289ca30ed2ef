package captcha

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrChallengeNotFound = errors.New("challenge not found")

type Repository interface {
	Create(challenge *Challenge) error
	GetByID(id uint) (*Challenge, error)
	MarkConsumed(id uint) error
	CountRecentByIP(ip string, since time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(challenge *Challenge) error {
	return r.db.Create(challenge).Error
}

func (r *repository) GetByID(id uint) (*Challenge, error) {
	var challenge Challenge
	if err := r.db.First(&challenge, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	return &challenge, nil
}

func (r *repository) MarkConsumed(id uint) error {
	return r.db.Model(&Challenge{}).Where("id = ?", id).
		Update("consumed", true).Error
}

func (r *repository) CountRecentByIP(ip string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&Challenge{}).
		Where("ip_address = ? AND created_at > ?", ip, since).
		Count(&count).Error
	return count, err
}

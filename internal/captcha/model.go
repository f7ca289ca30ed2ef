package captcha

import (
	"time"
)

// Challenge is a single-use captcha record. Only the hash of the expected
// code is stored; the first verification attempt consumes the row.
type Challenge struct {
	ID        uint    `gorm:"primaryKey"`
	CodeHash  string  `gorm:"not null"`
	IPAddress *string `gorm:"index"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index;not null"`
	Consumed  bool      `gorm:"not null;default:false"`
}

func (Challenge) TableName() string {
	return "auth_captchas"
}

// IssuedChallenge is returned to the caller on issuance. The image is a
// base64 data URI; the code itself never leaves the service.
type IssuedChallenge struct {
	ID        uint   `json:"captcha_id"`
	Image     string `json:"image"`
	ExpiresIn int    `json:"expires_in"`
}

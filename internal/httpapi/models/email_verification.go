package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmailVerification struct {
	ID               string    `gorm:"primaryKey;type:uuid" json:"id"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	VerificationCode string    `gorm:"not null" json:"-"`
	IsUsed           bool      `gorm:"default:false" json:"is_used"`
	IsExpired        bool      `gorm:"default:false" json:"is_expired"`
	ExpiresAt        time.Time `gorm:"not null;index" json:"expires_at"`
	UserID           string    `gorm:"type:uuid;not null" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (verification *EmailVerification) BeforeCreate(tx *gorm.DB) (err error) {
	if verification.ID == "" {
		verification.ID = uuid.New().String()
	}
	return
}

func (EmailVerification) TableName() string {
	return "email_verifications"
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PasswordReset is a single-use OTP record. Regenerating a code for an
// email deletes any previous row, so the unique index holds.
type PasswordReset struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	OTP       string    `gorm:"not null" json:"-"`
	IsUsed    bool      `gorm:"default:false" json:"is_used"`
	IsExpired bool      `gorm:"default:false" json:"is_expired"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	UserID    *string   `gorm:"type:uuid" json:"user_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (reset *PasswordReset) BeforeCreate(tx *gorm.DB) (err error) {
	if reset.ID == "" {
		reset.ID = uuid.New().String()
	}
	return
}

func (PasswordReset) TableName() string {
	return "password_resets"
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartoonLike marks a (cartoon, user) pair as liked. Toggling deletes and
// recreates the row, so likes are hard-deleted: a tombstone would collide
// with the unique index on re-like. The constraint is the backstop for
// concurrent toggles.
type CartoonLike struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	CartoonID string `gorm:"type:uuid;not null;uniqueIndex:uq_cartoon_likes_cartoon_user" json:"cartoon_id"`
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:uq_cartoon_likes_cartoon_user" json:"user_id"`

	CreatedByID *string `gorm:"type:uuid" json:"created_by_id,omitempty"`

	Cartoon *Cartoon `gorm:"foreignKey:CartoonID;constraint:OnDelete:CASCADE" json:"cartoon,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (like *CartoonLike) BeforeCreate(tx *gorm.DB) (err error) {
	if like.ID == "" {
		like.ID = uuid.New().String()
	}
	return
}

func (CartoonLike) TableName() string {
	return "cartoon_likes"
}

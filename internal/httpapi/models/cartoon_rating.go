package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartoonRating holds one user's rating of one cartoon, value in [0,5].
// The partial unique index keeps at most one active rating per (cartoon,
// user) pair while still allowing re-rating after a soft delete.
type CartoonRating struct {
	ID        string  `gorm:"primaryKey;type:uuid" json:"id"`
	Rating    float64 `gorm:"type:decimal(3,2);not null" json:"rating"`
	CartoonID string  `gorm:"type:uuid;not null;uniqueIndex:uq_cartoon_ratings_cartoon_user,where:deleted_at IS NULL" json:"cartoon_id"`
	UserID    string  `gorm:"type:uuid;not null;uniqueIndex:uq_cartoon_ratings_cartoon_user,where:deleted_at IS NULL" json:"user_id"`

	CreatedByID *string `gorm:"type:uuid" json:"created_by_id,omitempty"`
	UpdatedByID *string `gorm:"type:uuid" json:"updated_by_id,omitempty"`

	Cartoon *Cartoon `gorm:"foreignKey:CartoonID;constraint:OnDelete:CASCADE" json:"cartoon,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (rating *CartoonRating) BeforeCreate(tx *gorm.DB) (err error) {
	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}
	return
}

func (CartoonRating) TableName() string {
	return "cartoon_ratings"
}

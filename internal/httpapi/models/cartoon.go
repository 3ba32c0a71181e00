package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Cartoon struct {
	ID                 string `gorm:"primaryKey;type:uuid" json:"id"`
	ImageBackgroundURL string `gorm:"column:image_background_url" json:"image_background_url"`
	VideoURL           string `gorm:"column:video_url" json:"video_url"`
	Title              string `gorm:"not null" json:"title"`
	Description        string `gorm:"type:text" json:"description"`

	// Ratings is the authoritative mean of all active rating rows,
	// recomputed on every rating mutation.
	Ratings float64 `gorm:"type:decimal(3,2);default:0" json:"ratings"`

	ChainID           string  `gorm:"type:uuid;not null;index" json:"chain_id"`
	CategoryCartoonID *string `gorm:"type:uuid;index" json:"category_cartoon_id,omitempty"`

	CreatedByID *string `gorm:"type:uuid" json:"created_by_id,omitempty"`
	UpdatedByID *string `gorm:"type:uuid" json:"updated_by_id,omitempty"`

	Chain           *Chain           `gorm:"foreignKey:ChainID;constraint:OnDelete:CASCADE" json:"chain,omitempty"`
	CategoryCartoon *CategoryCartoon `gorm:"foreignKey:CategoryCartoonID" json:"category_cartoon,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (cartoon *Cartoon) BeforeCreate(tx *gorm.DB) (err error) {
	if cartoon.ID == "" {
		cartoon.ID = uuid.New().String()
	}
	return
}

func (Cartoon) TableName() string {
	return "cartoons"
}

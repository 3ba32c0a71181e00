package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Chain is a content channel. A company owns at most one chain; the
// invariant lives in the chain service, not the schema.
type Chain struct {
	ID          string  `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	ImageURL    string  `json:"image_url"`
	CompanyID   *string `gorm:"type:uuid;index" json:"company_id,omitempty"` // nullable for legacy rows

	CreatedByID *string `gorm:"type:uuid" json:"created_by_id,omitempty"`
	UpdatedByID *string `gorm:"type:uuid" json:"updated_by_id,omitempty"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (chain *Chain) BeforeCreate(tx *gorm.DB) (err error) {
	if chain.ID == "" {
		chain.ID = uuid.New().String()
	}
	return
}

func (Chain) TableName() string {
	return "chains"
}

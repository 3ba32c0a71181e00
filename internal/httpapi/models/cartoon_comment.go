package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartoonComment optionally references a parent comment on the same
// cartoon. The parent reference is an id, never an owning pointer.
type CartoonComment struct {
	ID              string  `gorm:"primaryKey;type:uuid" json:"id"`
	Content         string  `gorm:"type:text;not null" json:"content"`
	CartoonID       string  `gorm:"type:uuid;not null;index" json:"cartoon_id"`
	UserID          string  `gorm:"type:uuid;not null;index" json:"user_id"`
	ParentCommentID *string `gorm:"type:uuid;index" json:"parent_comment_id,omitempty"`

	CreatedByID *string `gorm:"type:uuid" json:"created_by_id,omitempty"`
	UpdatedByID *string `gorm:"type:uuid" json:"updated_by_id,omitempty"`

	Cartoon *Cartoon `gorm:"foreignKey:CartoonID;constraint:OnDelete:CASCADE" json:"cartoon,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (comment *CartoonComment) BeforeCreate(tx *gorm.DB) (err error) {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	return
}

func (CartoonComment) TableName() string {
	return "cartoon_comments"
}

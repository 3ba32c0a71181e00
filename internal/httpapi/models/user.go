package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. There is no hierarchy: route guards list the roles they accept.
const (
	RoleAdmin   = "admin"
	RoleCreator = "creator"
	RoleUser    = "user"
)

type User struct {
	ID         string  `gorm:"primaryKey;type:uuid" json:"id"`
	Email      string  `gorm:"uniqueIndex;not null" json:"email"`
	Password   string  `gorm:"column:password_hash;not null" json:"-"` // Not shown in JSON
	FirstName  string  `gorm:"not null" json:"first_name"`
	LastName   string  `json:"last_name"`
	Role       string  `gorm:"default:'user';not null" json:"role"`
	IsLocked   bool    `gorm:"default:false" json:"is_locked"`
	IsVerified bool    `gorm:"default:false" json:"is_verified"`
	CompanyID  *string `gorm:"type:uuid;index" json:"company_id,omitempty"`

	// Audit references are id-only back-references, resolved by lookup.
	LockedByID  *string `gorm:"type:uuid" json:"locked_by_id,omitempty"`
	CreatedByID *string `gorm:"type:uuid" json:"created_by_id,omitempty"`
	UpdatedByID *string `gorm:"type:uuid" json:"updated_by_id,omitempty"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Registration request states. Pending is the only state that admits a
// transition; approved and rejected are terminal.
const (
	RegistrationPending  = "pending"
	RegistrationApproved = "approved"
	RegistrationRejected = "rejected"
)

// CompanyRegistrationRequest carries a pending company application plus
// the credentials of its first account. The password is hashed when the
// request is created, so approval can copy it verbatim onto the user.
type CompanyRegistrationRequest struct {
	ID                 string  `gorm:"primaryKey;type:uuid" json:"id"`
	CompanyName        string  `gorm:"not null" json:"company_name"`
	CompanyDescription *string `gorm:"type:text" json:"company_description,omitempty"`
	CompanyAddress     string  `gorm:"not null" json:"company_address"`
	CompanyCity        *string `json:"company_city,omitempty"`
	CompanyCountry     *string `json:"company_country,omitempty"`
	CompanyPostalCode  *string `json:"company_postal_code,omitempty"`
	CompanyEmail       string  `gorm:"not null;index" json:"company_email"`
	CompanyPhone       *string `json:"company_phone,omitempty"`
	CompanyWebsite     *string `json:"company_website,omitempty"`
	Password           string  `gorm:"not null" json:"-"` // already hashed

	Status          string  `gorm:"default:'pending';not null;index" json:"status"`
	RejectionReason *string `gorm:"type:text" json:"rejection_reason,omitempty"`
	AdminNotes      *string `gorm:"type:text" json:"admin_notes,omitempty"`

	// Filled on approval.
	CompanyID     *string `gorm:"type:uuid" json:"company_id,omitempty"`
	CreatedUserID *string `gorm:"type:uuid" json:"created_user_id,omitempty"`
	ReviewedByID  *string `gorm:"type:uuid" json:"reviewed_by_id,omitempty"`

	Company     *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	CreatedUser *User    `gorm:"foreignKey:CreatedUserID" json:"created_user,omitempty"`
	ReviewedBy  *User    `gorm:"foreignKey:ReviewedByID" json:"reviewed_by,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (request *CompanyRegistrationRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	return
}

func (CompanyRegistrationRequest) TableName() string {
	return "company_registration_requests"
}

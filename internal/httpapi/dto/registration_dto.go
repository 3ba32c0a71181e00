package dto

type CreateRegistrationRequest struct {
	CompanyName        string  `json:"company_name" binding:"required"`
	CompanyDescription *string `json:"company_description,omitempty"`
	CompanyAddress     string  `json:"company_address" binding:"required"`
	CompanyCity        *string `json:"company_city,omitempty"`
	CompanyCountry     *string `json:"company_country,omitempty"`
	CompanyPostalCode  *string `json:"company_postal_code,omitempty"`
	CompanyEmail       string  `json:"company_email" binding:"required,email"`
	CompanyPhone       *string `json:"company_phone,omitempty"`
	CompanyWebsite     *string `json:"company_website,omitempty"`
	Password           string  `json:"password" binding:"required,min=8"`
}

type UpdateRegistrationRequest struct {
	CompanyName        *string `json:"company_name,omitempty"`
	CompanyDescription *string `json:"company_description,omitempty"`
	CompanyAddress     *string `json:"company_address,omitempty"`
	CompanyCity        *string `json:"company_city,omitempty"`
	CompanyCountry     *string `json:"company_country,omitempty"`
	CompanyPostalCode  *string `json:"company_postal_code,omitempty"`
	CompanyPhone       *string `json:"company_phone,omitempty"`
	CompanyWebsite     *string `json:"company_website,omitempty"`
	Password           *string `json:"password,omitempty"`
}

type ReviewRegistrationRequest struct {
	Status          string  `json:"status" binding:"required,oneof=pending approved rejected"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	AdminNotes      *string `json:"admin_notes,omitempty"`
}

// CreateCompanyDirectlyRequest is the admin bypass payload: company plus
// first-account credentials, no review step.
type CreateCompanyDirectlyRequest struct {
	CompanyName        string  `json:"company_name" binding:"required"`
	CompanyDescription *string `json:"company_description,omitempty"`
	CompanyAddress     string  `json:"company_address" binding:"required"`
	CompanyCity        *string `json:"company_city,omitempty"`
	CompanyCountry     *string `json:"company_country,omitempty"`
	CompanyPostalCode  *string `json:"company_postal_code,omitempty"`
	CompanyEmail       string  `json:"company_email" binding:"required,email"`
	CompanyPhone       *string `json:"company_phone,omitempty"`
	CompanyWebsite     *string `json:"company_website,omitempty"`
	CompanyLogoURL     *string `json:"company_logo_url,omitempty"`
	Password           string  `json:"password" binding:"required,min=8"`
}

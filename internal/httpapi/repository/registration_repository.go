package repository

import (
	"cartoonhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type RegistrationRepository interface {
	WithTx(tx *gorm.DB) RegistrationRepository
	Create(request *models.CompanyRegistrationRequest) error
	Save(request *models.CompanyRegistrationRequest) error
	Delete(id string) error
	FindByID(id string) (*models.CompanyRegistrationRequest, error)
	FindPendingByEmail(email string) (*models.CompanyRegistrationRequest, error)
	FindAllPaginated(offset, limit int) ([]models.CompanyRegistrationRequest, int64, error)
	FindByStatusPaginated(status string, offset, limit int) ([]models.CompanyRegistrationRequest, int64, error)
	StampReview(id string, fields map[string]interface{}) (int64, error)
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) WithTx(tx *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: tx}
}

func (r *registrationRepository) Create(request *models.CompanyRegistrationRequest) error {
	return r.db.Create(request).Error
}

func (r *registrationRepository) Save(request *models.CompanyRegistrationRequest) error {
	return r.db.Save(request).Error
}

func (r *registrationRepository) Delete(id string) error {
	return r.db.Delete(&models.CompanyRegistrationRequest{}, "id = ?", id).Error
}

func (r *registrationRepository) FindByID(id string) (*models.CompanyRegistrationRequest, error) {
	var request models.CompanyRegistrationRequest
	err := r.db.Preload("Company").Preload("CreatedUser").Preload("ReviewedBy").
		First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *registrationRepository) FindPendingByEmail(email string) (*models.CompanyRegistrationRequest, error) {
	var request models.CompanyRegistrationRequest
	err := r.db.Where("company_email = ? AND status = ?", email, models.RegistrationPending).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *registrationRepository) FindAllPaginated(offset, limit int) ([]models.CompanyRegistrationRequest, int64, error) {
	var requests []models.CompanyRegistrationRequest
	var total int64

	if err := r.db.Model(&models.CompanyRegistrationRequest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Company").Preload("CreatedUser").Preload("ReviewedBy").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *registrationRepository) FindByStatusPaginated(status string, offset, limit int) ([]models.CompanyRegistrationRequest, int64, error) {
	var requests []models.CompanyRegistrationRequest
	var total int64

	if err := r.db.Model(&models.CompanyRegistrationRequest{}).Where("status = ?", status).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Company").Preload("CreatedUser").Preload("ReviewedBy").
		Where("status = ?", status).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// StampReview writes the review outcome guarded by status = pending. The
// returned row count is the optimistic check: zero means another review
// won the race (or the request was already processed).
func (r *registrationRepository) StampReview(id string, fields map[string]interface{}) (int64, error) {
	result := r.db.Model(&models.CompanyRegistrationRequest{}).
		Where("id = ? AND status = ?", id, models.RegistrationPending).
		Updates(fields)
	return result.RowsAffected, result.Error
}

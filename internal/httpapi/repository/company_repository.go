package repository

import (
	"cartoonhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type CompanyRepository interface {
	WithTx(tx *gorm.DB) CompanyRepository
	Create(company *models.Company) error
	FindByID(id string) (*models.Company, error)
	FindByEmail(email string) (*models.Company, error)
	FindAllPaginated(offset, limit int) ([]models.Company, int64, error)
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) WithTx(tx *gorm.DB) CompanyRepository {
	return &companyRepository{db: tx}
}

func (r *companyRepository) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

func (r *companyRepository) FindByID(id string) (*models.Company, error) {
	var company models.Company
	if err := r.db.First(&company, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindByEmail(email string) (*models.Company, error) {
	var company models.Company
	if err := r.db.First(&company, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindAllPaginated(offset, limit int) ([]models.Company, int64, error) {
	var companies []models.Company
	var total int64

	if err := r.db.Model(&models.Company{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&companies).Error
	if err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

package repository

import (
	"cartoonhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type ChainRepository interface {
	Create(chain *models.Chain) error
	Save(chain *models.Chain) error
	Delete(id string) error
	FindByID(id string) (*models.Chain, error)
	FindByCompany(companyID string) (*models.Chain, error)
	FindAll() ([]models.Chain, error)
	FindAllPaginated(offset, limit int) ([]models.Chain, int64, error)
}

type chainRepository struct {
	db *gorm.DB
}

func NewChainRepository(db *gorm.DB) ChainRepository {
	return &chainRepository{db: db}
}

func (r *chainRepository) Create(chain *models.Chain) error {
	return r.db.Create(chain).Error
}

func (r *chainRepository) Save(chain *models.Chain) error {
	return r.db.Save(chain).Error
}

func (r *chainRepository) Delete(id string) error {
	return r.db.Delete(&models.Chain{}, "id = ?", id).Error
}

func (r *chainRepository) FindByID(id string) (*models.Chain, error) {
	var chain models.Chain
	if err := r.db.Preload("Company").First(&chain, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &chain, nil
}

// FindByCompany returns the company's chain, if any. At most one exists;
// the chain service enforces that on create.
func (r *chainRepository) FindByCompany(companyID string) (*models.Chain, error) {
	var chain models.Chain
	if err := r.db.First(&chain, "company_id = ?", companyID).Error; err != nil {
		return nil, err
	}
	return &chain, nil
}

func (r *chainRepository) FindAll() ([]models.Chain, error) {
	var chains []models.Chain
	err := r.db.Order("created_at DESC").Find(&chains).Error
	return chains, err
}

func (r *chainRepository) FindAllPaginated(offset, limit int) ([]models.Chain, int64, error) {
	var chains []models.Chain
	var total int64

	if err := r.db.Model(&models.Chain{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&chains).Error
	if err != nil {
		return nil, 0, err
	}
	return chains, total, nil
}

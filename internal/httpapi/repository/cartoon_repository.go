package repository

import (
	"cartoonhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type CartoonRepository interface {
	WithTx(tx *gorm.DB) CartoonRepository
	Create(cartoon *models.Cartoon) error
	Save(cartoon *models.Cartoon) error
	Delete(id string) error
	FindByID(id string) (*models.Cartoon, error)
	FindAllPaginated(offset, limit int) ([]models.Cartoon, int64, error)
	FindByChainPaginated(chainID string, offset, limit int) ([]models.Cartoon, int64, error)
	UpdateRatings(id string, average float64) error
}

type cartoonRepository struct {
	db *gorm.DB
}

func NewCartoonRepository(db *gorm.DB) CartoonRepository {
	return &cartoonRepository{db: db}
}

func (r *cartoonRepository) WithTx(tx *gorm.DB) CartoonRepository {
	return &cartoonRepository{db: tx}
}

func (r *cartoonRepository) Create(cartoon *models.Cartoon) error {
	return r.db.Create(cartoon).Error
}

func (r *cartoonRepository) Save(cartoon *models.Cartoon) error {
	return r.db.Save(cartoon).Error
}

func (r *cartoonRepository) Delete(id string) error {
	return r.db.Delete(&models.Cartoon{}, "id = ?", id).Error
}

func (r *cartoonRepository) FindByID(id string) (*models.Cartoon, error) {
	var cartoon models.Cartoon
	err := r.db.Preload("Chain").Preload("CategoryCartoon").First(&cartoon, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cartoon, nil
}

func (r *cartoonRepository) FindAllPaginated(offset, limit int) ([]models.Cartoon, int64, error) {
	var cartoons []models.Cartoon
	var total int64

	if err := r.db.Model(&models.Cartoon{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Chain").Preload("CategoryCartoon").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&cartoons).Error
	if err != nil {
		return nil, 0, err
	}
	return cartoons, total, nil
}

func (r *cartoonRepository) FindByChainPaginated(chainID string, offset, limit int) ([]models.Cartoon, int64, error) {
	var cartoons []models.Cartoon
	var total int64

	if err := r.db.Model(&models.Cartoon{}).Where("chain_id = ?", chainID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("CategoryCartoon").
		Where("chain_id = ?", chainID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&cartoons).Error
	if err != nil {
		return nil, 0, err
	}
	return cartoons, total, nil
}

// UpdateRatings writes the recomputed aggregate mean onto the cartoon row.
func (r *cartoonRepository) UpdateRatings(id string, average float64) error {
	return r.db.Model(&models.Cartoon{}).Where("id = ?", id).Update("ratings", average).Error
}

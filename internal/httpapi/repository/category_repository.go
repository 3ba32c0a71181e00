package repository

import (
	"cartoonhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *models.CategoryCartoon) error
	Save(category *models.CategoryCartoon) error
	Delete(id string) error
	FindByID(id string) (*models.CategoryCartoon, error)
	FindAll() ([]models.CategoryCartoon, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *models.CategoryCartoon) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) Save(category *models.CategoryCartoon) error {
	return r.db.Save(category).Error
}

func (r *categoryRepository) Delete(id string) error {
	return r.db.Delete(&models.CategoryCartoon{}, "id = ?", id).Error
}

func (r *categoryRepository) FindByID(id string) (*models.CategoryCartoon, error) {
	var category models.CategoryCartoon
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindAll() ([]models.CategoryCartoon, error) {
	var categories []models.CategoryCartoon
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

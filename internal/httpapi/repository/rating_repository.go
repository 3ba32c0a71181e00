package repository

import (
	"cartoonhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type RatingRepository interface {
	WithTx(tx *gorm.DB) RatingRepository
	Create(rating *models.CartoonRating) error
	Save(rating *models.CartoonRating) error
	Delete(id string) error
	FindByID(id string) (*models.CartoonRating, error)
	FindByUserAndCartoon(userID, cartoonID string) (*models.CartoonRating, error)
	FindByCartoonPaginated(cartoonID string, offset, limit int) ([]models.CartoonRating, int64, error)
	AverageForCartoon(cartoonID string) (float64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) WithTx(tx *gorm.DB) RatingRepository {
	return &ratingRepository{db: tx}
}

func (r *ratingRepository) Create(rating *models.CartoonRating) error {
	return r.db.Create(rating).Error
}

func (r *ratingRepository) Save(rating *models.CartoonRating) error {
	return r.db.Save(rating).Error
}

// Delete is a soft delete; the partial unique index ignores tombstones so
// the user can rate again later.
func (r *ratingRepository) Delete(id string) error {
	return r.db.Delete(&models.CartoonRating{}, "id = ?", id).Error
}

func (r *ratingRepository) FindByID(id string) (*models.CartoonRating, error) {
	var rating models.CartoonRating
	err := r.db.Preload("User").First(&rating, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) FindByUserAndCartoon(userID, cartoonID string) (*models.CartoonRating, error) {
	var rating models.CartoonRating
	err := r.db.Preload("User").
		Where("user_id = ? AND cartoon_id = ?", userID, cartoonID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) FindByCartoonPaginated(cartoonID string, offset, limit int) ([]models.CartoonRating, int64, error) {
	var ratings []models.CartoonRating
	var total int64

	if err := r.db.Model(&models.CartoonRating{}).Where("cartoon_id = ?", cartoonID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("cartoon_id = ?", cartoonID).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}

// AverageForCartoon computes the mean over active (non-deleted) ratings,
// 0 when none remain. The default scope already filters tombstones.
func (r *ratingRepository) AverageForCartoon(cartoonID string) (float64, error) {
	var result struct {
		Average float64
	}
	err := r.db.Model(&models.CartoonRating{}).
		Select("COALESCE(AVG(rating), 0) as average").
		Where("cartoon_id = ?", cartoonID).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}
	return result.Average, nil
}

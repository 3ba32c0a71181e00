package repository

import (
	"cartoonhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(like *models.CartoonLike) error
	DeleteByID(id string) error
	FindByUserAndCartoon(userID, cartoonID string) (*models.CartoonLike, error)
	CountByCartoon(cartoonID string) (int64, error)
	FindByCartoon(cartoonID string) ([]models.CartoonLike, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(like *models.CartoonLike) error {
	return r.db.Create(like).Error
}

// DeleteByID removes the row for real. Likes have no tombstones: a soft
// delete would collide with the unique (cartoon,user) index on re-like.
func (r *likeRepository) DeleteByID(id string) error {
	return r.db.Delete(&models.CartoonLike{}, "id = ?", id).Error
}

func (r *likeRepository) FindByUserAndCartoon(userID, cartoonID string) (*models.CartoonLike, error) {
	var like models.CartoonLike
	err := r.db.Where("user_id = ? AND cartoon_id = ?", userID, cartoonID).First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) CountByCartoon(cartoonID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.CartoonLike{}).Where("cartoon_id = ?", cartoonID).Count(&count).Error
	return count, err
}

func (r *likeRepository) FindByCartoon(cartoonID string) ([]models.CartoonLike, error) {
	var likes []models.CartoonLike
	err := r.db.Where("cartoon_id = ?", cartoonID).
		Preload("User").
		Order("created_at DESC").
		Find(&likes).Error
	return likes, err
}

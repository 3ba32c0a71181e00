package repository

import (
	"cartoonhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *models.CartoonComment) error
	Save(comment *models.CartoonComment) error
	Delete(id string) error
	FindByID(id string) (*models.CartoonComment, error)
	FindTopLevelByCartoonPaginated(cartoonID string, offset, limit int) ([]models.CartoonComment, int64, error)
	FindReplies(parentCommentID string) ([]models.CartoonComment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.CartoonComment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) Save(comment *models.CartoonComment) error {
	return r.db.Save(comment).Error
}

// Delete is a soft delete; replies keep their parent reference.
func (r *commentRepository) Delete(id string) error {
	return r.db.Delete(&models.CartoonComment{}, "id = ?", id).Error
}

func (r *commentRepository) FindByID(id string) (*models.CartoonComment, error) {
	var comment models.CartoonComment
	err := r.db.Preload("User").First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindTopLevelByCartoonPaginated lists root comments newest-first.
func (r *commentRepository) FindTopLevelByCartoonPaginated(cartoonID string, offset, limit int) ([]models.CartoonComment, int64, error) {
	var comments []models.CartoonComment
	var total int64

	base := r.db.Model(&models.CartoonComment{}).
		Where("cartoon_id = ? AND parent_comment_id IS NULL", cartoonID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("cartoon_id = ? AND parent_comment_id IS NULL", cartoonID).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// FindReplies lists a comment's replies oldest-first.
func (r *commentRepository) FindReplies(parentCommentID string) ([]models.CartoonComment, error) {
	var replies []models.CartoonComment
	err := r.db.Where("parent_comment_id = ?", parentCommentID).
		Preload("User").
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

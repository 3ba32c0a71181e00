package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cartoonhub/internal/httpapi/apperr"
	"cartoonhub/internal/httpapi/dto"
	"cartoonhub/internal/httpapi/models"
	"cartoonhub/internal/httpapi/repository"
)

type CommentService interface {
	Create(ctx context.Context, actor Actor, cartoonID string, req dto.CreateCommentRequest) (*models.CartoonComment, error)
	Update(ctx context.Context, actor Actor, id string, req dto.UpdateCommentRequest) (*models.CartoonComment, error)
	Delete(ctx context.Context, actor Actor, id string) error
	FindOne(ctx context.Context, id string) (*models.CartoonComment, error)
	FindByCartoonPaginated(ctx context.Context, cartoonID string, query dto.PaginationQuery) (*dto.Paginated[models.CartoonComment], error)
	FindReplies(ctx context.Context, parentCommentID string) ([]models.CartoonComment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	cartoonRepo repository.CartoonRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	cartoonRepo repository.CartoonRepository,
) CommentService {
	return &commentService{commentRepo: commentRepo, cartoonRepo: cartoonRepo}
}

// Create posts a comment, optionally as a reply. A reply's parent must
// exist and sit on the same cartoon. Reply depth is not limited.
func (s *commentService) Create(ctx context.Context, actor Actor, cartoonID string, req dto.CreateCommentRequest) (*models.CartoonComment, error) {
	if _, err := s.cartoonRepo.FindByID(cartoonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("cartoon not found")
		}
		return nil, err
	}

	if req.ParentCommentID != nil {
		parent, err := s.commentRepo.FindByID(*req.ParentCommentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("parent comment not found")
			}
			return nil, err
		}
		if parent.CartoonID != cartoonID {
			return nil, apperr.BadRequest("parent comment belongs to another cartoon")
		}
	}

	comment := &models.CartoonComment{
		Content:         req.Content,
		CartoonID:       cartoonID,
		UserID:          actor.ID,
		ParentCommentID: req.ParentCommentID,
		CreatedByID:     &actor.ID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, actor Actor, id string, req dto.UpdateCommentRequest) (*models.CartoonComment, error) {
	comment, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actor.ID {
		return nil, apperr.Forbidden("you can only edit your own comments")
	}

	comment.Content = req.Content
	comment.UpdatedByID = &actor.ID
	if err := s.commentRepo.Save(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete soft-deletes the comment. Replies stay in place; their parent
// reference now points at a tombstone the read paths no longer return.
func (s *commentService) Delete(ctx context.Context, actor Actor, id string) error {
	comment, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if comment.UserID != actor.ID && actor.Role != models.RoleAdmin {
		return apperr.Forbidden("you can only delete your own comments")
	}
	return s.commentRepo.Delete(id)
}

func (s *commentService) FindOne(ctx context.Context, id string) (*models.CartoonComment, error) {
	comment, err := s.commentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("comment not found")
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) FindByCartoonPaginated(ctx context.Context, cartoonID string, query dto.PaginationQuery) (*dto.Paginated[models.CartoonComment], error) {
	if _, err := s.cartoonRepo.FindByID(cartoonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("cartoon not found")
		}
		return nil, err
	}

	query.Normalize()
	comments, total, err := s.commentRepo.FindTopLevelByCartoonPaginated(cartoonID, query.Offset(), query.Limit)
	if err != nil {
		return nil, err
	}
	return dto.NewPaginated(comments, query.Page, query.Limit, total), nil
}

func (s *commentService) FindReplies(ctx context.Context, parentCommentID string) ([]models.CartoonComment, error) {
	if _, err := s.FindOne(ctx, parentCommentID); err != nil {
		return nil, err
	}
	return s.commentRepo.FindReplies(parentCommentID)
}

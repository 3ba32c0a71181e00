package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cartoonhub/internal/cache"
	"cartoonhub/internal/httpapi/apperr"
	"cartoonhub/internal/httpapi/models"
	"cartoonhub/internal/httpapi/repository"
)

type LikeService interface {
	Toggle(ctx context.Context, actor Actor, cartoonID string) (bool, error)
	IsLiked(ctx context.Context, actor Actor, cartoonID string) (bool, error)
	Count(ctx context.Context, cartoonID string) (int64, error)
	FindByCartoon(ctx context.Context, cartoonID string) ([]models.CartoonLike, error)
}

type likeService struct {
	likeRepo    repository.LikeRepository
	cartoonRepo repository.CartoonRepository
	countCache  cache.LikeCountCache
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	cartoonRepo repository.CartoonRepository,
	countCache cache.LikeCountCache,
) LikeService {
	return &likeService{likeRepo: likeRepo, cartoonRepo: cartoonRepo, countCache: countCache}
}

func (s *likeService) cartoonExists(cartoonID string) error {
	if _, err := s.cartoonRepo.FindByID(cartoonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("cartoon not found")
		}
		return err
	}
	return nil
}

// Toggle flips the like state and returns the resulting state. The unique
// (cartoon, user) index is the backstop for concurrent toggles: the loser
// of a double-like race gets a conflict instead of a second row.
func (s *likeService) Toggle(ctx context.Context, actor Actor, cartoonID string) (bool, error) {
	if err := s.cartoonExists(cartoonID); err != nil {
		return false, err
	}

	existing, err := s.likeRepo.FindByUserAndCartoon(actor.ID, cartoonID)
	switch {
	case err == nil:
		if err := s.likeRepo.DeleteByID(existing.ID); err != nil {
			return false, err
		}
		s.countCache.Invalidate(ctx, cartoonID)
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := &models.CartoonLike{
			CartoonID:   cartoonID,
			UserID:      actor.ID,
			CreatedByID: &actor.ID,
		}
		if err := s.likeRepo.Create(like); err != nil {
			if apperr.IsUniqueViolation(err) {
				return false, apperr.Conflict("like already registered")
			}
			return false, err
		}
		s.countCache.Invalidate(ctx, cartoonID)
		return true, nil
	default:
		return false, err
	}
}

func (s *likeService) IsLiked(ctx context.Context, actor Actor, cartoonID string) (bool, error) {
	_, err := s.likeRepo.FindByUserAndCartoon(actor.ID, cartoonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Count serves from the cache when warm and falls back to the database.
func (s *likeService) Count(ctx context.Context, cartoonID string) (int64, error) {
	if count, ok := s.countCache.Get(ctx, cartoonID); ok {
		return count, nil
	}

	if err := s.cartoonExists(cartoonID); err != nil {
		return 0, err
	}
	count, err := s.likeRepo.CountByCartoon(cartoonID)
	if err != nil {
		return 0, err
	}
	s.countCache.Set(ctx, cartoonID, count)
	return count, nil
}

func (s *likeService) FindByCartoon(ctx context.Context, cartoonID string) ([]models.CartoonLike, error) {
	if err := s.cartoonExists(cartoonID); err != nil {
		return nil, err
	}
	return s.likeRepo.FindByCartoon(cartoonID)
}

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

type RatingService interface {
	RateCartoon(ctx context.Context, actor Actor, cartoonID string, value float64) (*models.CartoonRating, error)
	DeleteRating(ctx context.Context, actor Actor, ratingID string) error
	FindByCartoonPaginated(ctx context.Context, cartoonID string, query dto.PaginationQuery) (*dto.Paginated[models.CartoonRating], error)
	MyRating(ctx context.Context, actor Actor, cartoonID string) (*models.CartoonRating, error)
}

type ratingService struct {
	db          *gorm.DB
	ratingRepo  repository.RatingRepository
	cartoonRepo repository.CartoonRepository
}

func NewRatingService(
	db *gorm.DB,
	ratingRepo repository.RatingRepository,
	cartoonRepo repository.CartoonRepository,
) RatingService {
	return &ratingService{db: db, ratingRepo: ratingRepo, cartoonRepo: cartoonRepo}
}

// RateCartoon upserts the actor's rating and recomputes the cartoon's
// aggregate mean. Upsert, mean and writeback share one transaction so the
// stored mean always matches the rating rows.
func (s *ratingService) RateCartoon(ctx context.Context, actor Actor, cartoonID string, value float64) (*models.CartoonRating, error) {
	if value < 0 || value > 5 {
		return nil, apperr.BadRequest("rating must be between 0 and 5")
	}

	if _, err := s.cartoonRepo.FindByID(cartoonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("cartoon not found")
		}
		return nil, err
	}

	var rating *models.CartoonRating
	err := s.db.Transaction(func(tx *gorm.DB) error {
		ratingRepo := s.ratingRepo.WithTx(tx)
		cartoonRepo := s.cartoonRepo.WithTx(tx)

		existing, err := ratingRepo.FindByUserAndCartoon(actor.ID, cartoonID)
		switch {
		case err == nil:
			existing.Rating = value
			existing.UpdatedByID = &actor.ID
			if err := ratingRepo.Save(existing); err != nil {
				return err
			}
			rating = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			rating = &models.CartoonRating{
				Rating:      value,
				CartoonID:   cartoonID,
				UserID:      actor.ID,
				CreatedByID: &actor.ID,
			}
			if err := ratingRepo.Create(rating); err != nil {
				if apperr.IsUniqueViolation(err) {
					return apperr.Conflict("rating already submitted, retry to update it")
				}
				return err
			}
		default:
			return err
		}

		average, err := ratingRepo.AverageForCartoon(cartoonID)
		if err != nil {
			return err
		}
		return cartoonRepo.UpdateRatings(cartoonID, average)
	})
	if err != nil {
		return nil, err
	}
	return rating, nil
}

// DeleteRating removes the actor's own rating and recomputes the mean in
// the same transaction.
func (s *ratingService) DeleteRating(ctx context.Context, actor Actor, ratingID string) error {
	rating, err := s.ratingRepo.FindByID(ratingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("rating not found")
		}
		return err
	}
	if rating.UserID != actor.ID && actor.Role != models.RoleAdmin {
		return apperr.Forbidden("you can only delete your own rating")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		ratingRepo := s.ratingRepo.WithTx(tx)
		cartoonRepo := s.cartoonRepo.WithTx(tx)

		if err := ratingRepo.Delete(ratingID); err != nil {
			return err
		}
		average, err := ratingRepo.AverageForCartoon(rating.CartoonID)
		if err != nil {
			return err
		}
		return cartoonRepo.UpdateRatings(rating.CartoonID, average)
	})
}

func (s *ratingService) FindByCartoonPaginated(ctx context.Context, cartoonID string, query dto.PaginationQuery) (*dto.Paginated[models.CartoonRating], error) {
	if _, err := s.cartoonRepo.FindByID(cartoonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("cartoon not found")
		}
		return nil, err
	}

	query.Normalize()
	ratings, total, err := s.ratingRepo.FindByCartoonPaginated(cartoonID, query.Offset(), query.Limit)
	if err != nil {
		return nil, err
	}
	return dto.NewPaginated(ratings, query.Page, query.Limit, total), nil
}

func (s *ratingService) MyRating(ctx context.Context, actor Actor, cartoonID string) (*models.CartoonRating, error) {
	rating, err := s.ratingRepo.FindByUserAndCartoon(actor.ID, cartoonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("you have not rated this cartoon")
		}
		return nil, err
	}
	return rating, nil
}

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

type CartoonService interface {
	Create(ctx context.Context, actor Actor, chainID string, req dto.CreateCartoonRequest) (*models.Cartoon, error)
	Update(ctx context.Context, actor Actor, id string, req dto.UpdateCartoonRequest) (*models.Cartoon, error)
	Delete(ctx context.Context, actor Actor, id string) error
	FindOne(ctx context.Context, id string) (*models.Cartoon, error)
	FindAllPaginated(ctx context.Context, query dto.PaginationQuery) (*dto.Paginated[models.Cartoon], error)
	FindByChainPaginated(ctx context.Context, chainID string, query dto.PaginationQuery) (*dto.Paginated[models.Cartoon], error)
}

type cartoonService struct {
	cartoonRepo  repository.CartoonRepository
	chainRepo    repository.ChainRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
}

func NewCartoonService(
	cartoonRepo repository.CartoonRepository,
	chainRepo repository.ChainRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
) CartoonService {
	return &cartoonService{
		cartoonRepo:  cartoonRepo,
		chainRepo:    chainRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

// ownChain resolves the chain of the actor's company.
func (s *cartoonService) ownChain(actor Actor) (*models.Chain, error) {
	user, err := s.userRepo.FindByID(actor.ID)
	if err != nil {
		return nil, err
	}
	if user.CompanyID == nil {
		return nil, apperr.Forbidden("your account is not attached to a company")
	}
	chain, err := s.chainRepo.FindByCompany(*user.CompanyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.BadRequest("create a chain before adding cartoons")
		}
		return nil, err
	}
	return chain, nil
}

// Create adds a cartoon to the chain named in the route. Creators may only
// post to their own company's chain; admins may post anywhere.
func (s *cartoonService) Create(ctx context.Context, actor Actor, chainID string, req dto.CreateCartoonRequest) (*models.Cartoon, error) {
	chain, err := s.chainRepo.FindByID(chainID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("chain not found")
		}
		return nil, err
	}
	if actor.Role != models.RoleAdmin {
		own, err := s.ownChain(actor)
		if err != nil {
			return nil, err
		}
		if own.ID != chain.ID {
			return nil, apperr.Forbidden("this chain belongs to another company")
		}
	}

	if req.CategoryCartoonID != nil {
		if _, err := s.categoryRepo.FindByID(*req.CategoryCartoonID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("category not found")
			}
			return nil, err
		}
	}

	cartoon := &models.Cartoon{
		Title:              req.Title,
		Description:        req.Description,
		ImageBackgroundURL: req.ImageBackgroundURL,
		VideoURL:           req.VideoURL,
		ChainID:            chain.ID,
		CategoryCartoonID:  req.CategoryCartoonID,
		CreatedByID:        &actor.ID,
	}
	if err := s.cartoonRepo.Create(cartoon); err != nil {
		return nil, err
	}
	return cartoon, nil
}

func (s *cartoonService) Update(ctx context.Context, actor Actor, id string, req dto.UpdateCartoonRequest) (*models.Cartoon, error) {
	cartoon, err := s.findOwned(actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		cartoon.Title = *req.Title
	}
	if req.Description != nil {
		cartoon.Description = *req.Description
	}
	if req.ImageBackgroundURL != nil {
		cartoon.ImageBackgroundURL = *req.ImageBackgroundURL
	}
	if req.VideoURL != nil {
		cartoon.VideoURL = *req.VideoURL
	}
	if req.CategoryCartoonID != nil {
		if _, err := s.categoryRepo.FindByID(*req.CategoryCartoonID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("category not found")
			}
			return nil, err
		}
		cartoon.CategoryCartoonID = req.CategoryCartoonID
	}
	cartoon.UpdatedByID = &actor.ID

	if err := s.cartoonRepo.Save(cartoon); err != nil {
		return nil, err
	}
	return cartoon, nil
}

func (s *cartoonService) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := s.findOwned(actor, id); err != nil {
		return err
	}
	return s.cartoonRepo.Delete(id)
}

// findOwned loads the cartoon and checks the actor may mutate it. Admins may
// touch any cartoon; creators only those on their company's chain.
func (s *cartoonService) findOwned(actor Actor, id string) (*models.Cartoon, error) {
	cartoon, err := s.cartoonRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("cartoon not found")
		}
		return nil, err
	}
	if actor.Role == models.RoleAdmin {
		return cartoon, nil
	}

	chain, err := s.ownChain(actor)
	if err != nil {
		return nil, err
	}
	if cartoon.ChainID != chain.ID {
		return nil, apperr.Forbidden("this cartoon belongs to another company's chain")
	}
	return cartoon, nil
}

func (s *cartoonService) FindOne(ctx context.Context, id string) (*models.Cartoon, error) {
	cartoon, err := s.cartoonRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("cartoon not found")
		}
		return nil, err
	}
	return cartoon, nil
}

func (s *cartoonService) FindAllPaginated(ctx context.Context, query dto.PaginationQuery) (*dto.Paginated[models.Cartoon], error) {
	query.Normalize()
	cartoons, total, err := s.cartoonRepo.FindAllPaginated(query.Offset(), query.Limit)
	if err != nil {
		return nil, err
	}
	return dto.NewPaginated(cartoons, query.Page, query.Limit, total), nil
}

func (s *cartoonService) FindByChainPaginated(ctx context.Context, chainID string, query dto.PaginationQuery) (*dto.Paginated[models.Cartoon], error) {
	if _, err := s.chainRepo.FindByID(chainID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("chain not found")
		}
		return nil, err
	}

	query.Normalize()
	cartoons, total, err := s.cartoonRepo.FindByChainPaginated(chainID, query.Offset(), query.Limit)
	if err != nil {
		return nil, err
	}
	return dto.NewPaginated(cartoons, query.Page, query.Limit, total), nil
}

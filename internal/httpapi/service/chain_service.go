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

type ChainService interface {
	Create(ctx context.Context, actor Actor, req dto.CreateChainRequest) (*models.Chain, error)
	Update(ctx context.Context, actor Actor, id string, req dto.UpdateChainRequest) (*models.Chain, error)
	Delete(ctx context.Context, actor Actor, id string) error
	FindOne(ctx context.Context, id string) (*models.Chain, error)
	FindByCompany(ctx context.Context, companyID string) (*models.Chain, error)
	FindAllPaginated(ctx context.Context, query dto.PaginationQuery) (*dto.Paginated[models.Chain], error)
	MyChain(ctx context.Context, actor Actor) (*models.Chain, error)
}

type chainService struct {
	chainRepo repository.ChainRepository
	userRepo  repository.UserRepository
}

func NewChainService(chainRepo repository.ChainRepository, userRepo repository.UserRepository) ChainService {
	return &chainService{chainRepo: chainRepo, userRepo: userRepo}
}

// companyOf resolves the actor's company. Creators without a company cannot
// own content.
func (s *chainService) companyOf(actor Actor) (string, error) {
	user, err := s.userRepo.FindByID(actor.ID)
	if err != nil {
		return "", err
	}
	if user.CompanyID == nil {
		return "", apperr.Forbidden("your account is not attached to a company")
	}
	return *user.CompanyID, nil
}

// Create enforces one chain per company.
func (s *chainService) Create(ctx context.Context, actor Actor, req dto.CreateChainRequest) (*models.Chain, error) {
	companyID, err := s.companyOf(actor)
	if err != nil {
		return nil, err
	}

	if _, err := s.chainRepo.FindByCompany(companyID); err == nil {
		return nil, apperr.Conflict("your company already has a chain")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	chain := &models.Chain{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CompanyID:   &companyID,
		CreatedByID: &actor.ID,
	}
	if err := s.chainRepo.Create(chain); err != nil {
		return nil, err
	}
	return chain, nil
}

func (s *chainService) Update(ctx context.Context, actor Actor, id string, req dto.UpdateChainRequest) (*models.Chain, error) {
	chain, err := s.findOwned(actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		chain.Name = *req.Name
	}
	if req.Description != nil {
		chain.Description = *req.Description
	}
	if req.ImageURL != nil {
		chain.ImageURL = *req.ImageURL
	}
	chain.UpdatedByID = &actor.ID

	if err := s.chainRepo.Save(chain); err != nil {
		return nil, err
	}
	return chain, nil
}

func (s *chainService) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := s.findOwned(actor, id); err != nil {
		return err
	}
	return s.chainRepo.Delete(id)
}

// findOwned loads the chain and checks the actor may mutate it. Admins may
// touch any chain; creators only their company's.
func (s *chainService) findOwned(actor Actor, id string) (*models.Chain, error) {
	chain, err := s.chainRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("chain not found")
		}
		return nil, err
	}
	if actor.Role == models.RoleAdmin {
		return chain, nil
	}

	companyID, err := s.companyOf(actor)
	if err != nil {
		return nil, err
	}
	if chain.CompanyID == nil || *chain.CompanyID != companyID {
		return nil, apperr.Forbidden("this chain belongs to another company")
	}
	return chain, nil
}

func (s *chainService) FindOne(ctx context.Context, id string) (*models.Chain, error) {
	chain, err := s.chainRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("chain not found")
		}
		return nil, err
	}
	return chain, nil
}

func (s *chainService) FindByCompany(ctx context.Context, companyID string) (*models.Chain, error) {
	chain, err := s.chainRepo.FindByCompany(companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("this company has no chain")
		}
		return nil, err
	}
	return chain, nil
}

func (s *chainService) FindAllPaginated(ctx context.Context, query dto.PaginationQuery) (*dto.Paginated[models.Chain], error) {
	query.Normalize()
	chains, total, err := s.chainRepo.FindAllPaginated(query.Offset(), query.Limit)
	if err != nil {
		return nil, err
	}
	return dto.NewPaginated(chains, query.Page, query.Limit, total), nil
}

func (s *chainService) MyChain(ctx context.Context, actor Actor) (*models.Chain, error) {
	companyID, err := s.companyOf(actor)
	if err != nil {
		return nil, err
	}
	chain, err := s.chainRepo.FindByCompany(companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("your company has no chain yet")
		}
		return nil, err
	}
	return chain, nil
}

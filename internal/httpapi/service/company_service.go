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

// CompanyService is read-only. Companies come into existence through the
// registration review flow, never through a direct create endpoint.
type CompanyService interface {
	FindAllPaginated(ctx context.Context, query dto.PaginationQuery) (*dto.Paginated[models.Company], error)
	FindOne(ctx context.Context, id string) (*models.Company, error)
}

type companyService struct {
	companyRepo repository.CompanyRepository
}

func NewCompanyService(companyRepo repository.CompanyRepository) CompanyService {
	return &companyService{companyRepo: companyRepo}
}

func (s *companyService) FindAllPaginated(ctx context.Context, query dto.PaginationQuery) (*dto.Paginated[models.Company], error) {
	query.Normalize()
	companies, total, err := s.companyRepo.FindAllPaginated(query.Offset(), query.Limit)
	if err != nil {
		return nil, err
	}
	return dto.NewPaginated(companies, query.Page, query.Limit, total), nil
}

func (s *companyService) FindOne(ctx context.Context, id string) (*models.Company, error) {
	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("company not found")
		}
		return nil, err
	}
	return company, nil
}

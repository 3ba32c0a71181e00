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

type CategoryService interface {
	Create(ctx context.Context, actor Actor, req dto.CreateCategoryRequest) (*models.CategoryCartoon, error)
	Update(ctx context.Context, actor Actor, id string, req dto.UpdateCategoryRequest) (*models.CategoryCartoon, error)
	Delete(ctx context.Context, id string) error
	FindOne(ctx context.Context, id string) (*models.CategoryCartoon, error)
	FindAll(ctx context.Context) ([]models.CategoryCartoon, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(ctx context.Context, actor Actor, req dto.CreateCategoryRequest) (*models.CategoryCartoon, error) {
	category := &models.CategoryCartoon{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		CreatedByID: &actor.ID,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, actor Actor, id string, req dto.UpdateCategoryRequest) (*models.CategoryCartoon, error) {
	category, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = req.Description
	}
	if req.Color != nil {
		category.Color = req.Color
	}
	category.UpdatedByID = &actor.ID

	if err := s.categoryRepo.Save(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.FindOne(ctx, id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(id)
}

func (s *categoryService) FindOne(ctx context.Context, id string) (*models.CategoryCartoon, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("category not found")
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) FindAll(ctx context.Context) ([]models.CategoryCartoon, error) {
	return s.categoryRepo.FindAll()
}

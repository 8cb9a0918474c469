package services

import (
	"context"

	"urbanreport/internal/dto"
	"urbanreport/internal/repositories"
)

type CategoryServiceInterface interface {
	GetCategories(ctx context.Context) ([]dto.CategoryDTO, error)
}

type categoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
}

func NewCategoryService(categoryRepo repositories.CategoryRepositoryInterface) CategoryServiceInterface {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) GetCategories(ctx context.Context) ([]dto.CategoryDTO, error) {
	categories, err := s.categoryRepo.GetActiveCategories(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.CategoryDTO, 0, len(categories))
	for i := range categories {
		result = append(result, toCategoryDTO(&categories[i]))
	}
	return result, nil
}

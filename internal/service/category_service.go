package service

import (
	"context"
	"errors"

	"anoa.com/yamdbreview/internal/dto"
	"anoa.com/yamdbreview/internal/model"
	"anoa.com/yamdbreview/internal/repository"
	"anoa.com/yamdbreview/pkg/apperror"
	"gorm.io/gorm"
)

type CategoryService interface {
	Create(ctx context.Context, req dto.CreateSlugRequest) (*dto.SlugResponse, error)
	List(ctx context.Context, filter dto.SlugFilter) (*dto.PaginatedSlugResponse, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateSlugRequest) (*dto.SlugResponse, error) {
	category := &model.Category{Name: req.Name, Slug: req.Slug}

	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Wrap(apperror.ErrConflict, "category slug already exists")
		}
		return nil, err
	}

	return &dto.SlugResponse{Name: category.Name, Slug: category.Slug}, nil
}

func (s *categoryService) List(ctx context.Context, filter dto.SlugFilter) (*dto.PaginatedSlugResponse, error) {
	filter.Normalize()

	categories, total, err := s.repo.FindAll(ctx, filter.Search, filter.Offset(), filter.Limit)
	if err != nil {
		return nil, err
	}

	data := make([]dto.SlugResponse, 0, len(categories))
	for _, category := range categories {
		data = append(data, dto.SlugResponse{Name: category.Name, Slug: category.Slug})
	}

	return &dto.PaginatedSlugResponse{
		Data: data,
		Meta: dto.BuildMeta(filter.PageFilter, total),
	}, nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Wrap(apperror.ErrNotFound, "category not found")
		}
		return err
	}
	return nil
}

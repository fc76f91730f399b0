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

type GenreService interface {
	Create(ctx context.Context, req dto.CreateSlugRequest) (*dto.SlugResponse, error)
	List(ctx context.Context, filter dto.SlugFilter) (*dto.PaginatedSlugResponse, error)
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	repo repository.GenreRepository
}

func NewGenreService(repo repository.GenreRepository) GenreService {
	return &genreService{repo: repo}
}

func (s *genreService) Create(ctx context.Context, req dto.CreateSlugRequest) (*dto.SlugResponse, error) {
	genre := &model.Genre{Name: req.Name, Slug: req.Slug}

	if err := s.repo.Create(ctx, genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Wrap(apperror.ErrConflict, "genre slug already exists")
		}
		return nil, err
	}

	return &dto.SlugResponse{Name: genre.Name, Slug: genre.Slug}, nil
}

func (s *genreService) List(ctx context.Context, filter dto.SlugFilter) (*dto.PaginatedSlugResponse, error) {
	filter.Normalize()

	genres, total, err := s.repo.FindAll(ctx, filter.Search, filter.Offset(), filter.Limit)
	if err != nil {
		return nil, err
	}

	data := make([]dto.SlugResponse, 0, len(genres))
	for _, genre := range genres {
		data = append(data, dto.SlugResponse{Name: genre.Name, Slug: genre.Slug})
	}

	return &dto.PaginatedSlugResponse{
		Data: data,
		Meta: dto.BuildMeta(filter.PageFilter, total),
	}, nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Wrap(apperror.ErrNotFound, "genre not found")
		}
		return err
	}
	return nil
}

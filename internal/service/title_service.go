package service

import (
	"context"
	"errors"
	"log"

	"anoa.com/yamdbreview/internal/dto"
	"anoa.com/yamdbreview/internal/model"
	"anoa.com/yamdbreview/internal/repository"
	"anoa.com/yamdbreview/internal/validation"
	"anoa.com/yamdbreview/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TitleService interface {
	Create(ctx context.Context, req dto.CreateTitleRequest) (*dto.TitleResponse, error)
	List(ctx context.Context, filter dto.TitleFilter) (*dto.PaginatedTitleResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.TitleResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateTitleRequest) (*dto.TitleResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	search       SearchService
}

func NewTitleService(titleRepo repository.TitleRepository, categoryRepo repository.CategoryRepository, genreRepo repository.GenreRepository, search SearchService) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		search:       search,
	}
}

func (s *titleService) Create(ctx context.Context, req dto.CreateTitleRequest) (*dto.TitleResponse, error) {
	if err := validation.ValidateTitleYear(req.Year); err != nil {
		return nil, err
	}

	title := &model.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
	}

	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	genres, err := s.resolveGenres(ctx, req.Genres)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}

	s.index(title, nil)

	resp := dto.NewTitleResponse(title, nil)
	return &resp, nil
}

func (s *titleService) List(ctx context.Context, filter dto.TitleFilter) (*dto.PaginatedTitleResponse, error) {
	filter.Normalize()

	titles, total, err := s.titleRepo.FindAll(ctx, repository.TitleQuery{
		Name:         filter.Name,
		CategorySlug: filter.Category,
		GenreSlug:    filter.Genre,
		Year:         filter.Year,
		Offset:       filter.Offset(),
		Limit:        filter.Limit,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(titles))
	for _, title := range titles {
		ids = append(ids, title.ID)
	}
	ratings, err := s.titleRepo.Ratings(ctx, ids)
	if err != nil {
		return nil, err
	}

	data := make([]dto.TitleResponse, 0, len(titles))
	for _, title := range titles {
		data = append(data, dto.NewTitleResponse(title, ratingFor(ratings, title.ID)))
	}

	return &dto.PaginatedTitleResponse{
		Data: data,
		Meta: dto.BuildMeta(filter.PageFilter, total),
	}, nil
}

func (s *titleService) Get(ctx context.Context, id uuid.UUID) (*dto.TitleResponse, error) {
	title, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ratings, err := s.titleRepo.Ratings(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}

	resp := dto.NewTitleResponse(title, ratingFor(ratings, id))
	return &resp, nil
}

func (s *titleService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateTitleRequest) (*dto.TitleResponse, error) {
	title, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := validation.ValidateTitleYear(*req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	if req.Genres != nil {
		genres, err := s.resolveGenres(ctx, req.Genres)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
		title.Genres = genres
	}

	if err := s.titleRepo.Update(ctx, title); err != nil {
		return nil, err
	}

	ratings, err := s.titleRepo.Ratings(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	rating := ratingFor(ratings, id)

	s.index(title, rating)

	resp := dto.NewTitleResponse(title, rating)
	return &resp, nil
}

func (s *titleService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findByID(ctx, id); err != nil {
		return err
	}

	if err := s.titleRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.search.DeleteTitle(id.String()); err != nil {
		log.Printf("failed to remove title %s from search index: %v", id, err)
	}
	return nil
}

func (s *titleService) findByID(ctx context.Context, id uuid.UUID) (*model.Title, error) {
	title, err := s.titleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Wrap(apperror.ErrNotFound, "title not found")
		}
		return nil, err
	}
	return title, nil
}

// resolveCategory maps a slug from the payload to a stored category.
// Unknown slugs are a client error, not a 404: the path resource is the
// title, not the category.
func (s *titleService) resolveCategory(ctx context.Context, slug string) (*model.Category, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Wrap(apperror.ErrInvalidInput, "unknown category slug: "+slug)
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]model.Genre, error) {
	if len(slugs) == 0 {
		return []model.Genre{}, nil
	}

	genres, err := s.genreRepo.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(slugs) {
		return nil, apperror.Wrap(apperror.ErrInvalidInput, "one or more genre slugs are unknown")
	}
	return genres, nil
}

func (s *titleService) index(title *model.Title, rating *float64) {
	if err := s.search.IndexTitle(title, rating); err != nil {
		log.Printf("failed to index title %s: %v", title.ID, err)
	}
}

func ratingFor(ratings map[uuid.UUID]float64, id uuid.UUID) *float64 {
	if rating, ok := ratings[id]; ok {
		return &rating
	}
	return nil
}

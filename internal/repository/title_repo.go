package repository

import (
	"context"

	"anoa.com/yamdbreview/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TitleQuery carries the list filters of the titles endpoint.
type TitleQuery struct {
	Name         string
	CategorySlug string
	GenreSlug    string
	Year         *int
	Offset       int
	Limit        int
}

type TitleRepository interface {
	Create(ctx context.Context, title *model.Title) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Title, error)
	FindAll(ctx context.Context, query TitleQuery) ([]*model.Title, int64, error)
	Update(ctx context.Context, title *model.Title) error
	ReplaceGenres(ctx context.Context, title *model.Title, genres []model.Genre) error
	Delete(ctx context.Context, id uuid.UUID) error
	Ratings(ctx context.Context, titleIDs []uuid.UUID) (map[uuid.UUID]float64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(ctx context.Context, title *model.Title) error {
	return r.db.WithContext(ctx).Create(title).Error
}

func (r *titleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Title, error) {
	var title model.Title
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres").
		First(&title, "titles.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) FindAll(ctx context.Context, query TitleQuery) ([]*model.Title, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Title{})

	if query.Name != "" {
		q = q.Where("titles.name ILIKE ?", "%"+query.Name+"%")
	}
	if query.Year != nil {
		q = q.Where("titles.year = ?", *query.Year)
	}
	if query.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", query.CategorySlug)
	}
	if query.GenreSlug != "" {
		q = q.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", query.GenreSlug)
	}

	// Count and fetch run on separate sessions: after the chained
	// conditions q reuses its statement, so the count's distinct-id
	// select would otherwise leak into the fetch.
	var total int64
	if err := q.Session(&gorm.Session{}).Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var titles []*model.Title
	if err := q.Session(&gorm.Session{}).
		Distinct("titles.*").
		Preload("Category").
		Preload("Genres").
		Order("titles.name").
		Offset(query.Offset).
		Limit(query.Limit).
		Find(&titles).Error; err != nil {
		return nil, 0, err
	}
	return titles, total, nil
}

func (r *titleRepository) Update(ctx context.Context, title *model.Title) error {
	return r.db.WithContext(ctx).Save(title).Error
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, title *model.Title, genres []model.Genre) error {
	return r.db.WithContext(ctx).Model(title).Association("Genres").Replace(genres)
}

func (r *titleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Title{}, "id = ?", id).Error
}

// Ratings computes the average review score per title. Titles without
// reviews are simply absent from the result.
func (r *titleRepository) Ratings(ctx context.Context, titleIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	ratings := make(map[uuid.UUID]float64, len(titleIDs))
	if len(titleIDs) == 0 {
		return ratings, nil
	}

	var rows []struct {
		TitleID uuid.UUID
		Rating  float64
	}
	if err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("title_id, AVG(score) AS rating").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		ratings[row.TitleID] = row.Rating
	}
	return ratings, nil
}

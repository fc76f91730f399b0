package dto

import (
	"anoa.com/yamdbreview/internal/model"
	"github.com/google/uuid"
)

type CreateSlugRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

type SlugResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type SlugFilter struct {
	PageFilter
	// Exact-name search, matching the original catalog filter.
	Search string `form:"search"`
}

type PaginatedSlugResponse struct {
	Data []SlugResponse `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Year        int      `json:"year" binding:"required"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genres      []string `json:"genre"`
}

type UpdateTitleRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=200"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genres      []string `json:"genre"`
}

type TitleFilter struct {
	PageFilter
	Name     string `form:"name"`
	Category string `form:"category"`
	Genre    string `form:"genre"`
	Year     *int   `form:"year"`
}

type TitleResponse struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Year        int            `json:"year"`
	Description *string        `json:"description,omitempty"`
	Category    *SlugResponse  `json:"category"`
	Genres      []SlugResponse `json:"genre"`

	// Average review score; null until the first review lands.
	Rating *float64 `json:"rating"`
}

func NewTitleResponse(title *model.Title, rating *float64) TitleResponse {
	resp := TitleResponse{
		ID:          title.ID,
		Name:        title.Name,
		Year:        title.Year,
		Description: title.Description,
		Genres:      []SlugResponse{},
		Rating:      rating,
	}
	if title.Category != nil {
		resp.Category = &SlugResponse{Name: title.Category.Name, Slug: title.Category.Slug}
	}
	for _, g := range title.Genres {
		resp.Genres = append(resp.Genres, SlugResponse{Name: g.Name, Slug: g.Slug})
	}
	return resp
}

type PaginatedTitleResponse struct {
	Data []TitleResponse `json:"data"`
	Meta PaginationMeta  `json:"meta"`
}

package service

import (
	"context"
	"testing"

	"anoa.com/yamdbreview/internal/dto"
	"anoa.com/yamdbreview/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCreateAndConflict(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo())

	resp, err := svc.Create(context.Background(), dto.CreateSlugRequest{Name: "Movie", Slug: "movie"})
	require.NoError(t, err)
	assert.Equal(t, "movie", resp.Slug)

	_, err = svc.Create(context.Background(), dto.CreateSlugRequest{Name: "Movie Again", Slug: "movie"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestCategoryDelete(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo("movie"))

	require.NoError(t, svc.Delete(context.Background(), "movie"))

	err := svc.Delete(context.Background(), "movie")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGenreCreateAndConflict(t *testing.T) {
	svc := NewGenreService(newStubGenreRepo())

	resp, err := svc.Create(context.Background(), dto.CreateSlugRequest{Name: "Drama", Slug: "drama"})
	require.NoError(t, err)
	assert.Equal(t, "drama", resp.Slug)

	_, err = svc.Create(context.Background(), dto.CreateSlugRequest{Name: "Drama Again", Slug: "drama"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestGenreList(t *testing.T) {
	svc := NewGenreService(newStubGenreRepo("drama", "comedy"))

	resp, err := svc.List(context.Background(), dto.SlugFilter{})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)

	// Catalog search matches the exact name.
	resp, err = svc.List(context.Background(), dto.SlugFilter{Search: "drama"})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "drama", resp.Data[0].Slug)
}

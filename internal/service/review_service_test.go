package service

import (
	"context"
	"testing"

	"anoa.com/yamdbreview/internal/dto"
	"anoa.com/yamdbreview/internal/model"
	"anoa.com/yamdbreview/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	svc     ReviewService
	users   *stubUserRepo
	reviews *stubReviewRepo
	titles  *stubTitleRepo
	titleID uuid.UUID
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	users := newStubUserRepo()
	reviews := newStubReviewRepo()
	titles := newStubTitleRepo()

	title := &model.Title{Name: "The Seventh Seal", Year: 1957}
	require.NoError(t, titles.Create(context.Background(), title))

	return &reviewFixture{
		svc:     NewReviewService(reviews, titles, users),
		users:   users,
		reviews: reviews,
		titles:  titles,
		titleID: title.ID,
	}
}

func TestCreateReview(t *testing.T) {
	f := newReviewFixture(t)
	author := seedUser(t, f.users, "alice", model.RoleUser)

	resp, err := f.svc.Create(context.Background(), author.ID, f.titleID, dto.CreateReviewRequest{
		Text:  "a classic",
		Score: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Author)
	assert.Equal(t, 9, resp.Score)
}

func TestCreateReviewScoreOutOfRange(t *testing.T) {
	f := newReviewFixture(t)
	author := seedUser(t, f.users, "alice", model.RoleUser)

	for _, score := range []int{0, 11} {
		_, err := f.svc.Create(context.Background(), author.ID, f.titleID, dto.CreateReviewRequest{
			Text:  "broken",
			Score: score,
		})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput, "score %d", score)
	}
}

func TestCreateSecondReviewForSameTitle(t *testing.T) {
	f := newReviewFixture(t)
	author := seedUser(t, f.users, "alice", model.RoleUser)

	_, err := f.svc.Create(context.Background(), author.ID, f.titleID, dto.CreateReviewRequest{
		Text:  "first take",
		Score: 7,
	})
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), author.ID, f.titleID, dto.CreateReviewRequest{
		Text:  "second take",
		Score: 8,
	})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	// A different user may still review the same title.
	other := seedUser(t, f.users, "bob", model.RoleUser)
	_, err = f.svc.Create(context.Background(), other.ID, f.titleID, dto.CreateReviewRequest{
		Text:  "me too",
		Score: 5,
	})
	assert.NoError(t, err)
}

func TestCreateReviewUnknownTitle(t *testing.T) {
	f := newReviewFixture(t)
	author := seedUser(t, f.users, "alice", model.RoleUser)

	_, err := f.svc.Create(context.Background(), author.ID, uuid.New(), dto.CreateReviewRequest{
		Text:  "where is it",
		Score: 5,
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateReviewOwnership(t *testing.T) {
	f := newReviewFixture(t)
	author := seedUser(t, f.users, "alice", model.RoleUser)
	stranger := seedUser(t, f.users, "bob", model.RoleUser)
	moderator := seedUser(t, f.users, "mod", model.RoleModerator)

	created, err := f.svc.Create(context.Background(), author.ID, f.titleID, dto.CreateReviewRequest{
		Text:  "original",
		Score: 6,
	})
	require.NoError(t, err)

	newScore := 3
	_, err = f.svc.Update(context.Background(), stranger.ID, f.titleID, created.ID, dto.UpdateReviewRequest{
		Score: &newScore,
	})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	resp, err := f.svc.Update(context.Background(), moderator.ID, f.titleID, created.ID, dto.UpdateReviewRequest{
		Score: &newScore,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Score)

	text := "edited by the author"
	resp, err = f.svc.Update(context.Background(), author.ID, f.titleID, created.ID, dto.UpdateReviewRequest{
		Text: &text,
	})
	require.NoError(t, err)
	assert.Equal(t, text, resp.Text)
}

func TestDeleteReviewOwnership(t *testing.T) {
	f := newReviewFixture(t)
	author := seedUser(t, f.users, "alice", model.RoleUser)
	stranger := seedUser(t, f.users, "bob", model.RoleUser)

	created, err := f.svc.Create(context.Background(), author.ID, f.titleID, dto.CreateReviewRequest{
		Text:  "short lived",
		Score: 4,
	})
	require.NoError(t, err)

	err = f.svc.Delete(context.Background(), stranger.ID, f.titleID, created.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	err = f.svc.Delete(context.Background(), author.ID, f.titleID, created.ID)
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), f.titleID, created.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetReviewScopedToTitle(t *testing.T) {
	f := newReviewFixture(t)
	author := seedUser(t, f.users, "alice", model.RoleUser)

	otherTitle := &model.Title{Name: "Wild Strawberries", Year: 1957}
	require.NoError(t, f.titles.Create(context.Background(), otherTitle))

	created, err := f.svc.Create(context.Background(), author.ID, f.titleID, dto.CreateReviewRequest{
		Text:  "scoped",
		Score: 8,
	})
	require.NoError(t, err)

	// The same review id under another title's path is a miss.
	_, err = f.svc.Get(context.Background(), otherTitle.ID, created.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

package service

import (
	"context"
	"strings"
	"sync"

	"anoa.com/yamdbreview/internal/model"
	"anoa.com/yamdbreview/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository stubs mimicking the Postgres behavior the
// services rely on: not-found and duplicated-key sentinels.

type stubUserRepo struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*model.User
	updateErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func cloneUser(u *model.User) *model.User {
	clone := *u
	if u.Bio != nil {
		bio := *u.Bio
		clone.Bio = &bio
	}
	if u.ConfirmationCode != nil {
		code := *u.ConfirmationCode
		clone.ConfirmationCode = &code
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[id]; ok {
		return cloneUser(user), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context, search string, offset, limit int) ([]*model.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*model.User
	for _, user := range r.users {
		if search == "" || strings.Contains(user.Username, search) {
			matched = append(matched, cloneUser(user))
		}
	}

	total := int64(len(matched))
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updateErr != nil {
		err := r.updateErr
		r.updateErr = nil
		return err
	}
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for _, existing := range r.users {
		if existing.ID != user.ID && (existing.Username == user.Username || existing.Email == user.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type sentMail struct {
	To       string
	Username string
	Code     string
}

type stubMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *stubMailer) SendConfirmationCode(_ context.Context, to, username, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Username: username, Code: code})
	return nil
}

type stubReviewRepo struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]*model.Review
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{reviews: make(map[uuid.UUID]*model.Review)}
}

func (r *stubReviewRepo) Create(_ context.Context, review *model.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.reviews {
		if existing.TitleID == review.TitleID && existing.UserID == review.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	clone := *review
	r.reviews[review.ID] = &clone
	return nil
}

func (r *stubReviewRepo) FindByID(_ context.Context, titleID, reviewID uuid.UUID) (*model.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review, ok := r.reviews[reviewID]; ok && review.TitleID == titleID {
		clone := *review
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubReviewRepo) FindByTitle(_ context.Context, titleID uuid.UUID, offset, limit int) ([]*model.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*model.Review
	for _, review := range r.reviews {
		if review.TitleID == titleID {
			clone := *review
			matched = append(matched, &clone)
		}
	}
	return matched, int64(len(matched)), nil
}

func (r *stubReviewRepo) Update(_ context.Context, review *model.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[review.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *review
	r.reviews[review.ID] = &clone
	return nil
}

func (r *stubReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.reviews, id)
	return nil
}

type stubTitleRepo struct {
	mu      sync.Mutex
	titles  map[uuid.UUID]*model.Title
	ratings map[uuid.UUID]float64
}

func newStubTitleRepo() *stubTitleRepo {
	return &stubTitleRepo{
		titles:  make(map[uuid.UUID]*model.Title),
		ratings: make(map[uuid.UUID]float64),
	}
}

func (r *stubTitleRepo) Create(_ context.Context, title *model.Title) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if title.ID == uuid.Nil {
		title.ID = uuid.New()
	}
	clone := *title
	r.titles[title.ID] = &clone
	return nil
}

func (r *stubTitleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Title, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if title, ok := r.titles[id]; ok {
		clone := *title
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTitleRepo) FindAll(_ context.Context, query repository.TitleQuery) ([]*model.Title, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*model.Title
	for _, title := range r.titles {
		if query.Name != "" && !strings.Contains(strings.ToLower(title.Name), strings.ToLower(query.Name)) {
			continue
		}
		if query.Year != nil && title.Year != *query.Year {
			continue
		}
		clone := *title
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

func (r *stubTitleRepo) Update(_ context.Context, title *model.Title) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *title
	r.titles[title.ID] = &clone
	return nil
}

func (r *stubTitleRepo) ReplaceGenres(_ context.Context, title *model.Title, genres []model.Genre) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stored, ok := r.titles[title.ID]; ok {
		stored.Genres = genres
	}
	return nil
}

func (r *stubTitleRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.titles, id)
	return nil
}

func (r *stubTitleRepo) Ratings(_ context.Context, titleIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[uuid.UUID]float64)
	for _, id := range titleIDs {
		if rating, ok := r.ratings[id]; ok {
			out[id] = rating
		}
	}
	return out, nil
}

type stubCategoryRepo struct {
	categories map[string]*model.Category
}

func newStubCategoryRepo(slugs ...string) *stubCategoryRepo {
	r := &stubCategoryRepo{categories: make(map[string]*model.Category)}
	for _, slug := range slugs {
		r.categories[slug] = &model.Category{ID: uuid.New(), Name: slug, Slug: slug}
	}
	return r
}

func (r *stubCategoryRepo) Create(_ context.Context, category *model.Category) error {
	if _, ok := r.categories[category.Slug]; ok {
		return gorm.ErrDuplicatedKey
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	r.categories[category.Slug] = category
	return nil
}

func (r *stubCategoryRepo) FindBySlug(_ context.Context, slug string) (*model.Category, error) {
	if category, ok := r.categories[slug]; ok {
		return category, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) FindAll(_ context.Context, search string, offset, limit int) ([]*model.Category, int64, error) {
	var matched []*model.Category
	for _, category := range r.categories {
		if search == "" || category.Name == search {
			matched = append(matched, category)
		}
	}
	return matched, int64(len(matched)), nil
}

func (r *stubCategoryRepo) DeleteBySlug(_ context.Context, slug string) error {
	if _, ok := r.categories[slug]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.categories, slug)
	return nil
}

type stubGenreRepo struct {
	genres map[string]*model.Genre
}

func newStubGenreRepo(slugs ...string) *stubGenreRepo {
	r := &stubGenreRepo{genres: make(map[string]*model.Genre)}
	for _, slug := range slugs {
		r.genres[slug] = &model.Genre{ID: uuid.New(), Name: slug, Slug: slug}
	}
	return r
}

func (r *stubGenreRepo) Create(_ context.Context, genre *model.Genre) error {
	if _, ok := r.genres[genre.Slug]; ok {
		return gorm.ErrDuplicatedKey
	}
	if genre.ID == uuid.Nil {
		genre.ID = uuid.New()
	}
	r.genres[genre.Slug] = genre
	return nil
}

func (r *stubGenreRepo) FindBySlug(_ context.Context, slug string) (*model.Genre, error) {
	if genre, ok := r.genres[slug]; ok {
		return genre, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubGenreRepo) FindBySlugs(_ context.Context, slugs []string) ([]model.Genre, error) {
	var matched []model.Genre
	for _, slug := range slugs {
		if genre, ok := r.genres[slug]; ok {
			matched = append(matched, *genre)
		}
	}
	return matched, nil
}

func (r *stubGenreRepo) FindAll(_ context.Context, search string, offset, limit int) ([]*model.Genre, int64, error) {
	var matched []*model.Genre
	for _, genre := range r.genres {
		if search == "" || genre.Name == search {
			matched = append(matched, genre)
		}
	}
	return matched, int64(len(matched)), nil
}

func (r *stubGenreRepo) DeleteBySlug(_ context.Context, slug string) error {
	if _, ok := r.genres[slug]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.genres, slug)
	return nil
}

type stubSearch struct {
	indexed []string
	deleted []string
}

func (s *stubSearch) IndexTitle(title *model.Title, _ *float64) error {
	s.indexed = append(s.indexed, title.ID.String())
	return nil
}

func (s *stubSearch) DeleteTitle(id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubCommentRepo struct {
	mu       sync.Mutex
	comments map[uuid.UUID]*model.Comment
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[uuid.UUID]*model.Comment)}
}

func (r *stubCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	clone := *comment
	r.comments[comment.ID] = &clone
	return nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, reviewID, commentID uuid.UUID) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if comment, ok := r.comments[commentID]; ok && comment.ReviewID == reviewID {
		clone := *comment
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCommentRepo) FindByReview(_ context.Context, reviewID uuid.UUID, offset, limit int) ([]*model.Comment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*model.Comment
	for _, comment := range r.comments {
		if comment.ReviewID == reviewID {
			clone := *comment
			matched = append(matched, &clone)
		}
	}
	return matched, int64(len(matched)), nil
}

func (r *stubCommentRepo) Update(_ context.Context, comment *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[comment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *comment
	r.comments[comment.ID] = &clone
	return nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.comments, id)
	return nil
}

package service

import (
	"context"
	"errors"

	"anoa.com/yamdbreview/internal/dto"
	"anoa.com/yamdbreview/internal/model"
	"anoa.com/yamdbreview/internal/permission"
	"anoa.com/yamdbreview/internal/repository"
	"anoa.com/yamdbreview/internal/validation"
	"anoa.com/yamdbreview/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewService interface {
	Create(ctx context.Context, userID, titleID uuid.UUID, req dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	ListByTitle(ctx context.Context, titleID uuid.UUID, filter dto.PageFilter) (*dto.PaginatedReviewResponse, error)
	Get(ctx context.Context, titleID, reviewID uuid.UUID) (*dto.ReviewResponse, error)
	Update(ctx context.Context, userID, titleID, reviewID uuid.UUID, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, userID, titleID, reviewID uuid.UUID) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
	userRepo   repository.UserRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository, userRepo repository.UserRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
		userRepo:   userRepo,
	}
}

func (s *reviewService) Create(ctx context.Context, userID, titleID uuid.UUID, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if err := s.ensureTitleExists(ctx, titleID); err != nil {
		return nil, err
	}

	if err := validation.ValidateScore(req.Score); err != nil {
		return nil, err
	}

	review := &model.Review{
		TitleID: titleID,
		UserID:  userID,
		Text:    req.Text,
		Score:   req.Score,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// The composite unique index on (title_id, user_id) fails
		// the second writer; surface it as a client error.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Wrap(apperror.ErrConflict, "you have already reviewed this title")
		}
		return nil, err
	}

	author, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	review.User = *author

	resp := dto.NewReviewResponse(review)
	return &resp, nil
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID uuid.UUID, filter dto.PageFilter) (*dto.PaginatedReviewResponse, error) {
	if err := s.ensureTitleExists(ctx, titleID); err != nil {
		return nil, err
	}

	filter.Normalize()

	reviews, total, err := s.reviewRepo.FindByTitle(ctx, titleID, filter.Offset(), filter.Limit)
	if err != nil {
		return nil, err
	}

	data := make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		data = append(data, dto.NewReviewResponse(review))
	}

	return &dto.PaginatedReviewResponse{
		Data: data,
		Meta: dto.BuildMeta(filter, total),
	}, nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID uuid.UUID) (*dto.ReviewResponse, error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewReviewResponse(review)
	return &resp, nil
}

func (s *reviewService) Update(ctx context.Context, userID, titleID, reviewID uuid.UUID, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureCanModify(ctx, userID, review.UserID); err != nil {
		return nil, err
	}

	if req.Score != nil {
		if err := validation.ValidateScore(*req.Score); err != nil {
			return nil, err
		}
		review.Score = *req.Score
	}
	if req.Text != nil {
		review.Text = *req.Text
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	resp := dto.NewReviewResponse(review)
	return &resp, nil
}

func (s *reviewService) Delete(ctx context.Context, userID, titleID, reviewID uuid.UUID) error {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if err := s.ensureCanModify(ctx, userID, review.UserID); err != nil {
		return err
	}

	return s.reviewRepo.Delete(ctx, review.ID)
}

func (s *reviewService) ensureTitleExists(ctx context.Context, titleID uuid.UUID) error {
	if _, err := s.titleRepo.FindByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Wrap(apperror.ErrNotFound, "title not found")
		}
		return err
	}
	return nil
}

func (s *reviewService) findReview(ctx context.Context, titleID, reviewID uuid.UUID) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Wrap(apperror.ErrNotFound, "review not found")
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ensureCanModify(ctx context.Context, userID, authorID uuid.UUID) error {
	requester, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrUnauthorized
		}
		return err
	}

	if !permission.CanModifyContent(requester, authorID) {
		return apperror.Wrap(apperror.ErrForbidden, "you may only modify your own content")
	}
	return nil
}

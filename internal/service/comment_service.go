package service

import (
	"context"
	"errors"

	"anoa.com/yamdbreview/internal/dto"
	"anoa.com/yamdbreview/internal/model"
	"anoa.com/yamdbreview/internal/permission"
	"anoa.com/yamdbreview/internal/repository"
	"anoa.com/yamdbreview/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentService interface {
	Create(ctx context.Context, userID, titleID, reviewID uuid.UUID, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListByReview(ctx context.Context, titleID, reviewID uuid.UUID, filter dto.PageFilter) (*dto.PaginatedCommentResponse, error)
	Get(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*dto.CommentResponse, error)
	Update(ctx context.Context, userID, titleID, reviewID, commentID uuid.UUID, req dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	Delete(ctx context.Context, userID, titleID, reviewID, commentID uuid.UUID) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	userRepo    repository.UserRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository, userRepo repository.UserRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
	}
}

func (s *commentService) Create(ctx context.Context, userID, titleID, reviewID uuid.UUID, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if err := s.ensureReviewExists(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ReviewID: reviewID,
		UserID:   userID,
		Text:     req.Text,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	author, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	comment.User = *author

	resp := dto.NewCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID uuid.UUID, filter dto.PageFilter) (*dto.PaginatedCommentResponse, error) {
	if err := s.ensureReviewExists(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	filter.Normalize()

	comments, total, err := s.commentRepo.FindByReview(ctx, reviewID, filter.Offset(), filter.Limit)
	if err != nil {
		return nil, err
	}

	data := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		data = append(data, dto.NewCommentResponse(comment))
	}

	return &dto.PaginatedCommentResponse{
		Data: data,
		Meta: dto.BuildMeta(filter, total),
	}, nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*dto.CommentResponse, error) {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) Update(ctx context.Context, userID, titleID, reviewID, commentID uuid.UUID, req dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureCanModify(ctx, userID, comment.UserID); err != nil {
		return nil, err
	}

	comment.Text = req.Text

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	resp := dto.NewCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) Delete(ctx context.Context, userID, titleID, reviewID, commentID uuid.UUID) error {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if err := s.ensureCanModify(ctx, userID, comment.UserID); err != nil {
		return err
	}

	return s.commentRepo.Delete(ctx, comment.ID)
}

// ensureReviewExists also checks the review belongs to the title in the
// request path.
func (s *commentService) ensureReviewExists(ctx context.Context, titleID, reviewID uuid.UUID) error {
	if _, err := s.reviewRepo.FindByID(ctx, titleID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Wrap(apperror.ErrNotFound, "review not found")
		}
		return err
	}
	return nil
}

func (s *commentService) findComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*model.Comment, error) {
	if err := s.ensureReviewExists(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.FindByID(ctx, reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Wrap(apperror.ErrNotFound, "comment not found")
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) ensureCanModify(ctx context.Context, userID, authorID uuid.UUID) error {
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

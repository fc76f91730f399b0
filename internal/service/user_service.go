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

type UserService interface {
	List(ctx context.Context, filter dto.UserFilter) (*dto.PaginatedUserResponse, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByUsername(ctx context.Context, username string) (*dto.UserResponse, error)
	Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, username string) error

	GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) List(ctx context.Context, filter dto.UserFilter) (*dto.PaginatedUserResponse, error) {
	filter.Normalize()

	users, total, err := s.repo.FindAll(ctx, filter.Search, filter.Offset(), filter.Limit)
	if err != nil {
		return nil, err
	}

	data := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		data = append(data, dto.NewUserResponse(user))
	}

	return &dto.PaginatedUserResponse{
		Data: data,
		Meta: dto.BuildMeta(filter.PageFilter, total),
	}, nil
}

// Create is the admin path: the role may be assigned directly.
func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := validation.ValidateUsername(req.Username); err != nil {
		return nil, err
	}

	role := model.RoleUser
	if req.Role != nil {
		role = model.Role(*req.Role)
		if !role.Valid() {
			return nil, apperror.Wrap(apperror.ErrInvalidInput, "unknown role")
		}
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Bio:      req.Bio,
		Role:     role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Wrap(apperror.ErrConflict, "username or email already registered")
		}
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		role := model.Role(*req.Role)
		if !role.Valid() {
			return nil, apperror.Wrap(apperror.ErrInvalidInput, "unknown role")
		}
		user.Role = role
	}

	return s.applyPatch(ctx, user, req)
}

func (s *userService) Delete(ctx context.Context, username string) error {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, user.ID)
}

func (s *userService) GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateMe is the self-service path. A role in the payload is silently
// dropped unless the caller already holds moderator/admin privilege,
// so ordinary users cannot promote themselves.
func (s *userService) UpdateMe(ctx context.Context, userID uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Role != nil && permission.CanAssignRole(user.Role) {
		role := model.Role(*req.Role)
		if !role.Valid() {
			return nil, apperror.Wrap(apperror.ErrInvalidInput, "unknown role")
		}
		user.Role = role
	}

	return s.applyPatch(ctx, user, req)
}

func (s *userService) applyPatch(ctx context.Context, user *model.User, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if req.Username != nil {
		if err := validation.ValidateUsername(*req.Username); err != nil {
			return nil, err
		}
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Wrap(apperror.ErrConflict, "username or email already registered")
		}
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) findByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Wrap(apperror.ErrNotFound, "user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) findByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Wrap(apperror.ErrNotFound, "user not found")
		}
		return nil, err
	}
	return user, nil
}

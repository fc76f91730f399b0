package dto

import "anoa.com/yamdbreview/internal/model"

type UserResponse struct {
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Bio      *string    `json:"bio,omitempty"`
	Role     model.Role `json:"role"`
}

func NewUserResponse(user *model.User) UserResponse {
	return UserResponse{
		Username: user.Username,
		Email:    user.Email,
		Bio:      user.Bio,
		Role:     user.Role,
	}
}

type CreateUserRequest struct {
	Username string  `json:"username" binding:"required,max=150"`
	Email    string  `json:"email" binding:"required,email,max=254"`
	Bio      *string `json:"bio"`
	Role     *string `json:"role"`
}

type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,max=150"`
	Email    *string `json:"email" binding:"omitempty,email,max=254"`
	Bio      *string `json:"bio"`
	Role     *string `json:"role"`
}

type UserFilter struct {
	PageFilter
	Search string `form:"search"`
}

type PaginatedUserResponse struct {
	Data []UserResponse `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

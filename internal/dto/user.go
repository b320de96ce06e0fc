package dto

import (
	"github.com/SscSPs/cashflow_backend/internal/core/domain"
)

// RegisterRequest is a self sign-up. The role is always "user".
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=80"`
	Email    string `json:"email" binding:"required,email,max=120"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"max=255"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20" binding:"min=0,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	return ListUsersResponse{Users: mapList(users, ToUserResponse)}
}

// UpdateRoleRequest changes a user's role.
type UpdateRoleRequest struct {
	Role domain.Role `json:"role" binding:"required,oneof=user manager admin"`
}

package dto

import (
	"time"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
)

type UserResponse struct {
	UserID    string      `json:"userID"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.GetUserID(),
		Username:  user.GetUsername(),
		Email:     user.Email,
		Name:      user.GetName(),
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

package dto

import (
	"time"

	"github.com/payflowhq/payflow_backend/internal/core/domain"
)

// RegisterRequest is the payload for self-service registration. New accounts
// start in PENDING status until an admin approves them.
type RegisterRequest struct {
	Username   string `json:"username" binding:"required,min=3,max=64"`
	Password   string `json:"password" binding:"required,min=8"`
	Name       string `json:"name" binding:"required"`
	EVMAddress string `json:"evmAddress" binding:"omitempty,evm_address"`
}

// UpdateUserRequest carries a user's editable profile fields.
type UpdateUserRequest struct {
	Name       *string `json:"name"`
	EVMAddress *string `json:"evmAddress" binding:"omitempty,evm_address"`
}

// ReviewUserRequest is the admin approval decision for a pending user.
type ReviewUserRequest struct {
	Approve bool `json:"approve"`
}

// UserResponse is the API representation of a user.
type UserResponse struct {
	UserID     string    `json:"userID"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	EVMAddress string    `json:"evmAddress,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToUserResponse maps a domain user to its API representation.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:     u.UserID,
		Username:   u.Username,
		Name:       u.Name,
		Role:       string(u.Role),
		Status:     string(u.Status),
		EVMAddress: u.EVMAddress,
		CreatedAt:  u.CreatedAt,
	}
}

// ListUsersResponse wraps a page of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

package dto

import (
	"time"

	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/domain/auth"
)

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the access token and profile.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone,omitempty"`
	Role        string     `json:"role"`
	BranchID    string     `json:"branchId,omitempty"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// FromUser maps a user to its public view.
func FromUser(u *auth.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		Name:        u.Name,
		Phone:       u.Phone,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
	}
	if !id.IsNil(u.BranchID) {
		resp.BranchID = u.BranchID.String()
	}
	return resp
}

// PasswordResetRequest either requests a reset token (email set) or
// consumes one (token + newPassword set).
type PasswordResetRequest struct {
	Email       string `json:"email,omitempty"`
	Token       string `json:"token,omitempty"`
	NewPassword string `json:"newPassword,omitempty"`
}

// ChangePasswordRequest carries a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// CreateManagerRequest adds a manager account.
type CreateManagerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone,omitempty"`
	BranchID string `json:"branchId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToInput converts the request to the domain input.
func (r CreateManagerRequest) ToInput() (auth.CreateManagerRequest, error) {
	branchID, err := id.Parse(r.BranchID)
	if err != nil {
		return auth.CreateManagerRequest{}, apperror.NewValidation("invalid branchId").WithDetail("branchId", r.BranchID)
	}
	return auth.CreateManagerRequest{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		BranchID: branchID,
		Password: r.Password,
	}, nil
}

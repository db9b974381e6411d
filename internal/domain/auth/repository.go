package auth

import (
	"context"

	"printledger/internal/core/id"
)

// UserRepository defines user storage operations.
type UserRepository interface {
	// Create creates a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, userID id.ID) (*User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update updates user data with an optimistic version check.
	Update(ctx context.Context, user *User) error

	// ExistsEmail checks whether the email is already registered.
	ExistsEmail(ctx context.Context, email string) (bool, error)

	// ListManagers lists manager accounts, optionally for one branch.
	ListManagers(ctx context.Context, branchID *id.ID) ([]User, error)
}

// ResetTokenRepository defines password reset token storage.
type ResetTokenRepository interface {
	// Save records a new reset token.
	Save(ctx context.Context, token *PasswordResetToken) error

	// GetByHash retrieves a token by its hash.
	GetByHash(ctx context.Context, tokenHash string) (*PasswordResetToken, error)

	// MarkUsed invalidates a token after a successful reset.
	MarkUsed(ctx context.Context, tokenID id.ID) error
}

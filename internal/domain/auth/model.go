// Package auth provides authentication and user management for the
// branch console: admins run the chain, managers run one branch.
package auth

import (
	"context"
	"strings"
	"time"

	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/core/session"
)

// User is a console account.
type User struct {
	ID                  id.ID        `db:"id" json:"id"`
	Email               string       `db:"email" json:"email"`
	PasswordHash        string       `db:"password_hash" json:"-"`
	Name                string       `db:"name" json:"name"`
	Phone               string       `db:"phone" json:"phone,omitempty"`
	Role                session.Role `db:"role" json:"role"`
	BranchID            id.ID        `db:"branch_id" json:"branchId"`
	IsActive            bool         `db:"is_active" json:"isActive"`
	FailedLoginAttempts int          `db:"failed_login_attempts" json:"-"`
	LockedUntil         *time.Time   `db:"locked_until" json:"-"`
	LastLoginAt         *time.Time   `db:"last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt           time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time    `db:"updated_at" json:"updatedAt"`
	Version             int          `db:"version" json:"version"`
}

// NewUser creates an active user with a fresh ID.
func NewUser(email, passwordHash string, role session.Role) *User {
	now := time.Now()
	return &User{
		ID:           id.New(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      1,
	}
}

// Validate validates user data.
func (u *User) Validate(ctx context.Context) error {
	if u.Email == "" {
		return apperror.NewValidation("email is required").WithDetail("field", "email")
	}
	if u.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if u.Role != session.RoleAdmin && u.Role != session.RoleManager {
		return apperror.NewValidation("unknown role").WithDetail("role", string(u.Role))
	}
	if u.Role == session.RoleManager && id.IsNil(u.BranchID) {
		return apperror.NewValidation("manager must belong to a branch").WithDetail("field", "branchId")
	}
	return nil
}

// IsLocked reports whether the account is inside a lockout window.
func (u *User) IsLocked() bool {
	return u.LockedUntil != nil && time.Now().Before(*u.LockedUntil)
}

// CanLogin checks account state before password verification.
func (u *User) CanLogin() error {
	if !u.IsActive {
		return apperror.NewForbidden("account is disabled")
	}
	if u.IsLocked() {
		return apperror.NewForbidden("account is temporarily locked")
	}
	return nil
}

// RecordFailedLogin increments the failed login counter and locks the
// account once maxAttempts is reached.
func (u *User) RecordFailedLogin(maxAttempts int, lockDuration time.Duration) {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts >= maxAttempts {
		lockUntil := time.Now().Add(lockDuration)
		u.LockedUntil = &lockUntil
	}
}

// RecordSuccessfulLogin resets the lockout state.
func (u *User) RecordSuccessfulLogin() {
	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
	now := time.Now()
	u.LastLoginAt = &now
}

// Session builds the request session carried in context for this user.
func (u *User) Session() session.Session {
	return session.Session{
		UserID:   u.ID,
		Email:    u.Email,
		Role:     u.Role,
		BranchID: u.BranchID,
	}
}

// PasswordResetToken is a single-use reset token. Only the hash is
// stored; delivery of the raw token is out of scope.
type PasswordResetToken struct {
	ID        id.ID      `db:"id"`
	UserID    id.ID      `db:"user_id"`
	TokenHash string     `db:"token_hash"`
	ExpiresAt time.Time  `db:"expires_at"`
	UsedAt    *time.Time `db:"used_at"`
	CreatedAt time.Time  `db:"created_at"`
}

// IsValid reports whether the token is unused and unexpired.
func (t *PasswordResetToken) IsValid() bool {
	return t.UsedAt == nil && time.Now().Before(t.ExpiresAt)
}

// Credentials for login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateManagerRequest adds a manager account for a branch.
type CreateManagerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	BranchID id.ID  `json:"branchId"`
	Password string `json:"password"`
}

// Package session carries the authenticated caller through the request chain.
// Handlers resolve a Session once from the verified token and pass it down
// via context; services never consult ambient globals for identity or branch.
package session

import (
	"context"

	"printledger/internal/core/id"
)

// Role is the caller's access level.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// Session identifies the authenticated caller for one request.
type Session struct {
	UserID   id.ID
	Email    string
	Role     Role
	BranchID id.ID // zero for admins, who choose a branch per request
}

// IsAdmin reports whether the caller holds the admin role.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

type sessionKey struct{}

// WithSession adds the session to context.
// Used by middleware to propagate the authenticated user through the request chain.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext retrieves the session from context.
// The second return is false when no authenticated session is present.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}

// UserID returns the caller's user ID, or the nil ID when unauthenticated.
func UserID(ctx context.Context) id.ID {
	if s, ok := FromContext(ctx); ok {
		return s.UserID
	}
	return id.Nil()
}

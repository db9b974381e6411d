// Package auth_repo provides PostgreSQL implementations for auth
// repositories.
package auth_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/domain/auth"
	"printledger/internal/infrastructure/storage/postgres"
)

// branch_id is NULL for admin accounts; it scans as the zero ID.
const userCols = `
	id, email, password_hash, name, phone, role,
	COALESCE(branch_id, '00000000-0000-0000-0000-000000000000'::uuid) AS branch_id,
	is_active, failed_login_attempts, locked_until, last_login_at,
	created_at, updated_at, version
`

// UserRepo implements auth.UserRepository.
type UserRepo struct {
	txm *postgres.TxManager
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{txm: txm}
}

// Create creates a new user.
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	q := r.txm.GetQuerier(ctx)

	query := `
		INSERT INTO users (
			id, email, password_hash, name, phone, role, branch_id,
			is_active, created_at, updated_at, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Phone,
		user.Role, nullableID(user.BranchID), user.IsActive,
		user.CreatedAt, user.UpdatedAt, user.Version,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicateEntry("user", user.Email).WithCause(err)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	query := `SELECT ` + userCols + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, userID.String(), userID)
}

// GetByEmail retrieves a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `SELECT ` + userCols + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email, email)
}

func (r *UserRepo) getOne(ctx context.Context, query, key string, arg any) (*auth.User, error) {
	q := r.txm.GetQuerier(ctx)

	var user auth.User
	if err := pgxscan.Get(ctx, q, &user, query, arg); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", key)
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &user, nil
}

// Update updates user data with an optimistic version check.
func (r *UserRepo) Update(ctx context.Context, user *auth.User) error {
	q := r.txm.GetQuerier(ctx)

	query := `
		UPDATE users SET
			email = $1, password_hash = $2, name = $3, phone = $4,
			role = $5, branch_id = $6, is_active = $7,
			failed_login_attempts = $8, locked_until = $9, last_login_at = $10,
			updated_at = NOW(), version = version + 1
		WHERE id = $11 AND version = $12
	`

	result, err := q.Exec(ctx, query,
		user.Email, user.PasswordHash, user.Name, user.Phone,
		user.Role, nullableID(user.BranchID), user.IsActive,
		user.FailedLoginAttempts, user.LockedUntil, user.LastLoginAt,
		user.ID, user.Version,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("user", user.ID.String())
	}

	return nil
}

// ExistsEmail checks whether the email is already registered.
func (r *UserRepo) ExistsEmail(ctx context.Context, email string) (bool, error) {
	q := r.txm.GetQuerier(ctx)

	var exists int
	err := q.QueryRow(ctx, `SELECT 1 FROM users WHERE email = $1 LIMIT 1`, email).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists email: %w", err)
	}
	return true, nil
}

// ListManagers lists manager accounts, optionally for one branch.
func (r *UserRepo) ListManagers(ctx context.Context, branchID *id.ID) ([]auth.User, error) {
	q := r.txm.GetQuerier(ctx)

	query := `SELECT ` + userCols + ` FROM users WHERE role = 'manager'`
	args := []any{}
	if branchID != nil {
		query += ` AND branch_id = $1`
		args = append(args, *branchID)
	}
	query += ` ORDER BY name ASC`

	users := []auth.User{}
	if err := pgxscan.Select(ctx, q, &users, query, args...); err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	return users, nil
}

// nullableID maps a zero ID to NULL so admin accounts carry no branch.
func nullableID(v id.ID) any {
	if id.IsNil(v) {
		return nil
	}
	return v
}

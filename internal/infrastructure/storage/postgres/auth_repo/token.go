package auth_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/domain/auth"
	"printledger/internal/infrastructure/storage/postgres"
)

// ResetTokenRepo implements auth.ResetTokenRepository.
type ResetTokenRepo struct {
	txm *postgres.TxManager
}

// NewResetTokenRepo creates a new reset token repository.
func NewResetTokenRepo(txm *postgres.TxManager) *ResetTokenRepo {
	return &ResetTokenRepo{txm: txm}
}

// Save records a new reset token.
func (r *ResetTokenRepo) Save(ctx context.Context, token *auth.PasswordResetToken) error {
	q := r.txm.GetQuerier(ctx)

	query := `
		INSERT INTO password_reset_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := q.Exec(ctx, query,
		token.ID, token.UserID, token.TokenHash, token.ExpiresAt, token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reset token: %w", err)
	}
	return nil
}

// GetByHash retrieves a token by its hash.
func (r *ResetTokenRepo) GetByHash(ctx context.Context, tokenHash string) (*auth.PasswordResetToken, error) {
	q := r.txm.GetQuerier(ctx)

	query := `
		SELECT id, user_id, token_hash, expires_at, used_at, created_at
		FROM password_reset_tokens
		WHERE token_hash = $1
	`

	var token auth.PasswordResetToken
	if err := pgxscan.Get(ctx, q, &token, query, tokenHash); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("reset token", "matching hash")
		}
		return nil, fmt.Errorf("query reset token: %w", err)
	}
	return &token, nil
}

// MarkUsed invalidates a token after a successful reset.
func (r *ResetTokenRepo) MarkUsed(ctx context.Context, tokenID id.ID) error {
	q := r.txm.GetQuerier(ctx)

	result, err := q.Exec(ctx,
		`UPDATE password_reset_tokens SET used_at = NOW() WHERE id = $1 AND used_at IS NULL`,
		tokenID,
	)
	if err != nil {
		return fmt.Errorf("mark reset token used: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("reset token", tokenID.String())
	}
	return nil
}

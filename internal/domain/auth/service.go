package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/core/session"
	"printledger/internal/core/tx"
	"printledger/internal/domain/catalogs/branch"
	"printledger/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	MaxLoginAttempts  int
	LockDuration      time.Duration
	PasswordMinLength int
	ResetTokenExpiry  time.Duration
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxLoginAttempts:  5,
		LockDuration:      15 * time.Minute,
		PasswordMinLength: 8,
		ResetTokenExpiry:  2 * time.Hour,
	}
}

// LoginResult is the token plus the authenticated profile.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

// Service provides authentication and account management.
type Service struct {
	userRepo  UserRepository
	tokenRepo ResetTokenRepository
	branches  branch.Repository
	txManager tx.Manager
	tokens    *TokenService
	config    ServiceConfig
}

// NewService creates a new auth service.
func NewService(
	userRepo UserRepository,
	tokenRepo ResetTokenRepository,
	branches branch.Repository,
	txManager tx.Manager,
	tokens *TokenService,
	config ServiceConfig,
) *Service {
	return &Service{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		branches:  branches,
		txManager: txManager,
		tokens:    tokens,
		config:    config,
	}
}

// Login authenticates a user and issues an access token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Same answer for unknown email and wrong password.
		return nil, apperror.NewUnauthorized("invalid credentials")
	}
	if err := user.CanLogin(); err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		user.RecordFailedLogin(s.config.MaxLoginAttempts, s.config.LockDuration)
		s.saveLoginState(ctx, user)
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	user.RecordSuccessfulLogin()
	s.saveLoginState(ctx, user)

	logger.Info(ctx, "user logged in",
		"user_id", user.ID,
		"email", user.Email,
		"role", user.Role)

	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// saveLoginState persists lockout counters. Losing the write to a
// concurrent login attempt is acceptable, so version conflicts are only
// logged.
func (s *Service) saveLoginState(ctx context.Context, user *User) {
	if err := s.userRepo.Update(ctx, user); err != nil {
		logger.Warn(ctx, "failed to save login state", "user_id", user.ID, "error", err)
	}
}

// CreateManager adds a manager account for a branch. Admin only.
func (s *Service) CreateManager(ctx context.Context, req CreateManagerRequest) (*User, error) {
	sess, ok := session.FromContext(ctx)
	if !ok || !sess.IsAdmin() {
		return nil, apperror.NewForbidden("only admins can add managers")
	}

	if len(req.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	exists, err := s.userRepo.ExistsEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, apperror.NewDuplicateEntry("user", req.Email)
	}

	ok, err = s.branches.Exists(ctx, req.BranchID)
	if err != nil {
		return nil, fmt.Errorf("check branch exists: %w", err)
	}
	if !ok {
		return nil, apperror.NewNotFound("branch", req.BranchID.String())
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := NewUser(req.Email, string(passwordHash), session.RoleManager)
	user.Name = strings.TrimSpace(req.Name)
	user.Phone = strings.TrimSpace(req.Phone)
	user.BranchID = req.BranchID
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "manager created",
		"user_id", user.ID,
		"email", user.Email,
		"branch_id", user.BranchID)

	return user, nil
}

// ListManagers lists manager accounts. Admins see all branches,
// managers only their own.
func (s *Service) ListManagers(ctx context.Context) ([]User, error) {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return nil, apperror.NewUnauthorized("session required")
	}
	if sess.IsAdmin() {
		return s.userRepo.ListManagers(ctx, nil)
	}
	branchID := sess.BranchID
	return s.userRepo.ListManagers(ctx, &branchID)
}

// GetProfile returns the authenticated user's profile.
func (s *Service) GetProfile(ctx context.Context) (*User, error) {
	userID := session.UserID(ctx)
	if id.IsNil(userID) {
		return nil, apperror.NewUnauthorized("session required")
	}
	return s.userRepo.GetByID(ctx, userID)
}

// ChangePassword verifies the current password and sets a new one.
func (s *Service) ChangePassword(ctx context.Context, current, next string) error {
	user, err := s.GetProfile(ctx)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return apperror.NewUnauthorized("current password is incorrect")
	}
	if len(next) < s.config.PasswordMinLength {
		return apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(passwordHash)
	user.UpdatedAt = time.Now()

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.userRepo.Update(ctx, user)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "password changed", "user_id", user.ID)
	return nil
}

// RequestPasswordReset records a reset token for the email. The raw
// token is returned to the caller for delivery; only its hash is
// stored. Unknown emails succeed silently so the endpoint does not leak
// which addresses exist.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperror.IsNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	raw, err := randomToken()
	if err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}

	token := &PasswordResetToken{
		ID:        id.New(),
		UserID:    user.ID,
		TokenHash: hashToken(raw),
		ExpiresAt: time.Now().Add(s.config.ResetTokenExpiry),
		CreatedAt: time.Now(),
	}
	if err := s.tokenRepo.Save(ctx, token); err != nil {
		return "", fmt.Errorf("save reset token: %w", err)
	}

	logger.Info(ctx, "password reset requested", "user_id", user.ID)
	return raw, nil
}

// ResetPassword consumes a reset token and sets a new password.
func (s *Service) ResetPassword(ctx context.Context, rawToken, next string) error {
	token, err := s.tokenRepo.GetByHash(ctx, hashToken(rawToken))
	if err != nil {
		return apperror.NewUnauthorized("invalid reset token")
	}
	if !token.IsValid() {
		return apperror.NewUnauthorized("reset token expired or already used")
	}
	if len(next) < s.config.PasswordMinLength {
		return apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	user, err := s.userRepo.GetByID(ctx, token.UserID)
	if err != nil {
		return err
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(passwordHash)
	user.UpdatedAt = time.Now()

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return err
		}
		return s.tokenRepo.MarkUsed(ctx, token.ID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "password reset", "user_id", user.ID)
	return nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

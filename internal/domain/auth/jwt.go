package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"printledger/internal/core/id"
	"printledger/internal/core/session"
)

// TokenConfig holds JWT settings.
type TokenConfig struct {
	Secret         string
	Issuer         string
	AccessTokenTTL time.Duration
}

// DefaultTokenConfig returns sane defaults for the given secret.
func DefaultTokenConfig(secret string) TokenConfig {
	return TokenConfig{
		Secret:         secret,
		Issuer:         "printledger",
		AccessTokenTTL: 24 * time.Hour,
	}
}

// Claims are the JWT claims carried by access tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	BranchID string `json:"bid,omitempty"`
}

// TokenService signs and validates access tokens.
type TokenService struct {
	config TokenConfig
}

// NewTokenService creates a new token service.
func NewTokenService(config TokenConfig) *TokenService {
	return &TokenService{config: config}
}

// Generate issues an access token for the user.
func (s *TokenService) Generate(user *User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.config.AccessTokenTTL)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   string(user.Role),
	}
	if !id.IsNil(user.BranchID) {
		claims.BranchID = user.BranchID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Validate parses the token and returns the session it carries.
func (s *TokenService) Validate(tokenString string) (*session.Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID, err := id.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	sess := &session.Session{
		UserID: userID,
		Email:  claims.Email,
		Role:   session.Role(claims.Role),
	}
	if claims.BranchID != "" {
		branchID, err := id.Parse(claims.BranchID)
		if err != nil {
			return nil, fmt.Errorf("parse branch id: %w", err)
		}
		sess.BranchID = branchID
	}
	return sess, nil
}

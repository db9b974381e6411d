package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"printledger/internal/core/apperror"
	"printledger/internal/domain/auth"
	"printledger/internal/infrastructure/http/v1/dto"
	"printledger/pkg/logger"
)

// AuthHandler serves login, profile and account management.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{BaseHandler: base, service: service}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(c.Request.Context(), auth.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      dto.FromUser(result.User),
	})
}

// PasswordReset handles POST /auth/password-reset. With an email it
// issues a reset token; with a token it consumes it.
func (h *AuthHandler) PasswordReset(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.PasswordResetRequest
	if !h.BindJSON(c, &req) {
		return
	}

	switch {
	case req.Token != "":
		if err := h.service.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
			h.Error(c, err)
			return
		}
		h.Success(c, "password updated")
	case req.Email != "":
		token, err := h.service.RequestPasswordReset(ctx, req.Email)
		if err != nil {
			h.Error(c, err)
			return
		}
		// No mail transport: the token is handed to the admin
		// console through the logs.
		if token != "" {
			logger.Info(ctx, "password reset token issued", "email", req.Email)
		}
		h.Success(c, "if the account exists, a reset token has been issued")
	default:
		h.Error(c, apperror.NewValidation("either email or token is required"))
	}
}

// Profile handles GET /auth/profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.service.GetProfile(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(user))
}

// ChangePassword handles POST /auth/change-password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "password updated")
}

// CreateManager handles POST /auth/managers (admin only).
func (h *AuthHandler) CreateManager(c *gin.Context) {
	var req dto.CreateManagerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	user, err := h.service.CreateManager(c.Request.Context(), input)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromUser(user))
}

// ListManagers handles GET /auth/managers. Admins see the whole chain,
// managers only their branch colleagues.
func (h *AuthHandler) ListManagers(c *gin.Context) {
	users, err := h.service.ListManagers(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.FromUser(&users[i]))
	}
	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: int64(len(items)),
		Limit:      len(items),
	})
}

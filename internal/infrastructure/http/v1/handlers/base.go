// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/core/session"
	"printledger/internal/core/types"
	"printledger/internal/infrastructure/http/v1/dto"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error registers error on Gin context and aborts request.
// Actual JSON response is produced by middleware.ErrorHandler (single
// source of truth).
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ParseIntQuery parses integer query parameter with default value.
func (h *BaseHandler) ParseIntQuery(c *gin.Context, key string, defaultVal int) int {
	val := c.Query(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// ParseID parses a path parameter as an entity ID.
func (h *BaseHandler) ParseID(c *gin.Context, param string) (id.ID, bool) {
	entityID, err := id.Parse(c.Param(param))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format").WithDetail(param, c.Param(param)))
		return id.ID{}, false
	}
	return entityID, true
}

// ParseDate parses a "YYYY-MM-DD" value, from query or body fields.
func (h *BaseHandler) ParseDate(c *gin.Context, value string) (types.Date, bool) {
	date, err := types.ParseDate(value)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid date, expected YYYY-MM-DD").WithDetail("date", value))
		return types.Date{}, false
	}
	return date, true
}

// BranchScope resolves the branch a request operates on. Managers are
// pinned to their own branch: a different requested branch is rejected.
// Admins must name a branch explicitly.
func (h *BaseHandler) BranchScope(c *gin.Context, requested string) (id.ID, bool) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		h.Error(c, apperror.NewUnauthorized("authentication required"))
		return id.ID{}, false
	}

	if requested == "" {
		if sess.IsAdmin() {
			h.Error(c, apperror.NewValidation("branch is required").WithDetail("field", "branchId"))
			return id.ID{}, false
		}
		return sess.BranchID, true
	}

	branchID, err := id.Parse(requested)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid branchId").WithDetail("branchId", requested))
		return id.ID{}, false
	}

	if !sess.IsAdmin() && branchID != sess.BranchID {
		h.Error(c, apperror.NewForbidden("access to another branch denied").WithDetail("branchId", requested))
		return id.ID{}, false
	}

	return branchID, true
}

// OptionalBranchScope is BranchScope for list endpoints: an admin with
// no branchId sees all branches (zero ID, no filter).
func (h *BaseHandler) OptionalBranchScope(c *gin.Context, requested string) (id.ID, bool) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		h.Error(c, apperror.NewUnauthorized("authentication required"))
		return id.ID{}, false
	}
	if requested == "" && sess.IsAdmin() {
		return id.ID{}, true
	}
	return h.BranchScope(c, requested)
}

// Created sends 201 response with ID.
func (h *BaseHandler) Created(c *gin.Context, id string) {
	c.JSON(http.StatusCreated, dto.IDResponse{ID: id})
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// NoContent sends 204 response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Success sends success response.
func (h *BaseHandler) Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: message})
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"printledger/internal/core/apperror"
	"printledger/internal/core/session"
)

// TokenValidator validates an access token and returns its session.
type TokenValidator interface {
	Validate(tokenString string) (*session.Session, error)
}

// Auth middleware validates JWT tokens and populates the request session.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		sess, err := validator.Validate(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		ctx := session.WithSession(c.Request.Context(), *sess)
		c.Request = c.Request.WithContext(ctx)

		c.Set("user_id", sess.UserID.String())
		c.Set("role", string(sess.Role))

		c.Next()
	}
}

// RequireAdmin rejects non-admin sessions.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session.FromContext(c.Request.Context())
		if !ok {
			abortUnauthorized(c, "authentication required")
			return
		}
		if !sess.IsAdmin() {
			_ = c.Error(apperror.NewForbidden("admin role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}

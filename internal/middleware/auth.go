package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tradedesk/internal/domain"
	"tradedesk/internal/session"
)

const (
	// ContextKeySession holds the request's *domain.Session.
	ContextKeySession = "session"
	// ContextKeyUserID holds the authenticated user id for request logging.
	ContextKeyUserID = "user_id"
)

// SessionAuth returns Gin middleware that loads the session from the bearer
// token once per request and stores it in the context.
func SessionAuth(manager session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid authorization header")
			return
		}

		sess, err := manager.Load(c.Request.Context(), strings.TrimPrefix(authHeader, "Bearer "))
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrSessionRevoked):
			abort(c, http.StatusUnauthorized, "SESSION_REVOKED", "session has been cleared; sign in again")
			return
		case session.IsAuthError(err):
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			return
		default:
			abort(c, http.StatusServiceUnavailable, "SESSION_UNAVAILABLE", "session store unavailable")
			return
		}

		c.Set(ContextKeySession, sess)
		c.Set(ContextKeyUserID, sess.UserID)
		c.Next()
	}
}

// RequirePermission returns middleware that rejects sessions lacking perm.
func RequirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := GetSession(c)
		if err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "session not found in context")
			return
		}
		if !sess.Can(perm) {
			abort(c, http.StatusForbidden, "FORBIDDEN", "insufficient permissions")
			return
		}
		c.Next()
	}
}

// GetSession extracts the session from the Gin context.
func GetSession(c *gin.Context) (*domain.Session, error) {
	val, exists := c.Get(ContextKeySession)
	if !exists {
		return nil, domain.ErrUnauthorized
	}
	sess, ok := val.(*domain.Session)
	if !ok || sess == nil {
		return nil, domain.ErrUnauthorized
	}
	return sess, nil
}

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": msg},
	})
}

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storerate/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const currentUserContextKey = "current-user"

// RequestUser is the authenticated identity attached to the request
// context: nothing beyond id and role leaves the session store.
type RequestUser struct {
	ID   uint
	Role string
}

// IsAdmin reports whether the user holds the admin role.
func (u *RequestUser) IsAdmin() bool {
	return u != nil && u.Role == entity.UserRoleAdmin
}

// SessionMiddleware resolves the session cookie into a RequestUser. It
// never aborts: endpoints stay reachable without a session, and expired
// sessions are swept lazily.
func (h *HTTPHandler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(h.cookieName())
		if err != nil || token == "" {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		session, err := h.repo.GetSessionByToken(ctx, token)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logrus.WithError(err).Warn("failed to load session")
			}
			c.Next()
			return
		}

		if session.Expired(time.Now().UTC()) {
			if err := h.repo.DeleteSession(ctx, token); err != nil {
				logrus.WithError(err).Warn("failed to delete expired session")
			}
			c.Next()
			return
		}

		c.Set(currentUserContextKey, &RequestUser{ID: session.UserID, Role: session.Role})
		c.Next()
	}
}

// RequireAdmin gates a route group on the admin role. It is mounted on
// /admin only when ADMIN_GUARD is set; the default leaves /admin open.
func (h *HTTPHandler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin privileges required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil.
func CurrentUser(c *gin.Context) *RequestUser {
	value, exists := c.Get(currentUserContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*RequestUser)
	if !ok {
		return nil
	}
	return user
}

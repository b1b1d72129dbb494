package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker/internal/constants"
	apierrors "github.com/yukikurage/project-tracker/internal/errors"
	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/services"
)

// LoginPath is where unauthenticated browser requests are sent.
const LoginPath = "/login"

// UserLoader looks up the user a session belongs to.
type UserLoader interface {
	GetUser(id uint64) (*models.User, error)
}

// RequireAuth checks that the session names an existing user. Browsers are
// redirected to the login page, JSON clients get 401. A session whose user no
// longer exists is cleared.
func RequireAuth(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw := session.Get(constants.ContextKeyUserID)
		if raw == nil {
			rejectUnauthenticated(c)
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, raw)
		userID, ok := GetUserID(c)
		if !ok {
			clearSession(c, session)
			rejectUnauthenticated(c)
			return
		}

		user, err := users.GetUser(userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				slog.Warn("session names a missing user", "user_id", userID)
				clearSession(c, session)
				rejectUnauthenticated(c)
				return
			}
			slog.Error("failed to load session user", "user_id", userID, "err", err)
			apierrors.InternalError(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

func rejectUnauthenticated(c *gin.Context) {
	if apierrors.WantsJSON(c) {
		apierrors.Unauthorized(c, "")
	} else {
		c.Redirect(http.StatusFound, LoginPath)
	}
	c.Abort()
}

func clearSession(c *gin.Context, session sessions.Session) {
	session.Clear()
	if err := session.Save(); err != nil {
		slog.Error("failed to clear session", "err", err)
	}
	c.Set(constants.ContextKeyUserID, nil)
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetUser returns the user loaded by RequireAuth.
func GetUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(constants.ContextKeyUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

package middleware

import (
	"errors"                     // Error matching
	"microposts/internal/auth"   // Authentication capability
	"microposts/internal/domain" // Importing domain models
	"net/http"                   // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

const (
	SessionCookie  = "session"     // Cookie holding the session token
	currentUserKey = "currentUser" // Context key of the resolved user
)

// SessionMiddleware resolves the session cookie on every request and stores the
// current user in the request context. Anonymous requests pass through.
func SessionMiddleware(authn auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie) // Read the session cookie
		if err != nil || token == "" {
			c.Next() // No cookie, anonymous request
			return
		}
		user, err := authn.ResolveSession(c.Request.Context(), auth.SessionToken(token))
		switch {
		case errors.Is(err, auth.ErrNoSession):
			ClearSessionCookie(c) // Stale cookie, drop it
		case err != nil:
			logrus.WithFields(logrus.Fields{
				"error": err.Error(), // Error message
			}).Error("Failed to resolve session")
		default:
			c.Set(currentUserKey, user) // Expose the user to handlers
		}
		c.Next()
	}
}

// LoginRequiredMiddleware redirects anonymous requests to the signin page
func LoginRequiredMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusFound, "/accounts/signin")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user resolved for this request, if any
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}

// SetCurrentUser replaces the user seen by the rest of this request
func SetCurrentUser(c *gin.Context, user *domain.User) {
	c.Set(currentUserKey, user)
}

// SetSessionCookie stores the session token in an HttpOnly cookie
func SetSessionCookie(c *gin.Context, token auth.SessionToken, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, string(token), maxAge, "/", "", secure, true)
}

// ClearSessionCookie expires the session cookie
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// AdminOnlyMiddleware rejects requests whose current user is not an admin.
// The flag is read from the user record loaded fresh for this request.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c) // Get current user from context
		if !ok {
			c.Redirect(http.StatusFound, "/accounts/signin")
			c.Abort()
			return
		}
		if !user.IsAdmin {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,            // Acting user
				"path":    c.Request.URL.Path, // Attempted route
			}).Warn("Admin access denied")
			c.String(http.StatusForbidden, "Admin access required")
			c.Abort()
			return
		}
		c.Next() // If admin, proceed to the next handler
	}
}

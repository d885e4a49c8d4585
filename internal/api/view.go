package api

import (
	"microposts/internal/domain"     // Importing domain models
	"microposts/internal/middleware" // Current user helpers
	"net/http"                       // HTTP status codes
	"strconv"                        // Path parameter parsing

	"github.com/gin-gonic/gin" // Gin web framework
)

const (
	flashCookie    = "flash"                               // One-shot message cookie
	genericDBError = "Something went wrong, please retry." // Shown for database failures
)

// render executes a page template with the request-scoped fields every page needs
func (h *Handlers) render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	user, ok := middleware.CurrentUser(c)
	data["IsAuth"] = ok // Whether the session is authenticated
	if ok {
		data["CurrentUser"] = user // Resolved user record
	}
	if msg := popFlash(c); msg != "" {
		data["Flash"] = msg // Message carried across a redirect
	}
	c.HTML(status, page, data)
}

// renderError renders the generic error page
func (h *Handlers) renderError(c *gin.Context, status int, message string) {
	h.render(c, status, "error.tmpl", gin.H{
		"Title":   http.StatusText(status),
		"Message": message,
	})
}

// setFlash stores a message for the next rendered page
func setFlash(c *gin.Context, msg string) {
	c.SetCookie(flashCookie, msg, 60, "/", "", false, true)
}

// popFlash returns and clears the pending flash message
func popFlash(c *gin.Context) string {
	msg, err := c.Cookie(flashCookie)
	if err != nil || msg == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return msg
}

// paramID parses a numeric path parameter, answering 400 when malformed
func (h *Handlers) paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		h.renderError(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// currentUser returns the user behind a route guarded by LoginRequiredMiddleware
func currentUser(c *gin.Context) *domain.User {
	user, _ := middleware.CurrentUser(c)
	return user
}

package api

import (
	"errors"                         // Error matching
	"microposts/internal/auth"       // Authentication capability
	"microposts/internal/domain"     // Importing domain models
	"microposts/internal/middleware" // Session cookie helpers
	"microposts/internal/store"      // Query layer
	"net/http"                       // HTTP status codes
	"strings"                        // Input trimming

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

const (
	msgTaken            = "This user name or email address is already in use"
	msgPasswordMismatch = "Passwords do not match"
	msgMissingFields    = "Please fill in every field with a valid value"
	msgBadCredentials   = "Invalid email or password"
)

// AccountForm is submitted by the signup and edit pages
type AccountForm struct {
	Username   string `form:"username" binding:"required"`    // Display name
	Email      string `form:"email" binding:"required,email"` // Email used to sign in
	Password   string `form:"password" binding:"required"`    // Plaintext password
	RePassword string `form:"repassword" binding:"required"`  // Confirmation
	IsAdmin    string `form:"isAdmin"`                        // "true" requests admin
}

// SigninForm is submitted by the signin page
type SigninForm struct {
	Email    string `form:"email" binding:"required"`    // Email identifier
	Password string `form:"password" binding:"required"` // Plaintext password
}

// bindAccountForm binds and normalizes an account form
func bindAccountForm(c *gin.Context) (AccountForm, bool) {
	var form AccountForm
	if err := c.ShouldBind(&form); err != nil {
		return form, false
	}
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)
	return form, form.Username != ""
}

// SignupForm renders the registration page
func (h *Handlers) SignupForm(c *gin.Context) {
	h.renderSignup(c, http.StatusOK, nil)
}

func (h *Handlers) renderSignup(c *gin.Context, status int, errs []string) {
	h.render(c, status, "accounts_signup.tmpl", gin.H{
		"Title":         "Sign up",
		"AllowAdmin":    h.opts.AllowAdminSignup,
		"ErrorMessages": errs,
	})
}

// Signup registers a user and signs them in
func (h *Handlers) Signup(c *gin.Context) {
	ctx := c.Request.Context()
	form, ok := bindAccountForm(c)
	if !ok {
		h.renderSignup(c, http.StatusOK, []string{msgMissingFields})
		return
	}
	// Check name and email are free
	conflicts, err := h.q.Users.FindByNameOrEmail(ctx, form.Username, form.Email)
	if err != nil {
		h.signupFailed(c, form, err)
		return
	}
	if len(conflicts) != 0 {
		h.renderSignup(c, http.StatusOK, []string{msgTaken})
		return
	}
	if form.Password != form.RePassword {
		h.renderSignup(c, http.StatusOK, []string{msgPasswordMismatch})
		return
	}
	hash, err := h.hasher.Hash(form.Password) // Never store plaintext
	if err != nil {
		h.signupFailed(c, form, err)
		return
	}
	isAdmin := h.opts.AllowAdminSignup && form.IsAdmin == "true"
	if _, err := h.q.Users.Create(ctx, form.Username, form.Email, hash, isAdmin); err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			// Lost a race with a concurrent signup
			h.renderSignup(c, http.StatusOK, []string{msgTaken})
			return
		}
		h.signupFailed(c, form, err)
		return
	}
	// Re-fetch the stored identity and sign it in
	user, err := h.q.Users.FindByEmail(ctx, form.Email)
	if err != nil {
		h.signupFailed(c, form, err)
		return
	}
	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,      // New user
		"is_admin": user.IsAdmin, // Admin flag
	}).Info("User registered")
	if !h.startSession(c, user) {
		h.renderSignup(c, http.StatusInternalServerError, []string{genericDBError})
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handlers) signupFailed(c *gin.Context, form AccountForm, err error) {
	logrus.WithFields(logrus.Fields{
		"username": form.Username, // Submitted name
		"error":    err.Error(),   // Error message
	}).Error("Signup failed")
	h.renderSignup(c, http.StatusInternalServerError, []string{genericDBError})
}

// startSession establishes a session for user and sets the cookie
func (h *Handlers) startSession(c *gin.Context, user *domain.User) bool {
	token, err := h.authn.Login(c.Request.Context(), user)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,     // User being signed in
			"error":   err.Error(), // Error message
		}).Error("Failed to establish session")
		return false
	}
	middleware.SetSessionCookie(c, token, int(h.opts.SessionTTL.Seconds()), h.opts.SecureCookies)
	return true
}

// SigninForm renders the signin page
func (h *Handlers) SigninForm(c *gin.Context) {
	h.render(c, http.StatusOK, "accounts_signin.tmpl", gin.H{"Title": "Sign in"})
}

// Signin authenticates credentials; failures go back to the form with a flash error
func (h *Handlers) Signin(c *gin.Context) {
	var form SigninForm
	if err := c.ShouldBind(&form); err != nil {
		setFlash(c, msgBadCredentials)
		c.Redirect(http.StatusFound, "/accounts/signin")
		return
	}
	creds := auth.Credentials{Email: strings.TrimSpace(form.Email), Password: form.Password}
	token, err := h.authn.Authenticate(c.Request.Context(), creds)
	if err != nil {
		msg := msgBadCredentials
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			logrus.WithFields(logrus.Fields{
				"error": err.Error(), // Error message
			}).Error("Signin failed")
			msg = genericDBError
		}
		setFlash(c, msg)
		c.Redirect(http.StatusFound, "/accounts/signin")
		return
	}
	middleware.SetSessionCookie(c, token, int(h.opts.SessionTTL.Seconds()), h.opts.SecureCookies)
	c.Redirect(http.StatusFound, "/")
}

// Logout ends the session and returns to the top page
func (h *Handlers) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		if err := h.authn.Logout(c.Request.Context(), auth.SessionToken(token)); err != nil {
			logrus.WithFields(logrus.Fields{
				"error": err.Error(), // Error message
			}).Error("Failed to revoke session")
		}
	}
	middleware.ClearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

// EditForm renders the profile editor for the current user
func (h *Handlers) EditForm(c *gin.Context) {
	h.renderEdit(c, http.StatusOK, nil)
}

func (h *Handlers) renderEdit(c *gin.Context, status int, errs []string) {
	h.render(c, status, "accounts_edit.tmpl", gin.H{
		"Title":         "Update your profile",
		"AllowAdmin":    h.opts.AllowAdminSignup,
		"ErrorMessages": errs,
	})
}

// Edit overwrites the current user's name, email, password and admin flag
func (h *Handlers) Edit(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)
	form, ok := bindAccountForm(c)
	if !ok {
		h.renderEdit(c, http.StatusOK, []string{msgMissingFields})
		return
	}
	if form.Password != form.RePassword {
		h.renderEdit(c, http.StatusOK, []string{msgPasswordMismatch})
		return
	}
	hash, err := h.hasher.Hash(form.Password)
	if err != nil {
		h.editFailed(c, user.ID, err)
		return
	}
	isAdmin := user.IsAdmin // Unchanged unless admin self-service is enabled
	if h.opts.AllowAdminSignup {
		isAdmin = form.IsAdmin == "true"
	}
	err = h.q.Users.UpdateByID(ctx, user.ID, store.UserFields{
		Name:         form.Username,
		Email:        form.Email,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	})
	if errors.Is(err, store.ErrDuplicateUser) {
		h.renderEdit(c, http.StatusOK, []string{msgTaken})
		return
	}
	if err != nil {
		h.editFailed(c, user.ID, err)
		return
	}
	// Show the stored values
	updated, err := h.q.Users.FindByID(ctx, user.ID)
	if err != nil {
		h.editFailed(c, user.ID, err)
		return
	}
	middleware.SetCurrentUser(c, updated)
	logrus.WithFields(logrus.Fields{
		"user_id": user.ID, // Edited user
	}).Info("Profile updated")
	h.renderEdit(c, http.StatusOK, nil)
}

func (h *Handlers) editFailed(c *gin.Context, userID uint, err error) {
	logrus.WithFields(logrus.Fields{
		"user_id": userID,      // Edited user
		"error":   err.Error(), // Error message
	}).Error("Profile update failed")
	h.renderEdit(c, http.StatusInternalServerError, []string{genericDBError})
}

package api

import (
	"context"                    // Query context
	"errors"                     // Error matching
	"microposts/internal/domain" // Importing domain models
	"microposts/internal/store"  // Query layer
	"net/http"                   // HTTP status codes
	"strconv"                    // Redirect path building

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ListUsers renders the user directory
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.q.Users.ListAll(c.Request.Context())
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"error": err.Error(), // Error message
		}).Error("Failed to list users")
		h.renderError(c, http.StatusInternalServerError, genericDBError)
		return
	}
	h.render(c, http.StatusOK, "users_list.tmpl", gin.H{
		"Title": "All Users",
		"Users": users,
	})
}

// DeleteUser removes a user with their relationships and posts (admin only)
func (h *Handlers) DeleteUser(c *gin.Context) {
	userID, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	admin := currentUser(c)
	err := h.q.Users.DeleteWithRelations(c.Request.Context(), userID)
	if errors.Is(err, store.ErrUserNotFound) {
		h.renderError(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"admin_id": admin.ID,    // Acting admin
			"user_id":  userID,      // Target user
			"error":    err.Error(), // Error message
		}).Error("Failed to delete user")
		h.renderError(c, http.StatusInternalServerError, genericDBError)
		return
	}
	logrus.WithFields(logrus.Fields{
		"admin_id": admin.ID, // Acting admin
		"user_id":  userID,   // Deleted user
	}).Info("User deleted")
	c.Redirect(http.StatusFound, "/users")
}

// Profile renders a user's posts, sidebar and follow state
func (h *Handlers) Profile(c *gin.Context) {
	userID, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	viewer := currentUser(c)
	info, ok := h.userInfo(c, userID)
	if !ok {
		return
	}
	posts, err := h.q.Posts.ListByUser(ctx, userID)
	if err != nil {
		h.pageFailed(c, "Failed to load profile", userID, err)
		return
	}
	isFollowing, err := h.q.Relationships.Exists(ctx, viewer.ID, userID)
	if err != nil {
		h.pageFailed(c, "Failed to load profile", userID, err)
		return
	}
	h.render(c, http.StatusOK, "users_profile.tmpl", gin.H{
		"Title":       "Profile",
		"UserID":      userID,
		"Info":        info,
		"Posts":       posts,
		"IsFollowing": isFollowing,
	})
}

// DeleteUserPost deletes a post from a profile page
func (h *Handlers) DeleteUserPost(c *gin.Context) {
	userID, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	h.deletePost(c, "/users/"+strconv.FormatUint(uint64(userID), 10))
}

// Follow makes the current user follow :id
func (h *Handlers) Follow(c *gin.Context) {
	followedID, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	follower := currentUser(c)
	if followedID == follower.ID {
		c.String(http.StatusBadRequest, "Cannot follow yourself")
		return
	}
	if _, err := h.q.Users.FindByID(ctx, followedID); errors.Is(err, store.ErrUserNotFound) {
		c.String(http.StatusNotFound, "User not found")
		return
	}
	exists, err := h.q.Relationships.Exists(ctx, follower.ID, followedID)
	if err == nil && !exists {
		err = h.q.Relationships.Create(ctx, follower.ID, followedID)
	}
	if exists || errors.Is(err, store.ErrAlreadyFollowing) {
		c.String(http.StatusBadRequest, "Already following")
		return
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"follower_id": follower.ID, // Acting user
			"followed_id": followedID,  // Target user
			"error":       err.Error(), // Error message
		}).Error("Failed to follow user")
		c.String(http.StatusInternalServerError, "Error following user")
		return
	}
	c.Redirect(http.StatusFound, "/users")
}

// Unfollow removes the edge from the current user to :id, if any
func (h *Handlers) Unfollow(c *gin.Context) {
	followedID, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	follower := currentUser(c)
	if err := h.q.Relationships.Delete(c.Request.Context(), follower.ID, followedID); err != nil {
		logrus.WithFields(logrus.Fields{
			"follower_id": follower.ID, // Acting user
			"followed_id": followedID,  // Target user
			"error":       err.Error(), // Error message
		}).Error("Failed to unfollow user")
		c.String(http.StatusInternalServerError, "Error unfollowing user")
		return
	}
	c.Redirect(http.StatusFound, "/users")
}

// Following lists the users :id follows
func (h *Handlers) Following(c *gin.Context) {
	h.relationList(c, "Following", "users_following.tmpl", h.q.Relationships.ListFollowing)
}

// Followers lists the users following :id
func (h *Handlers) Followers(c *gin.Context) {
	h.relationList(c, "Followers", "users_followers.tmpl", h.q.Relationships.ListFollowers)
}

func (h *Handlers) relationList(c *gin.Context, title, page string, list func(context.Context, uint) ([]domain.UserSummary, error)) {
	userID, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	info, ok := h.userInfo(c, userID)
	if !ok {
		return
	}
	users, err := list(c.Request.Context(), userID)
	if err != nil {
		h.pageFailed(c, "Failed to load "+title, userID, err)
		return
	}
	h.render(c, http.StatusOK, page, gin.H{
		"Title":  title,
		"UserID": userID,
		"Info":   info,
		"Users":  users,
	})
}

// userInfo loads the sidebar for userID, answering 404 or 500 on failure
func (h *Handlers) userInfo(c *gin.Context, userID uint) (*domain.UserInfo, bool) {
	info, err := h.q.UserInfo(c.Request.Context(), userID)
	if errors.Is(err, store.ErrUserNotFound) {
		h.renderError(c, http.StatusNotFound, "User not found")
		return nil, false
	}
	if err != nil {
		h.pageFailed(c, "Failed to load user info", userID, err)
		return nil, false
	}
	return info, true
}

func (h *Handlers) pageFailed(c *gin.Context, msg string, userID uint, err error) {
	logrus.WithFields(logrus.Fields{
		"user_id": userID,      // Viewed user
		"error":   err.Error(), // Error message
	}).Error(msg)
	h.renderError(c, http.StatusInternalServerError, genericDBError)
}

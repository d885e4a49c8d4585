package api

import (
	"errors"                    // Error matching
	"microposts/internal/store" // Query layer
	"net/http"                  // HTTP status codes
	"strconv"                   // Number formatting
	"strings"                   // Input trimming
	"unicode/utf8"              // Post length in characters

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// MaxPostLength is the longest post accepted, in characters
const MaxPostLength = 140

// Feed renders the global feed with the current user's sidebar
func (h *Handlers) Feed(c *gin.Context) {
	h.renderFeed(c, http.StatusOK, nil)
}

// renderFeed loads the feed and sidebar and renders the index page
func (h *Handlers) renderFeed(c *gin.Context, status int, errs []string) {
	ctx := c.Request.Context()
	user := currentUser(c)
	data := gin.H{
		"Title":         "MicroPost",
		"MaxPostLength": MaxPostLength,
		"ErrorMessages": errs,
	}
	posts, err := h.q.Posts.ListFeedWithAuthors(ctx) // All posts, newest first
	if err == nil {
		data["MicroPosts"] = posts
		info, infoErr := h.q.UserInfo(ctx, user.ID) // Sidebar counts, always fresh
		if infoErr == nil {
			data["Info"] = info
		}
		err = infoErr
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,     // Current user
			"error":   err.Error(), // Error message
		}).Error("Failed to load feed")
		data["ErrorMessages"] = append(errs, genericDBError)
		status = http.StatusInternalServerError
	}
	h.render(c, status, "index.tmpl", data)
}

// CreatePost stores a new post stamped with the server clock
func (h *Handlers) CreatePost(c *gin.Context) {
	user := currentUser(c)
	content := strings.TrimSpace(c.PostForm("post")) // Post body from the form
	// Validate content
	if content == "" {
		h.renderFeed(c, http.StatusOK, []string{"Post must not be empty"})
		return
	}
	if utf8.RuneCountInString(content) > MaxPostLength {
		h.renderFeed(c, http.StatusOK, []string{"Post must be at most " + strconv.Itoa(MaxPostLength) + " characters"})
		return
	}
	post, err := h.q.Posts.Create(c.Request.Context(), user.ID, content, h.opts.Now())
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,     // Author
			"error":   err.Error(), // Error message
		}).Error("Failed to create post")
		h.renderFeed(c, http.StatusInternalServerError, []string{genericDBError})
		return
	}
	logrus.WithFields(logrus.Fields{
		"user_id": user.ID, // Author
		"post_id": post.ID, // New post
	}).Info("Post created")
	c.Redirect(http.StatusFound, "/")
}

// DeletePost deletes a post from the feed page
func (h *Handlers) DeletePost(c *gin.Context) {
	h.deletePost(c, "/")
}

// deletePost removes a post owned by the current user (or any post, for an
// admin) and redirects to back.
func (h *Handlers) deletePost(c *gin.Context, back string) {
	postID, ok := h.paramID(c, "postId")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	user := currentUser(c)
	post, err := h.q.Posts.FindByID(ctx, postID)
	if errors.Is(err, store.ErrPostNotFound) {
		h.renderError(c, http.StatusNotFound, "Post not found")
		return
	}
	if err == nil && post.UserID != user.ID && !user.IsAdmin {
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID, // Acting user
			"post_id": postID,  // Target post
		}).Warn("Post delete denied")
		h.renderError(c, http.StatusForbidden, "You can only delete your own posts")
		return
	}
	if err == nil {
		err = h.q.Posts.DeleteByID(ctx, postID)
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,     // Acting user
			"post_id": postID,      // Target post
			"error":   err.Error(), // Error message
		}).Error("Failed to delete post")
		h.renderError(c, http.StatusInternalServerError, genericDBError)
		return
	}
	logrus.WithFields(logrus.Fields{
		"user_id": user.ID, // Acting user
		"post_id": postID,  // Deleted post
	}).Info("Post deleted")
	c.Redirect(http.StatusFound, back)
}

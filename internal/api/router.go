package api

import (
	"microposts/internal/middleware" // Session and guard middleware
	"microposts/internal/views"      // Embedded templates

	"github.com/gin-gonic/gin" // Gin web framework
)

// NewRouter assembles every route. health may be nil.
func NewRouter(h *Handlers, health gin.HandlerFunc) (*gin.Engine, error) {
	tmpl, err := views.Load()
	if err != nil {
		return nil, err
	}
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.SessionMiddleware(h.authn))

	if health != nil {
		r.GET("/healthz", health)
	}

	// Account routes, open to anonymous users
	accounts := r.Group("/accounts")
	accounts.GET("/signup", h.SignupForm)
	accounts.POST("/signup", h.Signup)
	accounts.GET("/signin", h.SigninForm)
	accounts.POST("/signin", h.Signin)
	accounts.GET("/logout", h.Logout)

	// Everything below needs a session
	authed := r.Group("/")
	authed.Use(middleware.LoginRequiredMiddleware())
	authed.GET("/", h.Feed)
	authed.POST("/", h.CreatePost)
	authed.POST("/posts/:postId/delete", h.DeletePost)
	authed.GET("/accounts/edit", h.EditForm)
	authed.POST("/accounts/edit", h.Edit)

	users := authed.Group("/users")
	users.GET("", h.ListUsers)
	users.POST("/:id/delete", middleware.AdminOnlyMiddleware(), h.DeleteUser)
	users.GET("/:id", h.Profile)
	users.POST("/:id/posts/:postId/delete", h.DeleteUserPost)
	users.POST("/:id/follow", h.Follow)
	users.POST("/:id/unfollow", h.Unfollow)
	users.GET("/:id/following", h.Following)
	users.GET("/:id/followers", h.Followers)

	return r, nil
}

// Package router assembles the HTTP route table.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "bugdash_backend/internal/feature/auth/transport/handler"
	bughandler "bugdash_backend/internal/feature/bugs/transport/handler"
	"bugdash_backend/internal/platform/http/handler"
)

// NewRouter builds the Gin engine with all routes. authRequired guards
// every bug route; the auth endpoints themselves are public.
func NewRouter(auth *authhandler.AuthHandler, reset *authhandler.PasswordResetHandler,
	bugs *bughandler.BugHandler, authRequired gin.HandlerFunc) *gin.Engine {
	r := gin.Default()

	// The dashboard frontend is served from a different origin.
	r.Use(cors.Default())

	r.GET("/healthz", handler.Health)

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", auth.Register)
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/refresh-token", auth.Refresh)
		authGroup.POST("/logout", auth.Logout)
		authGroup.POST("/request-password-reset", reset.RequestReset)
		authGroup.POST("/reset-password-with-token", reset.ResetPassword)
		authGroup.GET("/verify-reset-token/:token", reset.VerifyResetToken)
	}

	bugsGroup := r.Group("/api/bugs")
	bugsGroup.Use(authRequired)
	{
		bugsGroup.GET("", bugs.List)
		bugsGroup.POST("", bugs.Create)
		// Static routes are registered before the :id routes so Gin
		// matches them first.
		bugsGroup.GET("/summary", bugs.Summary)
		bugsGroup.DELETE("/delete-all", bugs.DeleteAll)
		bugsGroup.PATCH("/:id", bugs.Update)
		bugsGroup.DELETE("/:id", bugs.Delete)
	}

	return r
}

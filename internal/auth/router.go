package auth

import (
	"inkwell/internal/shared/config"
	"inkwell/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles auth-related routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new auth router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all auth routes
func (authRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		// Public routes (no authentication required)
		auth.POST("/signup", authRouter.controller.Signup)
		auth.POST("/signin", authRouter.controller.Signin)
		auth.POST("/signout", authRouter.controller.Signout)
		auth.POST("/refresh-access-token", authRouter.controller.RefreshAccessToken)
		auth.POST("/forgot-password", authRouter.controller.ForgotPassword)

		// Protected routes (authentication required)
		protected := auth.Group("")
		protected.Use(middleware.JWTAuth(authRouter.config))
		{
			protected.POST("/decode-access-token", authRouter.controller.DecodeAccessToken)
			protected.POST("/change-password", authRouter.controller.ChangePassword)
		}
	}
}

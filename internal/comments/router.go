package comments

import (
	"inkwell/internal/shared/config"
	"inkwell/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCommentRoutes(rg *gin.RouterGroup, controller Controller, cfg *config.Config) {
	comments := rg.Group("/blog-comments")
	{
		// Anyone can read a post's comment thread.
		comments.GET("/post/:blogPostId", controller.GetCommentsByPost)

		protected := comments.Group("")
		protected.Use(middleware.JWTAuth(cfg))
		{
			protected.POST("", controller.CreateComment)
			protected.PUT("/:commentId", controller.UpdateComment)
			protected.DELETE("/:commentId", controller.DeleteComment)
		}
	}
}

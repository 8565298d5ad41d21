package posts

import (
	"inkwell/internal/shared/config"
	"inkwell/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPostRoutes(rg *gin.RouterGroup, controller Controller, cfg *config.Config) {
	posts := rg.Group("/blog-posts")
	{
		// Public reads. OptionalAuth lets authenticated authors see their own
		// drafts in the listing while anonymous callers see published only.
		posts.GET("", middleware.OptionalAuth(cfg), controller.GetAllPosts)
		posts.GET("/featured", controller.GetFeaturedPosts)
		posts.GET("/:blogPostId", controller.GetPost)

		protected := posts.Group("")
		protected.Use(middleware.JWTAuth(cfg))
		{
			protected.POST("", controller.CreatePost)
			protected.PUT("/:blogPostId", controller.UpdatePost)
			protected.DELETE("/:blogPostId", controller.DeletePost)
			protected.PATCH("/:blogPostId/archive", controller.ArchivePost)
			protected.PATCH("/:blogPostId/like", controller.LikePost)
			protected.PATCH("/:blogPostId/dislike", controller.DislikePost)
		}
	}
}

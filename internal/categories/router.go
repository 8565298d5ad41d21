package categories

import (
	"inkwell/internal/shared/config"
	"inkwell/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCategoryRoutes(rg *gin.RouterGroup, controller Controller, cfg *config.Config) {
	categories := rg.Group("/blog-categories")
	{
		// Public reads
		categories.GET("", controller.GetAllCategories)
		categories.GET("/:categoryId", controller.GetCategory)

		// Mutations require authentication; ownership and the admin override
		// are checked in the service after the existence check.
		protected := categories.Group("")
		protected.Use(middleware.JWTAuth(cfg))
		{
			protected.POST("", controller.CreateCategory)
			protected.PUT("/:categoryId", controller.UpdateCategory)
			protected.DELETE("/:categoryId", controller.DeleteCategory)
		}
	}
}

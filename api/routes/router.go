// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/categories"
	"inkwell/internal/comments"
	"inkwell/internal/notifications"
	"inkwell/internal/posts"
	"inkwell/internal/shared/config"
	"inkwell/internal/shared/database"
	"inkwell/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher notifications.Publisher

	// Shared services for dependency injection
	cacheService    cache.Service
	categoryService categories.Service
	postService     posts.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher) *Router {
	r := &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
	}

	if db.Redis != nil {
		r.cacheService = cache.NewService(db.Redis)
	}

	return r
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Category routes come first so the post service can borrow the
		// category service for existence checks.
		r.setupCategoryRoutes(api)
		r.setupPostRoutes(api)
		r.setupCommentRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "inkwell-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "inkwell-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "operational",
			"timestamp": time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config, r.publisher)
	authController := auth.NewController(authService, r.config)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupCategoryRoutes configures blog category routes
func (r *Router) setupCategoryRoutes(rg *gin.RouterGroup) {
	categoryRepo := categories.NewRepository(r.db.GetPostgreSQL())
	categoryService := categories.NewService(categoryRepo)
	categoryController := categories.NewController(categoryService)

	// Keep the service around for the post service dependency
	r.categoryService = categoryService

	categories.SetupCategoryRoutes(rg, categoryController, r.config)
}

// setupPostRoutes configures blog post routes
func (r *Router) setupPostRoutes(rg *gin.RouterGroup) {
	postRepo := posts.NewRepository(r.db.GetPostgreSQL())
	postService := posts.NewService(postRepo)

	if r.categoryService != nil {
		postService.SetCategoryService(r.categoryService)
	}
	if r.cacheService != nil {
		postService.SetCacheService(r.cacheService, r.config.Redis.PostCacheTTL, r.config.Redis.FeaturedCacheTTL)
	}
	if r.publisher != nil {
		postService.SetPublisher(r.publisher)
	}

	// Keep the service around for the comment service dependency
	r.postService = postService

	postController := posts.NewController(postService)
	posts.SetupPostRoutes(rg, postController, r.config)
}

// setupCommentRoutes configures blog comment routes
func (r *Router) setupCommentRoutes(rg *gin.RouterGroup) {
	commentRepo := comments.NewRepository(r.db.GetPostgreSQL())
	commentService := comments.NewService(commentRepo, r.postService)

	if r.publisher != nil {
		commentService.SetPublisher(r.publisher)
	}

	commentController := comments.NewController(commentService)
	comments.SetupCommentRoutes(rg, commentController, r.config)
}

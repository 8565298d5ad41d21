package posts

import (
	"context"
	"errors"
	"net/http"

	"inkwell/internal/shared/utils/response"
	"inkwell/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreatePost(c *gin.Context)
	GetPost(c *gin.Context)
	GetAllPosts(c *gin.Context)
	GetFeaturedPosts(c *gin.Context)
	UpdatePost(c *gin.Context)
	DeletePost(c *gin.Context)
	ArchivePost(c *gin.Context)
	LikePost(c *gin.Context)
	DislikePost(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	authorID, ok := callerID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	post, err := ctrl.service.CreatePost(c.Request.Context(), authorID, req)
	if err != nil {
		if errors.Is(err, ErrBadCategory) {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Unknown blog category", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Post created successfully", post, nil)
}

func (ctrl *controller) GetPost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("blogPostId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid post ID", nil, err.Error())
		return
	}

	post, err := ctrl.service.GetPostByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Post not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Post retrieved successfully", post, nil)
}

func (ctrl *controller) GetAllPosts(c *gin.Context) {
	var query PostListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	// Anonymous readers only see published, unarchived posts. Authenticated
	// callers get the full listing so authors can find their own drafts.
	_, authenticated := callerID(c)
	query.PublishedOnly = !authenticated

	posts, err := ctrl.service.GetAllPosts(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Posts retrieved successfully", posts, nil)
}

func (ctrl *controller) GetFeaturedPosts(c *gin.Context) {
	posts, err := ctrl.service.GetFeaturedPosts(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Featured posts retrieved successfully", posts, nil)
}

func (ctrl *controller) UpdatePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("blogPostId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid post ID", nil, err.Error())
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := callerID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	post, err := ctrl.service.UpdatePost(c.Request.Context(), id, userID, callerIsAdmin(c), req)
	if err != nil {
		ctrl.respondMutationError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Post updated successfully", post, nil)
}

func (ctrl *controller) DeletePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("blogPostId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid post ID", nil, err.Error())
		return
	}

	userID, ok := callerID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	if err := ctrl.service.DeletePost(c.Request.Context(), id, userID, callerIsAdmin(c)); err != nil {
		ctrl.respondMutationError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Post deleted successfully", nil, nil)
}

func (ctrl *controller) ArchivePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("blogPostId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid post ID", nil, err.Error())
		return
	}

	userID, ok := callerID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	post, err := ctrl.service.ArchivePost(c.Request.Context(), id, userID, callerIsAdmin(c))
	if err != nil {
		ctrl.respondMutationError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Post archive state toggled", post, nil)
}

func (ctrl *controller) LikePost(c *gin.Context) {
	ctrl.reactToPost(c, ctrl.service.LikePost)
}

func (ctrl *controller) DislikePost(c *gin.Context) {
	ctrl.reactToPost(c, ctrl.service.DislikePost)
}

func (ctrl *controller) reactToPost(c *gin.Context, react func(ctx context.Context, id uuid.UUID) (*PostResponse, error)) {
	id, err := uuid.Parse(c.Param("blogPostId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid post ID", nil, err.Error())
		return
	}

	post, err := react(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Post not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Reaction recorded", post, nil)
}

func (ctrl *controller) respondMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPostNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Post not found", nil, nil)
	case errors.Is(err, ErrForbidden):
		response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
	case errors.Is(err, ErrBadCategory):
		response.RespondJSON(c, "error", http.StatusBadRequest, "Unknown blog category", nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
	}
}

// callerID pulls the authenticated user ID set by the auth middleware
func callerID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	s, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func callerIsAdmin(c *gin.Context) bool {
	role, exists := c.Get("user_role")
	return exists && role == string(users.RoleAdmin)
}

package comments

import (
	"errors"
	"net/http"

	"inkwell/internal/shared/utils/response"
	"inkwell/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateComment(c *gin.Context)
	GetCommentsByPost(c *gin.Context)
	UpdateComment(c *gin.Context)
	DeleteComment(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := callerID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	comment, err := ctrl.service.CreateComment(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Post not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Comment created successfully", comment, nil)
}

func (ctrl *controller) GetCommentsByPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("blogPostId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid post ID", nil, err.Error())
		return
	}

	comments, err := ctrl.service.GetCommentsByPost(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Post not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Comments retrieved successfully", comments, nil)
}

func (ctrl *controller) UpdateComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid comment ID", nil, err.Error())
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := callerID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	comment, err := ctrl.service.UpdateComment(c.Request.Context(), id, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCommentNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Comment not found", nil, nil)
		case errors.Is(err, ErrForbidden):
			response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Comment updated successfully", comment, nil)
}

func (ctrl *controller) DeleteComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid comment ID", nil, err.Error())
		return
	}

	userID, ok := callerID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	if err := ctrl.service.DeleteComment(c.Request.Context(), id, userID, callerIsAdmin(c)); err != nil {
		switch {
		case errors.Is(err, ErrCommentNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Comment not found", nil, nil)
		case errors.Is(err, ErrForbidden):
			response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Comment deleted successfully", nil, nil)
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

package categories

import (
	"errors"
	"net/http"

	"inkwell/internal/shared/utils/response"
	"inkwell/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateCategory(c *gin.Context)
	GetCategory(c *gin.Context)
	GetAllCategories(c *gin.Context)
	UpdateCategory(c *gin.Context)
	DeleteCategory(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := callerID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	category, err := ctrl.service.CreateCategory(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrCategoryAlreadyExists) {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Blog category already exists", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Category created successfully", category, nil)
}

func (ctrl *controller) GetCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid category ID", nil, err.Error())
		return
	}

	category, err := ctrl.service.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Category not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Category retrieved successfully", category, nil)
}

func (ctrl *controller) GetAllCategories(c *gin.Context) {
	categories, err := ctrl.service.GetAllCategories(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Categories retrieved successfully", categories, nil)
}

func (ctrl *controller) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid category ID", nil, err.Error())
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := callerID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	category, err := ctrl.service.UpdateCategory(c.Request.Context(), id, userID, callerIsAdmin(c), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCategoryNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Category not found", nil, nil)
		case errors.Is(err, ErrForbidden):
			response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
		case errors.Is(err, ErrCategoryAlreadyExists):
			response.RespondJSON(c, "error", http.StatusBadRequest, "Blog category already exists", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Category updated successfully", category, nil)
}

func (ctrl *controller) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid category ID", nil, err.Error())
		return
	}

	userID, ok := callerID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	if err := ctrl.service.DeleteCategory(c.Request.Context(), id, userID, callerIsAdmin(c)); err != nil {
		switch {
		case errors.Is(err, ErrCategoryNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Category not found", nil, nil)
		case errors.Is(err, ErrForbidden):
			response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Category deleted successfully", nil, nil)
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

package auth

import (
	"errors"
	"net/http"

	"inkwell/internal/shared/config"
	"inkwell/internal/shared/utils/response"
	"inkwell/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const refreshCookieName = "refreshToken"

type Controller struct {
	service   Service
	config    *config.Config
	validator *validator.Validate
}

func NewController(service Service, cfg *config.Config) *Controller {
	return &Controller{
		service:   service,
		config:    cfg,
		validator: validator.New(),
	}
}

func (c *Controller) Signup(ctx *gin.Context) {
	var req SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	user, err := c.service.Signup(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserAlreadyExists):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "User already exists", nil, nil)
		default:
			logger.GetDefault().ErrorWithContext(ctx.Request.Context(), "signup failed", err, nil)
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "User registered successfully", gin.H{"user": user}, nil)
}

func (c *Controller) Signin(ctx *gin.Context) {
	var req SigninRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	tokenPair, err := c.service.Signin(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			logger.GetDefault().LogAuthFailure(ctx.Request.Context(), "invalid credentials", ctx.ClientIP())
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid email or password", nil, nil)
		default:
			logger.GetDefault().ErrorWithContext(ctx.Request.Context(), "signin failed", err, nil)
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
		}
		return
	}

	c.setRefreshCookie(ctx, tokenPair.RefreshToken, c.config.Auth.RefreshCookieMaxAge)

	response.RespondJSON(ctx, "success", http.StatusOK, "Signin successful", gin.H{
		"accessToken": tokenPair.AccessToken,
		"expires_in":  tokenPair.ExpiresIn,
	}, nil)
}

func (c *Controller) Signout(ctx *gin.Context) {
	// No server-side session to tear down; dropping the cookie ends the
	// refresh capability.
	c.setRefreshCookie(ctx, "", -1)
	response.RespondJSON(ctx, "success", http.StatusOK, "Signed out successfully", nil, nil)
}

func (c *Controller) RefreshAccessToken(ctx *gin.Context) {
	refreshToken, err := ctx.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Refresh token is missing", nil, nil)
		return
	}

	accessToken, err := c.service.RefreshAccessToken(ctx.Request.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired), errors.Is(err, ErrUserNotFound):
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid or expired refresh token", nil, nil)
		default:
			logger.GetDefault().ErrorWithContext(ctx.Request.Context(), "refresh failed", err, nil)
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Token refreshed successfully", gin.H{
		"accessToken": accessToken,
	}, nil)
}

// DecodeAccessToken echoes the claims the auth middleware already verified.
func (c *Controller) DecodeAccessToken(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	email, _ := ctx.Get("user_email")
	name, _ := ctx.Get("user_name")
	role, _ := ctx.Get("user_role")

	claims := DecodedClaims{
		ID:    asString(userID),
		Email: asString(email),
		Name:  asString(name),
		Role:  asString(role),
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Token decoded successfully", claims, nil)
}

func (c *Controller) ForgotPassword(ctx *gin.Context) {
	var req ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	if err := c.service.ForgotPassword(ctx.Request.Context(), req.Email); err != nil {
		logger.GetDefault().ErrorWithContext(ctx.Request.Context(), "forgot password failed", err, nil)
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
		return
	}

	// Same answer whether or not the account exists.
	response.RespondJSON(ctx, "success", http.StatusOK, "If the account exists, a reset link has been sent", nil, nil)
}

func (c *Controller) ChangePassword(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	err := c.service.ChangePassword(ctx.Request.Context(), asString(userID), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Current password is incorrect", nil, nil)
		case errors.Is(err, ErrUserNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "User not found", nil, nil)
		default:
			logger.GetDefault().ErrorWithContext(ctx.Request.Context(), "change password failed", err, nil)
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Password changed successfully", nil, nil)
}

// setRefreshCookie scopes the refresh token to an HTTP-only, secure cookie so
// it never reaches client-side script or response bodies.
func (c *Controller) setRefreshCookie(ctx *gin.Context, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(refreshCookieName, token, maxAge, "/", "", true, true)
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

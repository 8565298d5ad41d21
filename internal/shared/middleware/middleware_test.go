package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/internal/shared/config"
	"inkwell/internal/shared/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			AccessSecret:  "test-access-secret",
			RefreshSecret: "test-refresh-secret",
		},
	}
}

func signToken(t *testing.T, secret, tokenType string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": "11111111-2222-3333-4444-555555555555",
		"email":   "ada@example.com",
		"name":    "Ada",
		"role":    "USER",
		"type":    tokenType,
		"exp":     time.Now().Add(expiresIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedRouter(cfg *config.Config) *gin.Engine {
	engine := gin.New()
	engine.GET("/protected", middleware.JWTAuth(cfg), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		role, _ := c.Get("user_role")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})
	return engine
}

func doRequest(engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth(t *testing.T) {
	cfg := testConfig()
	engine := protectedRouter(cfg)

	t.Run("valid token passes identity to the handler", func(t *testing.T) {
		token := signToken(t, cfg.Auth.AccessSecret, "access", time.Hour)

		rec := doRequest(engine, "Bearer "+token)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "11111111-2222-3333-4444-555555555555")
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		rec := doRequest(engine, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		token := signToken(t, cfg.Auth.AccessSecret, "access", time.Hour)

		rec := doRequest(engine, "Token "+token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token := signToken(t, cfg.Auth.AccessSecret, "access", -time.Minute)

		rec := doRequest(engine, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with the wrong secret is rejected", func(t *testing.T) {
		token := signToken(t, "some-other-secret", "access", time.Hour)

		rec := doRequest(engine, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("refresh token is not accepted on protected routes", func(t *testing.T) {
		// Signed with the access secret but typed refresh.
		token := signToken(t, cfg.Auth.AccessSecret, "refresh", time.Hour)

		rec := doRequest(engine, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	cfg := testConfig()

	adminRouter := func() *gin.Engine {
		engine := gin.New()
		engine.GET("/admin", middleware.JWTAuth(cfg), middleware.RequireAdmin(), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return engine
	}

	t.Run("non-admin is forbidden", func(t *testing.T) {
		token := signToken(t, cfg.Auth.AccessSecret, "access", time.Hour)

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		adminRouter().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	cfg := testConfig()

	engine := gin.New()
	engine.GET("/open", middleware.OptionalAuth(cfg), func(c *gin.Context) {
		_, authenticated := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"authenticated": authenticated})
	})

	t.Run("anonymous callers pass through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"authenticated":false`)
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		token := signToken(t, cfg.Auth.AccessSecret, "access", time.Hour)

		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"authenticated":true`)
	})

	t.Run("bad token is treated as anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"authenticated":false`)
	})
}

func TestRequestTimeout(t *testing.T) {
	engine := gin.New()
	engine.GET("/slow", middleware.RequestTimeout(10*time.Millisecond), func(c *gin.Context) {
		select {
		case <-c.Request.Context().Done():
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "deadline"})
		case <-time.After(time.Second):
			c.JSON(http.StatusOK, gin.H{"ok": true})
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/slow", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

package auth

import (
	"github.com/golang-jwt/jwt/v4"
)

// JWTClaims represents JWT token claims. Access tokens carry the full
// identity; refresh tokens carry only the subject.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
	Type   string `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

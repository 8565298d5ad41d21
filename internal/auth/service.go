package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/notifications"
	"inkwell/internal/shared/config"
	"inkwell/internal/users"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

type Service interface {
	Signup(ctx context.Context, req *SignupRequest) (*UserResponse, error)
	Signin(ctx context.Context, req *SigninRequest) (*TokenPair, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error
	ForgotPassword(ctx context.Context, email string) error
	ValidateAccessToken(tokenString string) (*JWTClaims, error)
}

type service struct {
	repo      Repository
	config    *config.Config
	publisher notifications.Publisher
}

func NewService(repo Repository, cfg *config.Config, publisher notifications.Publisher) Service {
	return &service{
		repo:      repo,
		config:    cfg,
		publisher: publisher,
	}
}

func (s *service) Signup(ctx context.Context, req *SignupRequest) (*UserResponse, error) {
	// Optimistic pre-check so the common case gets a friendly error without
	// burning a bcrypt hash. The unique index on email is authoritative.
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = string(users.RoleUser)
	}
	if !users.IsValidRole(role) {
		role = string(users.RoleUser)
	}

	user := &users.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     users.Role(role),
	}

	// A concurrent identical signup can pass the pre-check; the repository
	// maps the resulting unique violation back to ErrUserAlreadyExists.
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	resp := NewUserResponse(user)
	return &resp, nil
}

func (s *service) Signin(ctx context.Context, req *SigninRequest) (*TokenPair, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Same error for unknown email and bad password.
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(user)
}

func (s *service) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.validateToken(refreshToken, s.config.Auth.RefreshSecret)
	if err != nil {
		return "", err
	}

	if claims.Type != "refresh" {
		return "", ErrInvalidToken
	}

	// The subject must still resolve to a live user.
	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	// The refresh token itself is not rotated.
	return s.issueAccessToken(user)
}

func (s *service) ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.config.Auth.BcryptCost)
	if err != nil {
		return err
	}

	return s.repo.UpdateUserPassword(ctx, userID, string(hashedPassword))
}

func (s *service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Respond identically whether or not the account exists.
			return nil
		}
		return err
	}

	if s.publisher != nil {
		s.publisher.Publish(ctx, notifications.NewEvent(
			notifications.EventPasswordResetRequested, user.ID.String(), map[string]string{
				"email": user.Email,
			}))
	}
	return nil
}

func (s *service) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	claims, err := s.validateToken(tokenString, s.config.Auth.AccessSecret)
	if err != nil {
		return nil, err
	}
	if claims.Type != "access" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *service) generateTokenPair(user *users.User) (*TokenPair, error) {
	accessToken, err := s.issueAccessToken(user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	refreshClaims := JWTClaims{
		UserID: user.ID.String(),
		Type:   "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Auth.RefreshExpiresIn)),
			Issuer:    s.config.Auth.Issuer,
			Subject:   user.ID.String(),
		},
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(s.config.Auth.RefreshSecret))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		ExpiresIn:    int64(s.config.Auth.AccessExpiresIn.Seconds()),
	}, nil
}

func (s *service) issueAccessToken(user *users.User) (string, error) {
	now := time.Now()
	accessClaims := JWTClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Name:   user.Name,
		Role:   string(user.Role),
		Type:   "access",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Auth.AccessExpiresIn)),
			Issuer:    s.config.Auth.Issuer,
			Subject:   user.ID.String(),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	return accessToken.SignedString([]byte(s.config.Auth.AccessSecret))
}

// validateToken checks signature and expiry, classifying the failure so the
// caller can distinguish an expired token from a forged or malformed one.
// Controllers still answer both with the same generic 401.
func (s *service) validateToken(tokenString, secret string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

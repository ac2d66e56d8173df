// Package auth implements operator login with bcrypt credentials and JWT
// access/refresh token pairs. Refresh tokens rotate: using one revokes it.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/taplog/attendance-backend-go/internal/domain/auth"
	"github.com/taplog/attendance-backend-go/internal/domain/user"
	"github.com/taplog/attendance-backend-go/internal/pkg/jwt"
)

type AuthService interface {
	Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	// SeedFirstAdmin creates the bootstrap admin account when the user
	// table is empty. No-op otherwise.
	SeedFirstAdmin(ctx context.Context, email, password string) error
}

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) *AuthServiceImpl {
	return &AuthServiceImpl{userRepo: userRepo, jwtService: jwtService}
}

// Login implements AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Same error as a wrong password so login probing cannot
			// distinguish the two.
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrAccountDisabled
	}

	resp, err := s.issueTokens(u)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	slog.Info("user logged in", "user_id", u.ID, "email", u.Email)
	return resp, nil
}

// Refresh implements AuthService. The presented token is revoked whether or
// not a new pair is issued, so a stolen refresh token works at most once.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error) {
	userID, jti, err := s.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	if s.jwtService.IsTokenRevoked(jti) {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	s.jwtService.RevokeToken(jti)

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidToken
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrAccountDisabled
	}

	return s.issueTokens(u)
}

// Logout implements AuthService. Revoking an already-invalid token is not an
// error; logout is idempotent.
func (s *AuthServiceImpl) Logout(_ context.Context, refreshToken string) error {
	_, jti, err := s.jwtService.ParseRefreshToken(refreshToken)
	if err != nil || jti == "" {
		return nil
	}
	s.jwtService.RevokeToken(jti)
	return nil
}

// SeedFirstAdmin implements AuthService.
func (s *AuthServiceImpl) SeedFirstAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	u, err := s.userRepo.Create(ctx, user.User{
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      true,
		IsActive:     true,
	})
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	slog.Info("seeded first admin user", "user_id", u.ID, "email", u.Email)
	return nil
}

func (s *AuthServiceImpl) issueTokens(u user.User) (auth.LoginResponse, error) {
	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, refreshExp, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresIn:  accessExp,
		RefreshTokenExpiresIn: refreshExp,
		IsAdmin:               u.IsAdmin,
	}, nil
}

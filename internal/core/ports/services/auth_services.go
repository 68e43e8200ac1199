package services

import (
	"context"
	"time"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/SscSPs/vidtube_backend/internal/utils"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ParseAccessToken verifies signature and expiry of an access token.
	ParseAccessToken(ctx context.Context, token string) (*utils.AccessClaims, error)
	// ParseRefreshToken verifies signature and expiry of a refresh token.
	ParseRefreshToken(ctx context.Context, token string) (*utils.RefreshClaims, error)
}

// AuthSvcFacade defines the session lifecycle: login, logout, refresh and
// resolving the identity behind an access token.
type AuthSvcFacade interface {
	// Login verifies credentials and issues a fresh token pair.
	Login(ctx context.Context, req dto.LoginRequest) (*domain.User, *domain.TokenPair, error)

	// Logout invalidates the stored refresh token of the user.
	Logout(ctx context.Context, userID string) error

	// RefreshTokens rotates the token pair if incoming is the currently stored refresh token.
	RefreshTokens(ctx context.Context, incoming string) (*domain.TokenPair, error)

	// AuthenticateAccessToken resolves the user behind an access token, without secrets.
	AuthenticateAccessToken(ctx context.Context, token string) (*domain.User, error)
}

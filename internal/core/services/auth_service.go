package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/SscSPs/vidtube_backend/internal/platform/config"
	"github.com/SscSPs/vidtube_backend/internal/platform/metrics"
	"github.com/SscSPs/vidtube_backend/internal/utils"
)

// tokenService implements the TokenSvcFacade for signing and verifying JWTs.
// It requires access to application configuration (for secrets and expiry times).
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	return utils.GenerateAccessToken(utils.AccessTokenSubject{
		UserID:   user.UserID,
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
	}, s.cfg.AccessTokenSecret, s.cfg.AccessTokenExpiryDuration, s.cfg.JWTIssuer)
}

// GenerateRefreshToken creates a new refresh token for the given user.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	return utils.GenerateRefreshToken(user.UserID, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenExpiryDuration, s.cfg.JWTIssuer)
}

func (s *tokenService) ParseAccessToken(ctx context.Context, token string) (*utils.AccessClaims, error) {
	return utils.ParseAccessToken(token, s.cfg.AccessTokenSecret)
}

func (s *tokenService) ParseRefreshToken(ctx context.Context, token string) (*utils.RefreshClaims, error) {
	return utils.ParseRefreshToken(token, s.cfg.RefreshTokenSecret)
}

// authService implements the session lifecycle on top of the user store and
// the token service.
type authService struct {
	BaseService
	userRepo    portsrepo.UserRepositoryFacade
	tokens      portssvc.TokenSvcFacade
	requireBoth bool
}

// NewAuthService creates the auth service. requireBothIdentifiers makes login
// demand both username and email even though either one finds the user.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, tokens portssvc.TokenSvcFacade, requireBothIdentifiers bool) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:    userRepo,
		tokens:      tokens,
		requireBoth: requireBothIdentifiers,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, *domain.TokenPair, error) {
	username := domain.NormalizeIdentifier(req.Username)
	email := domain.NormalizeIdentifier(req.Email)

	if s.requireBoth && (username == "" || email == "") {
		return nil, nil, apperrors.NewValidationError("username and email is required")
	}
	if username == "" && email == "" {
		return nil, nil, apperrors.NewValidationError("username or email is required")
	}

	user, err := s.userRepo.FindUserByUsernameOrEmail(ctx, username, email)
	if err != nil {
		metrics.AuthEventsTotal.WithLabelValues("login", metrics.Outcome(false)).Inc()
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.NewNotFoundError("user does not exist")
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, nil, apperrors.NewInternalError("failed to look up user", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		metrics.AuthEventsTotal.WithLabelValues("login", metrics.Outcome(false)).Inc()
		s.LogWarn(ctx, "Login rejected: wrong password", slog.String("user_id", user.UserID))
		return nil, nil, apperrors.NewUnauthorizedError("invalid user credentials")
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		metrics.AuthEventsTotal.WithLabelValues("login", metrics.Outcome(false)).Inc()
		return nil, nil, err
	}

	metrics.AuthEventsTotal.WithLabelValues("login", metrics.Outcome(true)).Inc()
	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	sanitized := user.Sanitized()
	return &sanitized, pair, nil
}

func (s *authService) Logout(ctx context.Context, userID string) error {
	err := s.userRepo.ClearRefreshToken(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		s.LogDebug(ctx, "Logout for unknown user", slog.String("user_id", userID))
		err = nil
	}
	if err != nil {
		metrics.AuthEventsTotal.WithLabelValues("logout", metrics.Outcome(false)).Inc()
		s.LogError(ctx, err, "Failed to clear refresh token", slog.String("user_id", userID))
		return apperrors.NewInternalError("failed to log out", err)
	}
	metrics.AuthEventsTotal.WithLabelValues("logout", metrics.Outcome(true)).Inc()
	return nil
}

func (s *authService) RefreshTokens(ctx context.Context, incoming string) (*domain.TokenPair, error) {
	pair, err := s.refresh(ctx, incoming)
	metrics.AuthEventsTotal.WithLabelValues("refresh", metrics.Outcome(err == nil)).Inc()
	return pair, err
}

func (s *authService) refresh(ctx context.Context, incoming string) (*domain.TokenPair, error) {
	if incoming == "" {
		return nil, apperrors.NewUnauthorizedError("unauthorized request")
	}

	claims, err := s.tokens.ParseRefreshToken(ctx, incoming)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError(err.Error())
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid refresh token")
		}
		s.LogError(ctx, err, "Failed to load user for refresh", slog.String("user_id", claims.UserID))
		return nil, apperrors.NewInternalError("failed to refresh tokens", err)
	}

	// Only the most recently issued refresh token is accepted.
	if user.RefreshTokenHash == nil || !utils.CompareRefreshTokenHash(incoming, *user.RefreshTokenHash) {
		s.LogWarn(ctx, "Refresh token replay or reuse rejected", slog.String("user_id", user.UserID))
		return nil, apperrors.NewUnauthorizedError("refresh token is expired or used")
	}

	return s.issueTokenPair(ctx, user)
}

func (s *authService) AuthenticateAccessToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.ParseAccessToken(ctx, token)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError(err.Error())
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid access token")
		}
		s.LogError(ctx, err, "Failed to load user for access token", slog.String("user_id", claims.UserID))
		return nil, apperrors.NewInternalError("failed to authenticate", err)
	}

	sanitized := user.Sanitized()
	return &sanitized, nil
}

// issueTokenPair signs a new pair and stores the refresh token digest, which
// invalidates any refresh token issued before.
func (s *authService) issueTokenPair(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	const msg = "something went wrong while generating access and refresh token"

	accessToken, accessExp, err := s.tokens.GenerateAccessToken(ctx, user)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return nil, apperrors.NewInternalError(msg, err)
	}
	refreshToken, refreshExp, err := s.tokens.GenerateRefreshToken(ctx, user)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate refresh token", slog.String("user_id", user.UserID))
		return nil, apperrors.NewInternalError(msg, err)
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken)); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("user_id", user.UserID))
		return nil, apperrors.NewInternalError(msg, err)
	}

	return &domain.TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

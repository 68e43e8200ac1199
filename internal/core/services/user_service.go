package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/SscSPs/vidtube_backend/internal/utils"
)

type userService struct {
	BaseService
	userRepo   portsrepo.UserRepositoryFacade
	uploader   portssvc.MediaUploader
	bcryptCost int
	now        func() time.Time
}

// UserServiceOption is a functional option for configuring the user service
type UserServiceOption func(*userService)

// WithBcryptCost sets the bcrypt work factor used for new password digests.
func WithBcryptCost(cost int) UserServiceOption {
	return func(s *userService) {
		s.bcryptCost = cost
	}
}

// WithClock overrides the time source used for audit fields.
func WithClock(now func() time.Time) UserServiceOption {
	return func(s *userService) {
		s.now = now
	}
}

// NewUserService creates a new user service with the provided options
func NewUserService(userRepo portsrepo.UserRepositoryFacade, uploader portssvc.MediaUploader, options ...UserServiceOption) portssvc.UserSvcFacade {
	svc := &userService{
		userRepo:   userRepo,
		uploader:   uploader,
		bcryptCost: utils.DefaultPasswordCost,
		now:        time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest, avatarPath, coverImagePath string) (*domain.User, error) {
	if isBlank(req.Username, req.Email, req.FullName, req.Password) {
		return nil, apperrors.NewValidationError("All fields are required")
	}

	user := domain.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
	}
	user.Normalize()

	existing, err := s.userRepo.FindUserByUsernameOrEmail(ctx, user.Username, user.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing user", slog.String("username", user.Username))
		return nil, apperrors.NewInternalError("failed to check for existing user", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("user with username or email already exists")
	}

	if avatarPath == "" {
		return nil, apperrors.NewValidationError("avatar file is required")
	}

	// The avatar is mandatory, so the cover is only attempted once it is stored.
	avatar := s.uploader.Upload(ctx, avatarPath)
	if avatar == nil {
		return nil, apperrors.NewValidationError("avatar file is required")
	}
	user.Avatar = avatar.URL
	if cover := s.uploader.Upload(ctx, coverImagePath); cover != nil {
		user.CoverImage = cover.URL
	}

	now := s.now()
	user.UserID = uuid.NewString()
	user.WatchHistory = []string{}
	user.CreatedAt = now
	user.UpdatedAt = now
	user.SetPassword(req.Password)

	if err := s.prepareForPersist(&user); err != nil {
		s.LogError(ctx, err, "Failed to prepare user for persistence")
		return nil, apperrors.NewInternalError("something went wrong while registering the user", err)
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("user with username or email already exists")
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("username", user.Username))
		return nil, apperrors.NewInternalError("something went wrong while registering the user", err)
	}

	created, err := s.userRepo.FindUserByID(ctx, user.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to re-read registered user", slog.String("user_id", user.UserID))
		return nil, apperrors.NewInternalError("something went wrong while registering the user", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", created.UserID), slog.String("username", created.Username))
	sanitized := created.Sanitized()
	return &sanitized, nil
}

// prepareForPersist normalizes identifiers and hashes a staged password. Every
// path that writes a user or a password goes through it.
func (s *userService) prepareForPersist(user *domain.User) error {
	user.Normalize()
	if !user.PasswordModified() {
		return nil
	}
	return user.ApplyPasswordHash(func(plain string) (string, error) {
		return utils.HashPassword(plain, s.bcryptCost)
	})
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("user does not exist")
		}
		s.LogError(ctx, err, "Failed to get user by ID", slog.String("user_id", userID))
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("user does not exist")
		}
		s.LogError(ctx, err, "Failed to load user for password change", slog.String("user_id", userID))
		return apperrors.NewInternalError("failed to change password", err)
	}

	if !utils.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return apperrors.NewValidationError("Invalid old password")
	}
	if strings.TrimSpace(req.NewPassword) == "" {
		return apperrors.NewValidationError("new password is required")
	}

	user.SetPassword(req.NewPassword)
	if err := s.prepareForPersist(user); err != nil {
		s.LogError(ctx, err, "Failed to hash new password", slog.String("user_id", userID))
		return apperrors.NewInternalError("failed to change password", err)
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, userID, user.PasswordHash, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to store new password", slog.String("user_id", userID))
		return apperrors.NewInternalError("failed to change password", err)
	}

	s.LogInfo(ctx, "Password changed", slog.String("user_id", userID))
	return nil
}

func (s *userService) UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error) {
	if isBlank(req.FullName, req.Email) {
		return nil, apperrors.NewValidationError("All fields are required")
	}
	fullName := strings.TrimSpace(req.FullName)
	email := domain.NormalizeIdentifier(req.Email)

	if err := s.userRepo.UpdateAccountDetails(ctx, userID, fullName, email, s.now()); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			return nil, apperrors.NewConflictError("user with email already exists")
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, apperrors.NewNotFoundError("user does not exist")
		}
		s.LogError(ctx, err, "Failed to update account details", slog.String("user_id", userID))
		return nil, apperrors.NewInternalError("failed to update account details", err)
	}
	return s.GetUserByID(ctx, userID)
}

func (s *userService) UpdateAvatar(ctx context.Context, userID string, localPath string) (*domain.User, error) {
	if localPath == "" {
		return nil, apperrors.NewValidationError("Avatar file is missing")
	}
	asset := s.uploader.Upload(ctx, localPath)
	if asset == nil {
		return nil, apperrors.NewValidationError("Error on uploading avatar")
	}
	if err := s.userRepo.UpdateAvatar(ctx, userID, asset.URL, s.now()); err != nil {
		return nil, s.mapUpdateError(ctx, err, userID, "failed to update avatar")
	}
	return s.GetUserByID(ctx, userID)
}

func (s *userService) UpdateCoverImage(ctx context.Context, userID string, localPath string) (*domain.User, error) {
	if localPath == "" {
		return nil, apperrors.NewValidationError("coverImage file is missing")
	}
	asset := s.uploader.Upload(ctx, localPath)
	if asset == nil {
		return nil, apperrors.NewValidationError("Error on uploading coverImage")
	}
	if err := s.userRepo.UpdateCoverImage(ctx, userID, asset.URL, s.now()); err != nil {
		return nil, s.mapUpdateError(ctx, err, userID, "failed to update coverImage")
	}
	return s.GetUserByID(ctx, userID)
}

func (s *userService) GetChannelProfile(ctx context.Context, username string, viewerID string) (*domain.ChannelProfile, error) {
	username = domain.NormalizeIdentifier(username)
	if username == "" {
		return nil, apperrors.NewValidationError("username is missing")
	}
	profile, err := s.userRepo.FindChannelProfile(ctx, username, viewerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("channel does not exist")
		}
		s.LogError(ctx, err, "Failed to load channel profile", slog.String("username", username))
		return nil, apperrors.NewInternalError("failed to load channel profile", err)
	}
	return profile, nil
}

func (s *userService) GetWatchHistory(ctx context.Context, userID string) ([]domain.Video, error) {
	videos, err := s.userRepo.FindWatchHistory(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("user does not exist")
		}
		s.LogError(ctx, err, "Failed to load watch history", slog.String("user_id", userID))
		return nil, apperrors.NewInternalError("failed to load watch history", err)
	}
	if videos == nil {
		videos = []domain.Video{}
	}
	return videos, nil
}

func (s *userService) mapUpdateError(ctx context.Context, err error, userID, msg string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewNotFoundError("user does not exist")
	}
	s.LogError(ctx, err, msg, slog.String("user_id", userID))
	return apperrors.NewInternalError(msg, err)
}

func isBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

package services

import (
	"context"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	"github.com/SscSPs/vidtube_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID, without secrets.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetChannelProfile retrieves the channel view of username as seen by viewerID (may be empty).
	GetChannelProfile(ctx context.Context, username string, viewerID string) (*domain.ChannelProfile, error)

	// GetWatchHistory retrieves the ordered watch history of a user.
	GetWatchHistory(ctx context.Context, userID string) ([]domain.Video, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a new account. avatarPath is required, coverImagePath is optional.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest, avatarPath, coverImagePath string) (*domain.User, error)

	// UpdateAccountDetails changes the full name and email of a user.
	UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error)

	// UpdateAvatar uploads a new avatar and stores its URL.
	UpdateAvatar(ctx context.Context, userID string, localPath string) (*domain.User, error)

	// UpdateCoverImage uploads a new cover image and stores its URL.
	UpdateCoverImage(ctx context.Context, userID string, localPath string) (*domain.User, error)

	// ChangePassword verifies the old password and stores the new one.
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}

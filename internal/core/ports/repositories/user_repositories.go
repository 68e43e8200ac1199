package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsernameOrEmail retrieves the first user whose username or email matches.
	FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
}

// UserAggregator defines the read models composed from users, subscriptions and videos.
type UserAggregator interface {
	// FindChannelProfile returns the channel view of username. viewerID may be empty for anonymous viewers.
	FindChannelProfile(ctx context.Context, username string, viewerID string) (*domain.ChannelProfile, error)

	// FindWatchHistory returns the videos in the user's watch history, in stored order.
	FindWatchHistory(ctx context.Context, userID string) ([]domain.Video, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateAccountDetails changes the full name and email of a user.
	UpdateAccountDetails(ctx context.Context, userID, fullName, email string, updatedAt time.Time) error

	// UpdateAvatar replaces the avatar URL of a user.
	UpdateAvatar(ctx context.Context, userID, avatarURL string, updatedAt time.Time) error

	// UpdateCoverImage replaces the cover image URL of a user.
	UpdateCoverImage(ctx context.Context, userID, coverImageURL string, updatedAt time.Time) error

	// UpdatePasswordHash stores a new password digest.
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string, updatedAt time.Time) error
}

// UserSessionWriter defines writes of the refresh token mirror.
type UserSessionWriter interface {
	// UpdateRefreshToken replaces the stored refresh token digest. Last write wins.
	UpdateRefreshToken(ctx context.Context, userID, refreshTokenHash string) error

	// ClearRefreshToken removes the stored refresh token digest.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserAggregator
	UserWriter
	UserSessionWriter
}

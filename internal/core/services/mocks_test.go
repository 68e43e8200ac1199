package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func userResult(args mock.Arguments, id string) *domain.User {
	switch v := args.Get(0).(type) {
	case *domain.User:
		return v
	case func(string) *domain.User:
		return v(id)
	default:
		return nil
	}
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	return userResult(args, userID), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	args := m.Called(ctx, username, email)
	return userResult(args, ""), args.Error(1)
}

func (m *MockUserRepository) FindChannelProfile(ctx context.Context, username string, viewerID string) (*domain.ChannelProfile, error) {
	args := m.Called(ctx, username, viewerID)
	var profile *domain.ChannelProfile
	if args.Get(0) != nil {
		profile = args.Get(0).(*domain.ChannelProfile)
	}
	return profile, args.Error(1)
}

func (m *MockUserRepository) FindWatchHistory(ctx context.Context, userID string) ([]domain.Video, error) {
	args := m.Called(ctx, userID)
	var videos []domain.Video
	if args.Get(0) != nil {
		videos = args.Get(0).([]domain.Video)
	}
	return videos, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAccountDetails(ctx context.Context, userID, fullName, email string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, fullName, email, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAvatar(ctx context.Context, userID, avatarURL string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, avatarURL, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateCoverImage(ctx context.Context, userID, coverImageURL string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, coverImageURL, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, passwordHash, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID, refreshTokenHash string) error {
	args := m.Called(ctx, userID, refreshTokenHash)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock MediaUploader ---
type MockMediaUploader struct {
	mock.Mock
}

func (m *MockMediaUploader) Upload(ctx context.Context, localPath string) *domain.MediaAsset {
	args := m.Called(ctx, localPath)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.MediaAsset)
}

package dto

import (
	"time"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
)

// UserResponse is the public representation of a user. It never carries the
// password or refresh token.
type UserResponse struct {
	UserID       string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	Avatar       string    `json:"avatar"`
	CoverImage   string    `json:"coverImage"`
	WatchHistory []string  `json:"watchHistory"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToUserResponse converts a domain User to its response DTO.
func ToUserResponse(user *domain.User) UserResponse {
	watchHistory := user.WatchHistory
	if watchHistory == nil {
		watchHistory = []string{}
	}
	return UserResponse{
		UserID:       user.UserID,
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.FullName,
		Avatar:       user.Avatar,
		CoverImage:   user.CoverImage,
		WatchHistory: watchHistory,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

package dto

import "github.com/SscSPs/vidtube_backend/internal/core/domain"

// ChannelProfileResponse is the public channel view of a user.
type ChannelProfileResponse struct {
	UserID                    string `json:"_id"`
	FullName                  string `json:"fullName"`
	Username                  string `json:"username"`
	Email                     string `json:"email"`
	Avatar                    string `json:"avatar"`
	CoverImage                string `json:"coverImage"`
	SubscribersCount          int64  `json:"subscribersCount"`
	ChannelsSubscribedToCount int64  `json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `json:"isSubscribed"`
}

// ToChannelProfileResponse converts a domain ChannelProfile to its response DTO.
func ToChannelProfileResponse(p *domain.ChannelProfile) ChannelProfileResponse {
	return ChannelProfileResponse{
		UserID:                    p.UserID,
		FullName:                  p.FullName,
		Username:                  p.Username,
		Email:                     p.Email,
		Avatar:                    p.Avatar,
		CoverImage:                p.CoverImage,
		SubscribersCount:          p.SubscribersCount,
		ChannelsSubscribedToCount: p.ChannelsSubscribedToCount,
		IsSubscribed:              p.IsSubscribed,
	}
}

package dto

import (
	"time"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
)

// VideoOwnerResponse is the public subset of a video's owner.
type VideoOwnerResponse struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// VideoResponse is one entry of a watch history.
type VideoResponse struct {
	VideoID     string              `json:"_id"`
	VideoFile   string              `json:"videoFile"`
	Thumbnail   string              `json:"thumbnail"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Duration    float64             `json:"duration"`
	Views       int64               `json:"views"`
	IsPublished bool                `json:"isPublished"`
	Owner       *VideoOwnerResponse `json:"owner"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// ToVideoResponse converts a domain Video to its response DTO.
func ToVideoResponse(v *domain.Video) VideoResponse {
	resp := VideoResponse{
		VideoID:     v.VideoID,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Title:       v.Title,
		Description: v.Description,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
	if v.Owner != nil {
		resp.Owner = &VideoOwnerResponse{
			FullName: v.Owner.FullName,
			Username: v.Owner.Username,
			Avatar:   v.Owner.Avatar,
		}
	}
	return resp
}

// ToWatchHistoryResponse converts videos keeping their order.
func ToWatchHistoryResponse(videos []domain.Video) []VideoResponse {
	resp := make([]VideoResponse, len(videos))
	for i := range videos {
		resp[i] = ToVideoResponse(&videos[i])
	}
	return resp
}

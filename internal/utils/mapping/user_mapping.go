package mapping

import (
	"database/sql"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	"github.com/SscSPs/vidtube_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		Email:        d.Email,
		FullName:     d.FullName,
		Avatar:       d.Avatar,
		CoverImage:   d.CoverImage,
		PasswordHash: d.PasswordHash,
		WatchHistory: d.WatchHistory,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
	if m.WatchHistory == nil {
		m.WatchHistory = []string{}
	}
	if d.RefreshTokenHash != nil {
		m.RefreshTokenHash = sql.NullString{String: *d.RefreshTokenHash, Valid: true}
	}
	return m
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		Email:        m.Email,
		FullName:     m.FullName,
		Avatar:       m.Avatar,
		CoverImage:   m.CoverImage,
		PasswordHash: m.PasswordHash,
		WatchHistory: m.WatchHistory,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if d.WatchHistory == nil {
		d.WatchHistory = []string{}
	}
	if m.RefreshTokenHash.Valid {
		hash := m.RefreshTokenHash.String
		d.RefreshTokenHash = &hash
	}
	return d
}

// ToDomainChannelProfile converts the channel profile projection to its domain form.
func ToDomainChannelProfile(m models.ChannelProfileRow) domain.ChannelProfile {
	return domain.ChannelProfile{
		UserID:                    m.UserID,
		FullName:                  m.FullName,
		Username:                  m.Username,
		Email:                     m.Email,
		Avatar:                    m.Avatar,
		CoverImage:                m.CoverImage,
		SubscribersCount:          m.SubscribersCount,
		ChannelsSubscribedToCount: m.ChannelsSubscribedToCount,
		IsSubscribed:              m.IsSubscribed,
	}
}

// ToDomainVideo converts a watch history row into a video with its embedded owner.
// The owner is collapsed to nil when the join found nothing.
func ToDomainVideo(m models.WatchHistoryRow) domain.Video {
	v := domain.Video{
		VideoID:     m.VideoID,
		VideoFile:   m.VideoFile,
		Thumbnail:   m.Thumbnail,
		Title:       m.Title,
		Description: m.Description,
		Duration:    m.Duration,
		Views:       m.Views,
		IsPublished: m.IsPublished,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.OwnerUsername.Valid {
		v.Owner = &domain.VideoOwner{
			FullName: m.OwnerFullName.String,
			Username: m.OwnerUsername.String,
			Avatar:   m.OwnerAvatar.String,
		}
	}
	return v
}

// ToDomainVideoSlice converts watch history rows preserving their order.
func ToDomainVideoSlice(ms []models.WatchHistoryRow) []domain.Video {
	ds := make([]domain.Video, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVideo(m)
	}
	return ds
}

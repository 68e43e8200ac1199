package models

import "database/sql"

// WatchHistoryRow is one row of the watch history query: a video joined with
// its owner. Owner columns are NULL when the owner row is missing.
type WatchHistoryRow struct {
	VideoID     string  `db:"id"`
	VideoFile   string  `db:"video_file"`
	Thumbnail   string  `db:"thumbnail"`
	Title       string  `db:"title"`
	Description string  `db:"description"`
	Duration    float64 `db:"duration"`
	Views       int64   `db:"views"`
	IsPublished bool    `db:"is_published"`
	AuditFields

	OwnerFullName sql.NullString `db:"owner_full_name"`
	OwnerUsername sql.NullString `db:"owner_username"`
	OwnerAvatar   sql.NullString `db:"owner_avatar"`
}

// ChannelProfileRow is the projection returned by the channel profile query.
type ChannelProfileRow struct {
	UserID                    string `db:"id"`
	FullName                  string `db:"full_name"`
	Username                  string `db:"username"`
	Email                     string `db:"email"`
	Avatar                    string `db:"avatar"`
	CoverImage                string `db:"cover_image"`
	SubscribersCount          int64  `db:"subscribers_count"`
	ChannelsSubscribedToCount int64  `db:"channels_subscribed_to_count"`
	IsSubscribed              bool   `db:"is_subscribed"`
}

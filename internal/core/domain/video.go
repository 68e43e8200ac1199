package domain

// Video is a published upload as it appears in a watch history.
type Video struct {
	VideoID     string
	VideoFile   string
	Thumbnail   string
	Title       string
	Description string
	Duration    float64 // seconds
	Views       int64
	IsPublished bool
	// Owner is nil when the owning user no longer exists.
	Owner *VideoOwner
	AuditFields
}

// VideoOwner is the public subset of the user who owns a video.
type VideoOwner struct {
	FullName string
	Username string
	Avatar   string
}

package domain

// ChannelProfile is the public view of a user as a subscribable channel.
type ChannelProfile struct {
	UserID                    string
	FullName                  string
	Username                  string
	Email                     string
	Avatar                    string
	CoverImage                string
	SubscribersCount          int64
	ChannelsSubscribedToCount int64
	IsSubscribed              bool
}

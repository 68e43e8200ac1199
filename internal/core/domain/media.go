package domain

// MediaAsset describes a file stored on the media host.
type MediaAsset struct {
	URL         string
	Key         string
	ContentType string
	Bytes       int64
}

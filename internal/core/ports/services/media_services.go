package services

import (
	"context"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
)

// MediaUploader pushes a local file to the media host.
//
// Upload returns nil when the file could not be uploaded or localPath is empty; the
// reason is logged, not returned. The local file is removed whenever an upload was
// attempted, whatever the outcome.
type MediaUploader interface {
	Upload(ctx context.Context, localPath string) *domain.MediaAsset
}

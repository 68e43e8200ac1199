// Package media uploads user files (avatars, cover images) to an S3-compatible
// media host and hands back their public URL.
package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/middleware"
	"github.com/SscSPs/vidtube_backend/internal/platform/metrics"
)

const breakerName = "media-host"

// Config holds the connection settings of the media host.
type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

// objectPutter is the part of *minio.Client the uploader needs.
type objectPutter interface {
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Uploader implements portssvc.MediaUploader on top of minio-go.
type Uploader struct {
	client  objectPutter
	cfg     Config
	cb      *gobreaker.CircuitBreaker[minio.UploadInfo]
	logger  *slog.Logger
	nowFunc func() time.Time
}

var _ portssvc.MediaUploader = (*Uploader)(nil)

// NewMinioClient creates a minio client for cfg.
func NewMinioClient(cfg Config) (*minio.Client, error) {
	// minio-go expects host:port
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  miniocreds.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return client, nil
}

// New creates an Uploader backed by a fresh minio client.
func New(cfg Config, logger *slog.Logger) (*Uploader, error) {
	client, err := NewMinioClient(cfg)
	if err != nil {
		return nil, err
	}
	return NewUploader(client, cfg, logger), nil
}

// NewUploader wraps client with a circuit breaker. Breaker settings:
//   - opens after 5 consecutive failed uploads
//   - stays open for 30 seconds, then lets one trial request through
func NewUploader(client objectPutter, cfg Config, logger *slog.Logger) *Uploader {
	if logger == nil {
		logger = slog.Default()
	}
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[minio.UploadInfo](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Media host circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &Uploader{
		client:  client,
		cfg:     cfg,
		cb:      cb,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// Upload pushes localPath to the bucket and returns the stored asset, or nil if
// the upload failed. localPath is removed before Upload returns.
func (u *Uploader) Upload(ctx context.Context, localPath string) *domain.MediaAsset {
	if localPath == "" {
		return nil
	}
	logger := u.loggerFor(ctx).With(slog.String("local_path", localPath))
	defer u.removeLocal(logger, localPath)

	info, err := os.Stat(localPath)
	if err != nil {
		logger.Error("Failed to stat upload file", slog.String("error", err.Error()))
		metrics.MediaUploadsTotal.WithLabelValues("failure").Inc()
		return nil
	}

	key := u.objectKey(localPath)
	contentType := contentTypeOf(localPath)

	start := time.Now()
	uploaded, err := u.cb.Execute(func() (minio.UploadInfo, error) {
		return u.client.FPutObject(ctx, u.cfg.Bucket, key, localPath, minio.PutObjectOptions{
			ContentType: contentType,
		})
	})
	metrics.MediaUploadDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		outcome := "failure"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "rejected"
		}
		metrics.MediaUploadsTotal.WithLabelValues(outcome).Inc()
		logger.Error("Failed to upload file to media host", slog.String("key", key), slog.String("error", err.Error()))
		return nil
	}

	size := uploaded.Size
	if size == 0 {
		size = info.Size()
	}
	metrics.MediaUploadsTotal.WithLabelValues("success").Inc()
	logger.Info("File uploaded to media host", slog.String("key", key), slog.Int64("bytes", size))

	return &domain.MediaAsset{
		URL:         u.publicURL(key),
		Key:         key,
		ContentType: contentType,
		Bytes:       size,
	}
}

func (u *Uploader) removeLocal(logger *slog.Logger, localPath string) {
	if err := os.Remove(localPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Failed to remove local upload file", slog.String("error", err.Error()))
	}
}

func (u *Uploader) loggerFor(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return u.logger
	}
	return middleware.GetLoggerFromCtx(ctx)
}

// objectKey returns a unique key such as "uploads/2026/10/15/<uuid>.png".
func (u *Uploader) objectKey(localPath string) string {
	ext := strings.ToLower(filepath.Ext(localPath))
	return fmt.Sprintf("uploads/%s/%s%s", u.nowFunc().UTC().Format("2006/01/02"), uuid.NewString(), ext)
}

func (u *Uploader) publicURL(key string) string {
	if u.cfg.PublicBaseURL != "" {
		return strings.TrimSuffix(u.cfg.PublicBaseURL, "/") + "/" + key
	}
	scheme := "http"
	if u.cfg.UseSSL {
		scheme = "https"
	}
	endpoint := strings.TrimPrefix(strings.TrimPrefix(u.cfg.Endpoint, "http://"), "https://")
	return fmt.Sprintf("%s://%s/%s/%s", scheme, endpoint, u.cfg.Bucket, key)
}

func contentTypeOf(localPath string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(localPath))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/middleware"
)

// tempUploads stages multipart files on local disk until the media host has them.
type tempUploads struct {
	dir string
}

// save stores the file of form field under a random name and returns its path,
// or "" when the request carries no such file.
func (t tempUploads) save(c *gin.Context, field string) (string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", apperrors.NewValidationError("Invalid multipart form", err.Error())
	}

	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return "", apperrors.NewInternalError("failed to prepare upload directory", err)
	}
	path := filepath.Join(t.dir, uuid.NewString()+strings.ToLower(filepath.Ext(header.Filename)))
	if err := c.SaveUploadedFile(header, path); err != nil {
		return "", apperrors.NewInternalError(fmt.Sprintf("failed to store %s upload", field), err)
	}
	return path, nil
}

// remove deletes a staged file. Files handed to the uploader are usually gone already.
func (t tempUploads) remove(c *gin.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		middleware.GetLoggerFromContext(c).Warn("Failed to remove temp upload", slog.String("path", path), slog.String("error", err.Error()))
	}
}

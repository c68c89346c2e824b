package handler

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vidtube/vidtube-api-go/internal/storage"
	"github.com/vidtube/vidtube-api-go/internal/validation"
	"github.com/vidtube/vidtube-api-go/pkg/logger"
	"go.uber.org/zap"
)

// Uploader stores multipart files in a temporary directory until the asset
// store takes them.
type Uploader struct {
	dir       string
	validator *validation.Validator
}

// NewUploader creates dir if needed.
func NewUploader(dir string, maxSize int64) (*Uploader, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Uploader{dir: dir, validator: validation.New(maxSize)}, nil
}

// Save writes the form file field to disk and returns its path. A missing
// field returns an empty path and no error.
func (u *Uploader) Save(c *gin.Context, field string, kind storage.Kind) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	if err := u.validator.ValidateUpload(file, kind); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	path := filepath.Join(u.dir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", fmt.Errorf("save %s: %w", field, err)
	}

	logger.Log.Debug("Upload stored",
		zap.String("field", field),
		zap.String("path", path),
		zap.Int64("size", file.Size),
	)
	return path, nil
}

// discard removes uploads the request will not hand on.
func discard(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Log.Warn("Failed to remove upload", zap.Error(err), zap.String("path", p))
		}
	}
}

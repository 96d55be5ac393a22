// internal/pkg/storage/storage.go
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/your-org/storefront/internal/config"
)

// imageDir is the path prefix item images are served under
const imageDir = "images"

var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Store persists item images
type Store interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// New builds the image store selected by the storage config
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.External.Storage.Provider {
	case "local":
		return NewLocalStore(cfg.External.Storage.LocalPath), nil
	case "s3":
		return NewS3Store(ctx, cfg.External.Storage.S3Bucket, cfg.External.Storage.S3Region, cfg.External.Storage.CDNBaseURL)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.External.Storage.Provider)
	}
}

// objectName validates the upload and returns a unique object name and its content type
func objectName(filename, contentType string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	expected, ok := allowedImageTypes[ext]
	if !ok {
		return "", "", fmt.Errorf("unsupported image type %q", ext)
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = expected
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", fmt.Errorf("unsupported content type %q", contentType)
	}

	return uuid.NewString() + ext, contentType, nil
}

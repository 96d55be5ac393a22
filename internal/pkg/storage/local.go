// internal/pkg/storage/local.go
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// LocalStore writes images below a directory served as /static
type LocalStore struct {
	root string
}

// NewLocalStore creates a store rooted at dir. Images land in dir/images.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{root: dir}
}

// Save writes the image and returns its path relative to the static root
func (l *LocalStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name, _, err := objectName(filename, contentType)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(l.root, imageDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	fullPath := filepath.Join(dir, name)
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return path.Join(imageDir, name), nil
}

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/config"
)

// ObjectStore persists uploaded media and returns a public URL for it.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// FileStore keeps objects under a local directory and serves them from a
// configured base URL. It stands in for the production media bucket.
type FileStore struct {
	dir     string
	baseURL string
}

// NewFileStore constructs the store from upload settings.
func NewFileStore(cfg config.UploadConfig) *FileStore {
	return &FileStore{dir: cfg.Dir, baseURL: cfg.BaseURL}
}

// Put writes the object and returns its URL. The key may contain slashes;
// intermediate directories are created as needed.
func (s *FileStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write media object: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

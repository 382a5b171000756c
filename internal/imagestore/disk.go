package imagestore

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"tokoadmin/internal/models"

	"github.com/google/uuid"
)

// URLPrefix is the route the disk store's files are served under.
const URLPrefix = "/uploads"

// DiskStore writes images into a local directory served as static files.
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore creates dir if needed. baseURL may be empty, in which case
// image URLs are relative to the API host.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &DiskStore{dir: dir, baseURL: baseURL}, nil
}

// Dir is the directory files are written to.
func (s *DiskStore) Dir() string { return s.dir }

func (s *DiskStore) Save(ctx context.Context, up Upload) (models.ProductImage, error) {
	name := uuid.New().String() + AllowedTypes[up.ContentType]
	if err := os.WriteFile(filepath.Join(s.dir, name), up.Data, 0o644); err != nil {
		return models.ProductImage{}, fmt.Errorf("failed to write image: %w", err)
	}
	return models.ReferenceImage(s.baseURL+URLPrefix+"/"+name, up.ContentType), nil
}

func (s *DiskStore) Remove(ctx context.Context, img models.ProductImage) error {
	if img.Kind != models.ImageReference || img.URL == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, path.Base(img.URL)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *DiskStore) Close() error { return nil }

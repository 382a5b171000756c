package imagestore

import (
	"context"
	"fmt"

	"tokoadmin/internal/config"
)

// New builds the Store selected by cfg.ImageStorage.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.ImageStorage {
	case config.StorageInline:
		return NewInlineStore(), nil
	case config.StorageDisk:
		return NewDiskStore(cfg.UploadDir, cfg.PublicBaseURL)
	case config.StorageGCS:
		return NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
	}
	return nil, fmt.Errorf("unsupported image storage %q", cfg.ImageStorage)
}

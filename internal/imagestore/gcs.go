package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"tokoadmin/internal/models"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// GCSStore uploads images to a Google Cloud Storage bucket with public read
// access and references them by their public URL.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore creates a GCS client. If credsPath is empty, Application
// Default Credentials are used.
func NewGCSStore(ctx context.Context, bucket, credsPath string) (*GCSStore, error) {
	var (
		client *storage.Client
		err    error
	)
	if credsPath == "" {
		client, err = storage.NewClient(ctx)
	} else {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to init GCS client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) Save(ctx context.Context, up Upload) (models.ProductImage, error) {
	object := "products/" + uuid.New().String() + AllowedTypes[up.ContentType]
	wc := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	wc.ContentType = up.ContentType
	wc.ChunkSize = 0
	if _, err := io.Copy(wc, bytes.NewReader(up.Data)); err != nil {
		_ = wc.Close()
		return models.ProductImage{}, fmt.Errorf("failed to upload %s: %w", object, err)
	}
	if err := wc.Close(); err != nil {
		return models.ProductImage{}, fmt.Errorf("failed to upload %s: %w", object, err)
	}
	return models.ReferenceImage(PublicURL(s.bucket, object), up.ContentType), nil
}

func (s *GCSStore) Remove(ctx context.Context, img models.ProductImage) error {
	prefix := PublicURL(s.bucket, "")
	if img.Kind != models.ImageReference || !strings.HasPrefix(img.URL, prefix) {
		return nil
	}
	return s.client.Bucket(s.bucket).Object(strings.TrimPrefix(img.URL, prefix)).Delete(ctx)
}

func (s *GCSStore) Close() error { return s.client.Close() }

// PublicURL is the public address of an object.
func PublicURL(bucket, object string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, object)
}

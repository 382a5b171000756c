package imagestore

import (
	"context"

	"tokoadmin/internal/models"
)

// InlineStore keeps image bytes inside the product record.
type InlineStore struct{}

func NewInlineStore() *InlineStore { return &InlineStore{} }

func (s *InlineStore) Save(ctx context.Context, up Upload) (models.ProductImage, error) {
	return models.InlineImage(up.Data, up.ContentType), nil
}

// Remove is a no-op: the bytes go away with the row.
func (s *InlineStore) Remove(ctx context.Context, img models.ProductImage) error { return nil }

func (s *InlineStore) Close() error { return nil }

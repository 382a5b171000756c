package repositories

import (
	"context"

	"tokoadmin/internal/models"
)

// ProductRepository defines the interface for product data access.
// Every read and write only sees active products; inactive ones behave as
// if they did not exist.
type ProductRepository interface {
	// ListActive returns one page of active products, newest first, and the
	// total number of active products.
	ListActive(ctx context.Context, offset, limit int) ([]models.Product, int64, error)
	// SearchActive is ListActive restricted to products whose name,
	// description or category contains query, ignoring case.
	SearchActive(ctx context.Context, query string, offset, limit int) ([]models.Product, int64, error)
	GetActiveByID(ctx context.Context, id string) (*models.Product, error)
	// Create stores product together with its images.
	Create(ctx context.Context, product *models.Product) error
	// Update overwrites the scalar fields of product and appends newImages
	// after the existing ones. product is reloaded with all its images.
	Update(ctx context.Context, product *models.Product, newImages []models.ProductImage) error
	// Deactivate flips an active product to inactive.
	Deactivate(ctx context.Context, id string) error
}

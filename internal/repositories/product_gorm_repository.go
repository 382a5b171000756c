package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tokoadmin/internal/apperror"
	"tokoadmin/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

func active(db *gorm.DB) *gorm.DB {
	return db.Where("products.is_active = ?", true)
}

func matching(query string) func(*gorm.DB) *gorm.DB {
	pattern := likePattern(query)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			`(LOWER(products.name) LIKE ? ESCAPE '\' OR LOWER(products.description) LIKE ? ESCAPE '\' OR LOWER(products.category) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern,
		)
	}
}

func withImages(db *gorm.DB) *gorm.DB {
	return db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("product_images.id ASC")
	})
}

// ListActive retrieves one page of active products, newest first.
func (r *GORMProductRepository) ListActive(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	return r.page(ctx, offset, limit, active)
}

// SearchActive retrieves one page of active products matching query.
// Case folding is done by the database: Postgres LOWER follows the
// database locale, SQLite LOWER folds ASCII letters only. The in-memory
// repository folds full Unicode, so non-ASCII searches can differ between
// backends.
func (r *GORMProductRepository) SearchActive(ctx context.Context, query string, offset, limit int) ([]models.Product, int64, error) {
	return r.page(ctx, offset, limit, active, matching(query))
}

func (r *GORMProductRepository) page(ctx context.Context, offset, limit int, scopes ...func(*gorm.DB) *gorm.DB) ([]models.Product, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Scopes(scopes...).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products := make([]models.Product, 0, limit)
	if total == 0 {
		return products, 0, nil
	}
	err := r.db.WithContext(ctx).
		Scopes(scopes...).
		Scopes(withImages).
		Order("products.created_at DESC").
		Order("products.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// GetActiveByID retrieves a single active product by its ID.
func (r *GORMProductRepository) GetActiveByID(ctx context.Context, id string) (*models.Product, error) {
	return r.getActive(r.db.WithContext(ctx), id)
}

func (r *GORMProductRepository) getActive(db *gorm.DB, id string) (*models.Product, error) {
	var product models.Product
	if err := db.Scopes(active, withImages).First(&product, "products.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("product not found")
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product and its images in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	for i := range product.Images {
		product.Images[i].ProductID = product.ID
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update overwrites the product fields and inserts newImages in a single
// transaction. Appending is insert-only, so concurrent updates cannot drop
// each other's images.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product, newImages []models.ProductImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND is_active = ?", product.ID, true).
			Updates(map[string]interface{}{
				"name":        product.Name,
				"description": product.Description,
				"price":       product.Price,
				"category":    product.Category,
				"stock":       product.Stock,
				"updated_at":  time.Now(),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperror.NotFound("product not found")
		}

		if len(newImages) > 0 {
			for i := range newImages {
				newImages[i].ID = 0
				newImages[i].ProductID = product.ID
			}
			if err := tx.Create(&newImages).Error; err != nil {
				return fmt.Errorf("failed to append product images: %w", err)
			}
		}

		updated, err := r.getActive(tx, product.ID)
		if err != nil {
			return err
		}
		*product = *updated
		return nil
	})
}

// Deactivate soft-deletes an active product.
func (r *GORMProductRepository) Deactivate(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("product not found")
	}
	return nil
}

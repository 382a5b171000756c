package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"tokoadmin/internal/apperror"
	"tokoadmin/internal/models"

	"github.com/google/uuid"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	products    map[string]models.Product
	nextImageID uint
	mu          sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]models.Product),
	}
}

// ListActive returns one page of active products, newest first.
func (r *MemoryProductRepository) ListActive(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	return r.page(offset, limit, func(models.Product) bool { return true })
}

// SearchActive returns one page of active products containing query.
func (r *MemoryProductRepository) SearchActive(ctx context.Context, query string, offset, limit int) ([]models.Product, int64, error) {
	q := strings.ToLower(query)
	return r.page(offset, limit, func(p models.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q)
	})
}

func (r *MemoryProductRepository) page(offset, limit int, keep func(models.Product) bool) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Product, 0)
	for _, p := range r.products {
		if p.IsActive && keep(p) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return []models.Product{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	out := make([]models.Product, 0, end-offset)
	for _, p := range matched[offset:end] {
		out = append(out, clone(p))
	}
	return out, total, nil
}

// GetActiveByID returns an active product by its ID.
func (r *MemoryProductRepository) GetActiveByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok || !p.IsActive {
		return nil, apperror.NotFound("product not found")
	}
	c := clone(p)
	return &c, nil
}

// Create adds a new product.
func (r *MemoryProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	for i := range product.Images {
		r.nextImageID++
		product.Images[i].ID = r.nextImageID
		product.Images[i].ProductID = product.ID
		product.Images[i].CreatedAt = now
	}
	r.products[product.ID] = clone(*product)
	return nil
}

// Update overwrites the fields of an active product and appends newImages.
func (r *MemoryProductRepository) Update(ctx context.Context, product *models.Product, newImages []models.ProductImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.products[product.ID]
	if !ok || !stored.IsActive {
		return apperror.NotFound("product not found")
	}
	now := time.Now()
	stored.Name = product.Name
	stored.Description = product.Description
	stored.Price = product.Price
	stored.Category = product.Category
	stored.Stock = product.Stock
	stored.UpdatedAt = now
	for _, img := range newImages {
		r.nextImageID++
		img.ID = r.nextImageID
		img.ProductID = stored.ID
		img.CreatedAt = now
		stored.Images = append(stored.Images, img)
	}
	r.products[stored.ID] = stored
	*product = clone(stored)
	return nil
}

// Deactivate marks an active product inactive.
func (r *MemoryProductRepository) Deactivate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok || !p.IsActive {
		return apperror.NotFound("product not found")
	}
	p.IsActive = false
	p.UpdatedAt = time.Now()
	r.products[id] = p
	return nil
}

func clone(p models.Product) models.Product {
	p.Images = append([]models.ProductImage(nil), p.Images...)
	return p
}

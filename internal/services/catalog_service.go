package services

import (
	"context"
	"strings"

	"tokoadmin/internal/imagestore"
	"tokoadmin/internal/models"
	"tokoadmin/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// ProductInput holds the writable fields of a product. Price and Stock are
// pointers so that a missing value can be told apart from zero.
type ProductInput struct {
	Name        string   `json:"name" form:"name" validate:"required,max=100"`
	Description string   `json:"description" form:"description" validate:"required,max=1000"`
	Price       *float64 `json:"price" form:"price" validate:"required,gte=0"`
	Category    string   `json:"category" form:"category" validate:"required,category"`
	Stock       *int     `json:"stock" form:"stock" validate:"required,gte=0"`
}

// ProductPage is one page of products plus its pagination metadata.
type ProductPage struct {
	Products []models.Product
	Pagination
}

// CatalogService handles business logic related to products.
type CatalogService struct {
	repo     repositories.ProductRepository
	images   imagestore.Store
	limits   imagestore.Limits
	validate *validator.Validate
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository, images imagestore.Store, limits imagestore.Limits) *CatalogService {
	return &CatalogService{
		repo:     repo,
		images:   images,
		limits:   limits,
		validate: newValidator(),
	}
}

// List returns a page of active products, newest first.
func (s *CatalogService) List(ctx context.Context, req PageRequest) (*ProductPage, error) {
	req = req.Normalize()
	products, total, err := s.repo.ListActive(ctx, req.Offset(), req.PageSize)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Products: products, Pagination: Paginate(req, total)}, nil
}

// Search returns a page of active products whose name, description or
// category contains query, ignoring case. query is matched literally.
func (s *CatalogService) Search(ctx context.Context, query string, req PageRequest) (*ProductPage, error) {
	req = req.Normalize()
	products, total, err := s.repo.SearchActive(ctx, query, req.Offset(), req.PageSize)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Products: products, Pagination: Paginate(req, total)}, nil
}

// GetByID returns an active product. Soft-deleted products are not found.
func (s *CatalogService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetActiveByID(ctx, id)
}

// Create validates in, stores the uploaded images and persists the product.
// At least one image is required.
func (s *CatalogService) Create(ctx context.Context, in ProductInput, uploads []imagestore.Upload) (*models.Product, error) {
	fields := s.check(&in)
	if len(uploads) == 0 {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["images"] = "at least one image is required"
	}
	if fields != nil {
		return nil, validationError(fields)
	}
	if err := imagestore.Check(uploads, s.limits); err != nil {
		return nil, err
	}

	images, err := imagestore.SaveAll(ctx, s.images, uploads)
	if err != nil {
		return nil, err
	}
	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       *in.Price,
		Category:    in.Category,
		Stock:       *in.Stock,
		IsActive:    true,
		Images:      images,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		imagestore.RemoveAll(ctx, s.images, images)
		return nil, err
	}
	return product, nil
}

// Update overwrites the fields of an active product and appends any new
// images after the existing ones.
func (s *CatalogService) Update(ctx context.Context, id string, in ProductInput, uploads []imagestore.Upload) (*models.Product, error) {
	if fields := s.check(&in); fields != nil {
		return nil, validationError(fields)
	}
	if err := imagestore.Check(uploads, s.limits); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetActiveByID(ctx, id); err != nil {
		return nil, err
	}

	images, err := imagestore.SaveAll(ctx, s.images, uploads)
	if err != nil {
		return nil, err
	}
	product := &models.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       *in.Price,
		Category:    in.Category,
		Stock:       *in.Stock,
	}
	if err := s.repo.Update(ctx, product, images); err != nil {
		imagestore.RemoveAll(ctx, s.images, images)
		return nil, err
	}
	return product, nil
}

// SoftDelete marks an active product inactive.
func (s *CatalogService) SoftDelete(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *CatalogService) check(in *ProductInput) map[string]string {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	return fieldErrors(s.validate, in)
}

// Limits reports the upload limits the service enforces.
func (s *CatalogService) Limits() imagestore.Limits {
	return s.limits
}

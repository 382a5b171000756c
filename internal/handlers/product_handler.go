package handlers

import (
	"mime/multipart"
	"net/url"
	"strings"

	"tokoadmin/internal/apperror"
	"tokoadmin/internal/imagestore"
	"tokoadmin/internal/models"
	"tokoadmin/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.CatalogService
	log     *logrus.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.CatalogService, log *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the product routes. The guard handlers run in
// front of every route that changes the catalog.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, guard ...fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/search/:query", h.HandleSearchProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", guarded(guard, h.HandleCreateProduct)...)
	productRoutes.Put("/:id", guarded(guard, h.HandleUpdateProduct)...)
	productRoutes.Delete("/:id", guarded(guard, h.HandleDeleteProduct)...)
}

// HandleListProducts returns one page of active products.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), pageRequest(c))
	if err != nil {
		return err
	}
	return respondPage(c, page)
}

// HandleSearchProducts returns one page of active products matching the query.
func (h *ProductHandler) HandleSearchProducts(c *fiber.Ctx) error {
	query, err := url.PathUnescape(c.Params("query"))
	if err != nil {
		return apperror.Validation("Invalid search query", map[string]string{"query": "malformed percent-encoding"})
	}
	page, err := h.service.Search(c.UserContext(), query, pageRequest(c))
	if err != nil {
		return err
	}
	return respondPage(c, page)
}

// HandleGetProductByID retrieves a single active product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", product)
}

// HandleCreateProduct creates a product from a multipart form carrying the
// fields and at least one image.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(err)
	}
	uploads, err := h.uploads(c)
	if err != nil {
		return err
	}

	product, err := h.service.Create(c.UserContext(), in, uploads)
	if err != nil {
		return err
	}

	h.log.WithFields(logrus.Fields{"product_id": product.ID, "images": len(product.Images)}).Info("product created")
	return ok(c, fiber.StatusCreated, "Product created successfully", product)
}

// HandleUpdateProduct overwrites a product's fields and appends any images
// sent along. Accepts a multipart form or a JSON body.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(err)
	}
	uploads, err := h.uploads(c)
	if err != nil {
		return err
	}

	product, err := h.service.Update(c.UserContext(), c.Params("id"), in, uploads)
	if err != nil {
		return err
	}

	h.log.WithFields(logrus.Fields{"product_id": product.ID, "new_images": len(uploads)}).Info("product updated")
	return ok(c, fiber.StatusOK, "Product updated successfully", product)
}

// HandleDeleteProduct soft deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.SoftDelete(c.UserContext(), id); err != nil {
		return err
	}

	h.log.WithField("product_id", id).Info("product deactivated")
	return ok(c, fiber.StatusOK, "Product deleted successfully", nil)
}

// uploads reads the image files of a multipart request. Files may be sent
// as "images[]" or "images". Other content types carry no files.
func (h *ProductHandler) uploads(c *fiber.Ctx) ([]imagestore.Upload, error) {
	ct := string(c.Request().Header.ContentType())
	if !strings.HasPrefix(ct, fiber.MIMEMultipartForm) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, badBody(err)
	}
	var files []*multipart.FileHeader
	files = append(files, form.File["images[]"]...)
	files = append(files, form.File["images"]...)
	return imagestore.ReadUploads(files, h.service.Limits())
}

func guarded(guard []fiber.Handler, handler fiber.Handler) []fiber.Handler {
	chain := make([]fiber.Handler, 0, len(guard)+1)
	chain = append(chain, guard...)
	return append(chain, handler)
}

func pageRequest(c *fiber.Ctx) services.PageRequest {
	return services.ParsePageRequest(c.Query("page"), c.Query("limit"))
}

func respondPage(c *fiber.Ctx, page *services.ProductPage) error {
	products := page.Products
	if products == nil {
		products = []models.Product{}
	}
	return c.JSON(PageEnvelope{
		Success:     true,
		Count:       len(products),
		Total:       page.Total,
		Page:        page.Page,
		TotalPages:  page.TotalPages,
		HasNextPage: page.HasNextPage,
		HasPrevPage: page.HasPrevPage,
		Data:        products,
	})
}

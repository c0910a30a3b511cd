package handlers

import (
	"fmt"
	"log"
	"path/filepath"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service    *services.CatalogService
	uploadPath string
}

// NewProductHandler creates a new ProductHandler. uploadPath is the directory
// product images are written to.
func NewProductHandler(service *services.CatalogService, uploadPath string) *ProductHandler {
	return &ProductHandler{
		service:    service,
		uploadPath: uploadPath,
	}
}

// RegisterRoutes registers the public catalog routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:slug", h.HandleGetProduct)
}

// RegisterAdminRoutes registers the catalog management routes. These are
// mounted behind authentication.
func (h *ProductHandler) RegisterAdminRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
	productRoutes.Post("/:slug/image", h.HandleUploadImage)
}

// HandleListProducts lists the active products.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListActiveProducts()
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleGetProduct retrieves a single product by its slug.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	productSlug := c.Params("slug")
	product, err := h.service.GetProductBySlug(productSlug)
	if err != nil {
		log.Printf("Error getting product %s: %v", productSlug, err)
		return failedLookup(c, "Product", err)
	}
	return c.JSON(fiber.Map{
		"product":       product,
		"display_price": product.DisplayPrice(),
	})
}

// HandleCreateProduct creates a new product. The slug is derived from the
// title when the request leaves it empty.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.service.CreateProduct(&product); err != nil {
		if body, ok := validationMessages(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(body)
		}
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = c.Params("id")

	if err := h.service.UpdateProduct(&product); err != nil {
		if body, ok := validationMessages(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(body)
		}
		log.Printf("Error updating product %s: %v", product.ID, err)
		return failedLookup(c, "Product", err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteProduct(id); err != nil {
		log.Printf("Error deleting product %s: %v", id, err)
		return failedLookup(c, "Product", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s deleted", id),
	})
}

// HandleUploadImage saves an uploaded product image under the configured
// upload directory and stores its relative path on the product.
func (h *ProductHandler) HandleUploadImage(c *fiber.Ctx) error {
	productSlug := c.Params("slug")

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "An 'image' file field is required",
			"error":   err.Error(),
		})
	}

	// Relative path stored on the product; the filename is namespaced by the
	// product slug to avoid collisions.
	relPath := filepath.Join("product_images", fmt.Sprintf("%s-%s", productSlug, filepath.Base(file.Filename)))
	if err := c.SaveFile(file, filepath.Join(h.uploadPath, relPath)); err != nil {
		log.Printf("Error saving image for product %s: %v", productSlug, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save image",
			"error":   err.Error(),
		})
	}

	product, err := h.service.SetProductImage(productSlug, relPath)
	if err != nil {
		log.Printf("Error attaching image to product %s: %v", productSlug, err)
		return failedLookup(c, "Product", err)
	}
	return c.JSON(product)
}

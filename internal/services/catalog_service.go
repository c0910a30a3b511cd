package services

import (
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
)

// CatalogService handles business logic related to the product catalog.
type CatalogService struct {
	repo     repositories.ProductRepository
	validate *validator.Validate
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository) *CatalogService {
	return &CatalogService{
		repo:     repo,
		validate: validator.New(),
	}
}

// ListActiveProducts retrieves the products shown in the storefront.
func (s *CatalogService) ListActiveProducts() ([]models.Product, error) {
	return s.repo.GetActive()
}

// ListAllProducts retrieves every product, including inactive ones.
func (s *CatalogService) ListAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductBySlug retrieves a single product by its slug.
func (s *CatalogService) GetProductBySlug(productSlug string) (*models.Product, error) {
	return s.repo.GetBySlug(productSlug)
}

// GetProductByID retrieves a single product by its ID.
func (s *CatalogService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// normalize derives the slug from the title when none was supplied. This is
// an explicit step on the write paths rather than a persistence hook, so the
// dependency is visible and testable on its own.
func (s *CatalogService) normalize(product *models.Product) {
	if product.Slug == "" {
		product.Slug = slug.Make(product.Title)
	}
}

// CreateProduct validates, normalizes and persists a new product. The error
// from a failed validation is the validator's own, so callers can render
// per-field messages.
func (s *CatalogService) CreateProduct(product *models.Product) error {
	s.normalize(product)
	if err := s.validate.Struct(product); err != nil {
		return err
	}
	return s.repo.Create(product)
}

// UpdateProduct validates, normalizes and persists changes to a product.
func (s *CatalogService) UpdateProduct(product *models.Product) error {
	s.normalize(product)
	if err := s.validate.Struct(product); err != nil {
		return err
	}
	return s.repo.Update(product)
}

// SetProductImage stores the relative path of an uploaded product image.
func (s *CatalogService) SetProductImage(productSlug, imagePath string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(productSlug)
	if err != nil {
		return nil, err
	}
	product.Image = imagePath
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *CatalogService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

package services_test

import (
	"fmt"
	"testing"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetActive() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySlug(slug string) (*models.Product, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestCatalogService_ListActiveProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo)

	expectedProducts := []models.Product{
		{ID: "1", Title: "Zip Hoodie", Slug: "zip-hoodie", Price: 500, Active: true},
		{ID: "2", Title: "Framed Poster", Slug: "framed-poster", Price: 1200, Active: true},
	}

	mockRepo.On("GetActive").Return(expectedProducts, nil).Once()

	products, err := service.ListActiveProducts()

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_GetProductBySlug(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo)

	expectedProduct := &models.Product{ID: "1", Title: "Zip Hoodie", Slug: "zip-hoodie", Price: 500}

	// Test successful retrieval
	mockRepo.On("GetBySlug", "zip-hoodie").Return(expectedProduct, nil).Once()
	product, err := service.GetProductBySlug("zip-hoodie")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("GetBySlug", "missing").Return(nil, fmt.Errorf("product with slug missing not found")).Once()
	product, err = service.GetProductBySlug("missing")
	assert.Error(t, err)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_CreateProductDerivesSlug(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo)

	newProduct := &models.Product{Title: "Limited Edition Mug", Price: 950}

	mockRepo.On("Create", newProduct).Return(nil).Once()
	err := service.CreateProduct(newProduct)

	assert.NoError(t, err)
	assert.Equal(t, "limited-edition-mug", newProduct.Slug)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_CreateProductKeepsGivenSlug(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo)

	newProduct := &models.Product{Title: "Limited Edition Mug", Slug: "ltd-mug", Price: 950}

	mockRepo.On("Create", newProduct).Return(nil).Once()
	err := service.CreateProduct(newProduct)

	assert.NoError(t, err)
	assert.Equal(t, "ltd-mug", newProduct.Slug)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_CreateProductValidation(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo)

	// Missing title
	err := service.CreateProduct(&models.Product{Price: 100})
	assert.Error(t, err)
	var validationErrors validator.ValidationErrors
	assert.ErrorAs(t, err, &validationErrors)

	// Negative price
	err = service.CreateProduct(&models.Product{Title: "Broken Thing", Price: -1})
	assert.Error(t, err)
	assert.ErrorAs(t, err, &validationErrors)

	// The repository is never reached on a validation failure.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCatalogService_SetProductImage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo)

	product := &models.Product{ID: "1", Title: "Zip Hoodie", Slug: "zip-hoodie", Price: 500}

	mockRepo.On("GetBySlug", "zip-hoodie").Return(product, nil).Once()
	mockRepo.On("Update", product).Return(nil).Once()

	updated, err := service.SetProductImage("zip-hoodie", "product_images/zip-hoodie-front.jpg")

	assert.NoError(t, err)
	assert.Equal(t, "product_images/zip-hoodie-front.jpg", updated.Image)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo)

	mockRepo.On("Delete", "1").Return(nil).Once()
	err := service.DeleteProduct("1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	mockRepo.On("Delete", "99").Return(fmt.Errorf("product with ID 99 not found")).Once()
	err = service.DeleteProduct("99")
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}

package services

import (
	"tokoroti/internal/models"
	"tokoroti/internal/repositories"
)

// ProductService handles business logic related to the bakery catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves the full catalog, including inactive items
// (staff view).
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetActiveProducts retrieves the storefront catalog.
func (s *ProductService) GetActiveProducts() ([]models.Product, error) {
	return s.repo.GetActive()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new catalog item. New items are visible to the
// storefront unless explicitly deactivated later.
func (s *ProductService) CreateProduct(product *models.Product) error {
	product.Active = true
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product. Price and discount edits
// only affect future checkouts; placed orders keep their snapshots.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

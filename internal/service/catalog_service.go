package service

import (
	"strings"

	"github.com/huong-next/internal/logger"
	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CatalogService manages products, brands and categories.
type CatalogService struct {
	productRepo  repository.ProductRepository
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogService creates a catalog service.
func NewCatalogService(
	productRepo repository.ProductRepository,
	brandRepo repository.BrandRepository,
	categoryRepo repository.CategoryRepository,
) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
	}
}

// GetProduct fetches a product.
func (s *CatalogService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListProducts returns the product list.
func (s *CatalogService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// ListPublicProducts returns active products for the storefront.
func (s *CatalogService) ListPublicProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	active := true
	filter.IsActive = &active
	return s.productRepo.List(filter)
}

// SaveProduct creates or updates a product.
func (s *CatalogService) SaveProduct(product *models.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return ErrProductNotFound
	}
	if product.Price.Decimal.LessThan(decimal.Zero) {
		return ErrProductNotFound
	}
	if product.BrandID != nil {
		brand, err := s.brandRepo.GetByID(*product.BrandID)
		if err != nil {
			return err
		}
		if brand == nil {
			return ErrBrandNotFound
		}
	}
	if product.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(*product.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryNotFound
		}
	}

	if product.ID == 0 {
		if err := s.productRepo.Create(product); err != nil {
			return err
		}
		logger.Infow("product_created", "product_id", product.ID, "name", product.Name)
		return nil
	}
	return s.productRepo.Update(product)
}

// DeleteProduct removes a product.
func (s *CatalogService) DeleteProduct(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

// GetBrand fetches a brand.
func (s *CatalogService) GetBrand(id uint) (*models.Brand, error) {
	brand, err := s.brandRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}
	return brand, nil
}

// ListBrands returns the brand list.
func (s *CatalogService) ListBrands(page, pageSize int) ([]models.Brand, int64, error) {
	return s.brandRepo.List(page, pageSize)
}

// SaveBrand creates or updates a brand.
func (s *CatalogService) SaveBrand(brand *models.Brand) error {
	if strings.TrimSpace(brand.Name) == "" {
		return ErrBrandNotFound
	}
	if brand.ID == 0 {
		return s.brandRepo.Create(brand)
	}
	return s.brandRepo.Update(brand)
}

// DeleteBrand removes a brand.
func (s *CatalogService) DeleteBrand(id uint) error {
	brand, err := s.brandRepo.GetByID(id)
	if err != nil {
		return err
	}
	if brand == nil {
		return ErrBrandNotFound
	}
	return s.brandRepo.Delete(id)
}

// GetCategory fetches a category.
func (s *CatalogService) GetCategory(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// ListCategories returns the category list.
func (s *CatalogService) ListCategories(page, pageSize int) ([]models.Category, int64, error) {
	return s.categoryRepo.List(page, pageSize)
}

// SaveCategory creates or updates a category.
func (s *CatalogService) SaveCategory(category *models.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return ErrCategoryNotFound
	}
	if strings.TrimSpace(category.Slug) == "" {
		category.Slug = slugify(category.Name)
	}
	if category.ID == 0 {
		return s.categoryRepo.Create(category)
	}
	return s.categoryRepo.Update(category)
}

// DeleteCategory removes a category.
func (s *CatalogService) DeleteCategory(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return s.categoryRepo.Delete(id)
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}

package admin

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/huong-next/internal/http/handlers/shared"
	"github.com/huong-next/internal/http/response"
	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/repository"
	"github.com/huong-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest is the create/update payload.
type ProductRequest struct {
	Name           string  `json:"name" binding:"required"`
	BrandID        *uint   `json:"brand_id"`
	CategoryID     *uint   `json:"category_id"`
	Price          float64 `json:"price"`
	VolumeML       int     `json:"volume_ml"`
	Gender         string  `json:"gender"`
	Stock          int     `json:"stock"`
	WarrantyMonths int     `json:"warranty_months"`
	Description    string  `json:"description"`
	ImageURL       string  `json:"image_url"`
	IsActive       *bool   `json:"is_active"`
}

func (r ProductRequest) apply(product *models.Product) {
	product.Name = strings.TrimSpace(r.Name)
	product.BrandID = r.BrandID
	product.CategoryID = r.CategoryID
	product.Price = models.NewMoneyFromDecimal(decimal.NewFromFloat(r.Price))
	product.VolumeML = r.VolumeML
	product.Gender = strings.TrimSpace(r.Gender)
	product.Stock = r.Stock
	product.WarrantyMonths = r.WarrantyMonths
	product.Description = r.Description
	product.ImageURL = strings.TrimSpace(r.ImageURL)
	if r.IsActive != nil {
		product.IsActive = *r.IsActive
	}
}

func respondCatalogError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "product not found", nil)
	case errors.Is(err, service.ErrBrandNotFound):
		respondError(c, response.CodeNotFound, "brand not found", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeNotFound, "category not found", nil)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}

// ListProducts returns the back-office product list.
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	brandID, _ := strconv.ParseUint(c.Query("brand_id"), 10, 64)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)

	filter := repository.ProductListFilter{
		Keyword:    strings.TrimSpace(c.Query("search")),
		BrandID:    uint(brandID),
		CategoryID: uint(categoryID),
		Gender:     strings.TrimSpace(c.Query("gender")),
		Page:       page,
		PageSize:   pageSize,
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	products, total, err := h.CatalogService.ListProducts(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProductAdmin returns one product.
func (h *Handler) GetProductAdmin(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	product, err := h.CatalogService.GetProduct(id)
	if err != nil {
		respondCatalogError(c, err, "product fetch failed")
		return
	}
	response.Success(c, product)
}

// CreateProduct adds a catalog listing.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	product := &models.Product{IsActive: true}
	req.apply(product)
	if err := h.CatalogService.SaveProduct(product); err != nil {
		respondCatalogError(c, err, "product create failed")
		return
	}
	response.Success(c, product)
}

// UpdateProduct edits a catalog listing. Orders keep their snapshots.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	product, err := h.CatalogService.GetProduct(id)
	if err != nil {
		respondCatalogError(c, err, "product update failed")
		return
	}
	req.apply(product)
	if err := h.CatalogService.SaveProduct(product); err != nil {
		respondCatalogError(c, err, "product update failed")
		return
	}
	response.Success(c, product)
}

// DeleteProduct removes a catalog listing.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteProduct(id); err != nil {
		respondCatalogError(c, err, "product delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// BrandRequest is the brand create/update payload.
type BrandRequest struct {
	Name     string `json:"name" binding:"required"`
	Country  string `json:"country"`
	LogoURL  string `json:"logo_url"`
	IsActive *bool  `json:"is_active"`
}

// ListBrandsAdmin returns all brands.
func (h *Handler) ListBrandsAdmin(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	brands, total, err := h.CatalogService.ListBrands(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "brand list failed", err)
		return
	}
	response.SuccessWithPage(c, brands, response.NewPagination(page, pageSize, total))
}

// CreateBrand adds a brand.
func (h *Handler) CreateBrand(c *gin.Context) {
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	brand := &models.Brand{
		Name:     strings.TrimSpace(req.Name),
		Country:  strings.TrimSpace(req.Country),
		LogoURL:  strings.TrimSpace(req.LogoURL),
		IsActive: true,
	}
	if req.IsActive != nil {
		brand.IsActive = *req.IsActive
	}
	if err := h.CatalogService.SaveBrand(brand); err != nil {
		respondCatalogError(c, err, "brand create failed")
		return
	}
	response.Success(c, brand)
}

// UpdateBrand edits a brand.
func (h *Handler) UpdateBrand(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	brand, err := h.CatalogService.GetBrand(id)
	if err != nil {
		respondCatalogError(c, err, "brand update failed")
		return
	}
	brand.Name = strings.TrimSpace(req.Name)
	brand.Country = strings.TrimSpace(req.Country)
	brand.LogoURL = strings.TrimSpace(req.LogoURL)
	if req.IsActive != nil {
		brand.IsActive = *req.IsActive
	}
	if err := h.CatalogService.SaveBrand(brand); err != nil {
		respondCatalogError(c, err, "brand update failed")
		return
	}
	response.Success(c, brand)
}

// DeleteBrand removes a brand.
func (h *Handler) DeleteBrand(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteBrand(id); err != nil {
		respondCatalogError(c, err, "brand delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// CategoryRequest is the category create/update payload.
type CategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	Slug      string `json:"slug"`
	SortOrder int    `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

// ListCategoriesAdmin returns all categories.
func (h *Handler) ListCategoriesAdmin(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	categories, total, err := h.CatalogService.ListCategories(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "category list failed", err)
		return
	}
	response.SuccessWithPage(c, categories, response.NewPagination(page, pageSize, total))
}

// CreateCategory adds a category.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	category := &models.Category{
		Name:      strings.TrimSpace(req.Name),
		Slug:      strings.TrimSpace(req.Slug),
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if err := h.CatalogService.SaveCategory(category); err != nil {
		respondCatalogError(c, err, "category create failed")
		return
	}
	response.Success(c, category)
}

// UpdateCategory edits a category.
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	category, err := h.CatalogService.GetCategory(id)
	if err != nil {
		respondCatalogError(c, err, "category update failed")
		return
	}
	category.Name = strings.TrimSpace(req.Name)
	if strings.TrimSpace(req.Slug) != "" {
		category.Slug = strings.TrimSpace(req.Slug)
	}
	category.SortOrder = req.SortOrder
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if err := h.CatalogService.SaveCategory(category); err != nil {
		respondCatalogError(c, err, "category update failed")
		return
	}
	response.Success(c, category)
}

// DeleteCategory removes a category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteCategory(id); err != nil {
		respondCatalogError(c, err, "category delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

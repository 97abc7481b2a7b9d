package public

import (
	"strconv"
	"strings"

	"github.com/huong-next/internal/http/response"
	"github.com/huong-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetProducts lists active products with filters.
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	brandID, _ := strconv.ParseUint(c.Query("brand_id"), 10, 64)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)

	products, total, err := h.CatalogService.ListPublicProducts(repository.ProductListFilter{
		Keyword:    strings.TrimSpace(c.Query("search")),
		BrandID:    uint(brandID),
		CategoryID: uint(categoryID),
		Gender:     strings.TrimSpace(c.Query("gender")),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct returns one product.
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "product id invalid", nil)
		return
	}
	product, err := h.CatalogService.GetProduct(uint(id))
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "product fetch failed")
		return
	}
	if !product.IsActive || product.IsPlaceholder {
		response.NotFound(c, "product not found")
		return
	}
	response.Success(c, product)
}

// GetBrands lists brands.
func (h *Handler) GetBrands(c *gin.Context) {
	brands, _, err := h.CatalogService.ListBrands(1, 200)
	if err != nil {
		respondError(c, response.CodeInternal, "brand list failed", err)
		return
	}
	response.Success(c, gin.H{"items": brands})
}

// GetCategories lists categories.
func (h *Handler) GetCategories(c *gin.Context) {
	categories, _, err := h.CatalogService.ListCategories(1, 200)
	if err != nil {
		respondError(c, response.CodeInternal, "category list failed", err)
		return
	}
	response.Success(c, gin.H{"items": categories})
}

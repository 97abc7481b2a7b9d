package public

import (
	"strconv"
	"strings"

	"github.com/huong-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CreateClaimRequest opens a service request against a warranty.
type CreateClaimRequest struct {
	WarrantyCode string `json:"warranty_code" binding:"required"`
	Description  string `json:"description" binding:"required"`
}

// LookupWarranty finds a warranty by its public code. Open to guests so
// a card holder can check coverage without an account.
func (h *Handler) LookupWarranty(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		respondError(c, response.CodeBadRequest, "warranty code required", nil)
		return
	}
	warranty, err := h.WarrantyService.GetByCode(code)
	if err != nil {
		respondWithMappedError(c, err, warrantyErrorRules, response.CodeInternal, "warranty lookup failed")
		return
	}
	response.Success(c, warranty)
}

// MyWarranties lists the customer's warranties.
func (h *Handler) MyWarranties(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	warranties, total, err := h.WarrantyService.ListByCustomer(customerID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "warranty list failed", err)
		return
	}
	response.SuccessWithPage(c, warranties, response.NewPagination(page, pageSize, total))
}

// CreateClaim opens a warranty claim for the signed-in customer.
func (h *Handler) CreateClaim(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	claim, err := h.WarrantyService.CreateClaim(req.WarrantyCode, customerID, req.Description)
	if err != nil {
		respondWithMappedError(c, err, warrantyErrorRules, response.CodeInternal, "claim create failed")
		return
	}
	response.Success(c, claim)
}

package admin

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/huong-next/internal/http/handlers/shared"
	"github.com/huong-next/internal/http/response"
	"github.com/huong-next/internal/repository"
	"github.com/huong-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateClaimStatusRequest moves a warranty claim to a new status.
type UpdateClaimStatusRequest struct {
	Status     string `json:"status" binding:"required"`
	Resolution string `json:"resolution"`
}

func respondWarrantyAdminError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrWarrantyNotFound):
		respondError(c, response.CodeNotFound, "warranty not found", nil)
	case errors.Is(err, service.ErrClaimNotFound):
		respondError(c, response.CodeNotFound, "claim not found", nil)
	case errors.Is(err, service.ErrClaimStatusInvalid):
		respondError(c, response.CodeBadRequest, "claim status unknown", nil)
	case errors.Is(err, service.ErrOrderNotFound):
		respondError(c, response.CodeNotFound, "order not found", nil)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}

// ListWarranties returns the back-office warranty list.
func (h *Handler) ListWarranties(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	orderID, _ := strconv.ParseUint(c.Query("order_id"), 10, 64)
	customerID, _ := strconv.ParseUint(c.Query("customer_id"), 10, 64)

	filter := repository.WarrantyListFilter{
		Code:       strings.TrimSpace(c.Query("code")),
		OrderID:    uint(orderID),
		CustomerID: uint(customerID),
		Page:       page,
		PageSize:   pageSize,
	}
	warranties, total, err := h.WarrantyService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "warranty list failed", err)
		return
	}
	response.SuccessWithPage(c, warranties, response.NewPagination(page, pageSize, total))
}

// GetWarrantyAdmin looks up a warranty by its card code.
func (h *Handler) GetWarrantyAdmin(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		respondError(c, response.CodeBadRequest, "code required", nil)
		return
	}
	warranty, err := h.WarrantyService.GetByCode(code)
	if err != nil {
		respondWarrantyAdminError(c, err, "warranty fetch failed")
		return
	}
	response.Success(c, warranty)
}

// ReissueOrderWarranties rebuilds the warranty cards for a delivered
// order, replacing any stale cards from an earlier delivery.
func (h *Handler) ReissueOrderWarranties(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	report, err := h.WarrantyService.IssueForOrder(id)
	if err != nil {
		respondWarrantyAdminError(c, err, "warranty issue failed")
		return
	}
	response.Success(c, report)
}

// ListWarrantyClaims returns the claim queue.
func (h *Handler) ListWarrantyClaims(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	warrantyID, _ := strconv.ParseUint(c.Query("warranty_id"), 10, 64)

	filter := repository.ClaimListFilter{
		WarrantyID: uint(warrantyID),
		Status:     strings.TrimSpace(c.Query("status")),
		Page:       page,
		PageSize:   pageSize,
	}
	claims, total, err := h.WarrantyService.ListClaims(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "claim list failed", err)
		return
	}
	response.SuccessWithPage(c, claims, response.NewPagination(page, pageSize, total))
}

// UpdateClaimStatus resolves or rejects a warranty claim.
func (h *Handler) UpdateClaimStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req UpdateClaimStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	claim, err := h.WarrantyService.UpdateClaimStatus(id, req.Status, req.Resolution)
	if err != nil {
		respondWarrantyAdminError(c, err, "claim update failed")
		return
	}
	response.Success(c, claim)
}

package admin

import (
	"errors"
	"strings"

	handlershared "github.com/huong-next/internal/http/handlers/shared"
	"github.com/huong-next/internal/http/response"
	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// FeeRequest is the fee rule payload. Percent and Amount are exclusive
// in practice: VAT uses Percent, Shipping uses Amount plus Threshold.
type FeeRequest struct {
	Name      string  `json:"name" binding:"required"`
	Percent   float64 `json:"percent"`
	Amount    float64 `json:"amount"`
	Threshold float64 `json:"threshold"`
	IsActive  *bool   `json:"is_active"`
}

func respondFeeError(c *gin.Context, err error, fallbackMsg string) {
	if errors.Is(err, service.ErrFeeNotFound) {
		respondError(c, response.CodeNotFound, "fee not found", nil)
		return
	}
	respondError(c, response.CodeInternal, fallbackMsg, err)
}

// ListFees returns all fee rules.
func (h *Handler) ListFees(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	fees, total, err := h.FeeService.List(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "fee list failed", err)
		return
	}
	response.SuccessWithPage(c, fees, response.NewPagination(page, pageSize, total))
}

// CreateFee adds a fee rule.
func (h *Handler) CreateFee(c *gin.Context) {
	var req FeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	fee := &models.Fee{
		Name:      strings.TrimSpace(req.Name),
		Percent:   models.NewMoneyFromDecimal(decimal.NewFromFloat(req.Percent)),
		Amount:    models.NewMoneyFromDecimal(decimal.NewFromFloat(req.Amount)),
		Threshold: models.NewMoneyFromDecimal(decimal.NewFromFloat(req.Threshold)),
		IsActive:  true,
	}
	if req.IsActive != nil {
		fee.IsActive = *req.IsActive
	}
	if err := h.FeeService.Save(fee); err != nil {
		respondFeeError(c, err, "fee create failed")
		return
	}
	response.Success(c, fee)
}

// UpdateFee edits a fee rule. Existing orders keep their frozen totals.
func (h *Handler) UpdateFee(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req FeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	fee, err := h.FeeService.Get(id)
	if err != nil {
		respondFeeError(c, err, "fee update failed")
		return
	}
	fee.Name = strings.TrimSpace(req.Name)
	fee.Percent = models.NewMoneyFromDecimal(decimal.NewFromFloat(req.Percent))
	fee.Amount = models.NewMoneyFromDecimal(decimal.NewFromFloat(req.Amount))
	fee.Threshold = models.NewMoneyFromDecimal(decimal.NewFromFloat(req.Threshold))
	if req.IsActive != nil {
		fee.IsActive = *req.IsActive
	}
	if err := h.FeeService.Save(fee); err != nil {
		respondFeeError(c, err, "fee update failed")
		return
	}
	response.Success(c, fee)
}

// DeleteFee removes a fee rule.
func (h *Handler) DeleteFee(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.FeeService.Delete(id); err != nil {
		respondFeeError(c, err, "fee delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

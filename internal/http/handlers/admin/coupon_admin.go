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

// CreateCouponRequest is the single-coupon payload.
type CreateCouponRequest struct {
	Code       string  `json:"code" binding:"required"`
	Value      float64 `json:"value" binding:"required"`
	ExpiresAt  string  `json:"expires_at"`
	CustomerID *uint   `json:"customer_id"`
}

// GenerateCouponBatchRequest creates a spin-wheel coupon pool.
type GenerateCouponBatchRequest struct {
	Prefix    string  `json:"prefix"`
	Count     int     `json:"count" binding:"required"`
	Value     float64 `json:"value" binding:"required"`
	ExpiresAt string  `json:"expires_at"`
}

// UpdateCouponRequest edits an unused coupon.
type UpdateCouponRequest struct {
	Value     *float64 `json:"value"`
	ExpiresAt string   `json:"expires_at"`
}

func respondCouponError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrCouponNotFound):
		respondError(c, response.CodeNotFound, "coupon not found", nil)
	case errors.Is(err, service.ErrCouponInvalid):
		respondError(c, response.CodeBadRequest, "coupon invalid", nil)
	case errors.Is(err, service.ErrCouponCodeTaken):
		respondError(c, response.CodeConflict, "coupon code already exists", nil)
	case errors.Is(err, service.ErrCouponUsed):
		respondError(c, response.CodeBadRequest, "coupon already used", nil)
	case errors.Is(err, service.ErrCouponDeleteBlocked):
		respondError(c, response.CodeBadRequest, "coupon is used or linked to orders", nil)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}

// ListCoupons returns the coupon list.
func (h *Handler) ListCoupons(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	customerID, _ := strconv.ParseUint(c.Query("customer_id"), 10, 64)

	filter := repository.CouponListFilter{
		Code:       strings.TrimSpace(c.Query("code")),
		CustomerID: uint(customerID),
		Page:       page,
		PageSize:   pageSize,
	}
	if raw := c.Query("is_used"); raw != "" {
		used := raw == "true" || raw == "1"
		filter.IsUsed = &used
	}

	coupons, total, err := h.CouponAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "coupon list failed", err)
		return
	}
	response.SuccessWithPage(c, coupons, response.NewPagination(page, pageSize, total))
}

// GetCoupon returns one coupon.
func (h *Handler) GetCoupon(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	coupon, err := h.CouponAdminService.Get(id)
	if err != nil {
		respondCouponError(c, err, "coupon fetch failed")
		return
	}
	response.Success(c, coupon)
}

// CreateCoupon inserts a single coupon.
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	expiresAt, err := parseTimeNullable(req.ExpiresAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "expires_at invalid", err)
		return
	}

	coupon, err := h.CouponAdminService.Create(service.CreateCouponInput{
		Code:       req.Code,
		Value:      models.NewMoneyFromDecimal(decimal.NewFromFloat(req.Value)),
		ExpiresAt:  expiresAt,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		respondCouponError(c, err, "coupon create failed")
		return
	}
	response.Success(c, coupon)
}

// GenerateCouponBatch creates a pool of random coupons for the wheel.
func (h *Handler) GenerateCouponBatch(c *gin.Context) {
	var req GenerateCouponBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	expiresAt, err := parseTimeNullable(req.ExpiresAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "expires_at invalid", err)
		return
	}

	coupons, err := h.CouponAdminService.GenerateBatch(
		req.Prefix,
		req.Count,
		models.NewMoneyFromDecimal(decimal.NewFromFloat(req.Value)),
		expiresAt,
	)
	if err != nil {
		respondCouponError(c, err, "coupon batch failed")
		return
	}
	response.Success(c, gin.H{"count": len(coupons), "coupons": coupons})
}

// UpdateCoupon edits an unused coupon.
func (h *Handler) UpdateCoupon(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	expiresAt, err := parseTimeNullable(req.ExpiresAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "expires_at invalid", err)
		return
	}

	var value *models.Money
	if req.Value != nil {
		m := models.NewMoneyFromDecimal(decimal.NewFromFloat(*req.Value))
		value = &m
	}

	coupon, err := h.CouponAdminService.Update(id, value, expiresAt)
	if err != nil {
		respondCouponError(c, err, "coupon update failed")
		return
	}
	response.Success(c, coupon)
}

// DeleteCoupon removes a coupon unless used or linked to orders.
func (h *Handler) DeleteCoupon(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.CouponAdminService.Delete(id); err != nil {
		respondCouponError(c, err, "coupon delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

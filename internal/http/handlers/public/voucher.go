package public

import (
	"errors"

	"github.com/huong-next/internal/http/response"
	"github.com/huong-next/internal/repository"
	"github.com/huong-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ApplyVoucherRequest carries the voucher code.
type ApplyVoucherRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyVoucher applies a code to the checkout session. Re-applying the
// same amount code stacks its value.
func (h *Handler) ApplyVoucher(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}
	var req ApplyVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	state, err := h.VoucherService.Apply(c.Request.Context(), sid, optionalCustomerID(c), req.Code)
	if err != nil {
		respondWithMappedError(c, err, voucherErrorRules, response.CodeInternal, "voucher apply failed")
		return
	}
	response.Success(c, state)
}

// GetVoucher returns the session's applied voucher.
func (h *Handler) GetVoucher(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}
	state, err := h.VoucherService.Current(c.Request.Context(), sid)
	if err != nil {
		respondError(c, response.CodeInternal, "voucher fetch failed", err)
		return
	}
	response.Success(c, state)
}

// ClearVoucher removes the session's applied voucher.
func (h *Handler) ClearVoucher(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}
	if err := h.VoucherService.Clear(c.Request.Context(), sid); err != nil {
		respondError(c, response.CodeInternal, "voucher clear failed", err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}

// SpinWheel draws a coupon from the pool for the signed-in customer.
func (h *Handler) SpinWheel(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}

	coupon, err := h.VoucherService.Spin(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, service.ErrSpinPoolEmpty) {
			respondError(c, response.CodeNotFound, "no prizes left", nil)
			return
		}
		respondError(c, response.CodeInternal, "spin failed", err)
		return
	}
	response.Success(c, coupon)
}

// MyCoupons lists the customer's claimed, unused coupons.
func (h *Handler) MyCoupons(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	unused := false
	coupons, total, err := h.CouponAdminService.List(repository.CouponListFilter{
		CustomerID: customerID,
		IsUsed:     &unused,
		Page:       1,
		PageSize:   100,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "coupon list failed", err)
		return
	}
	response.SuccessWithPage(c, coupons, response.NewPagination(1, 100, total))
}

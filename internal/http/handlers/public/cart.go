package public

import (
	"strconv"

	"github.com/huong-next/internal/http/response"
	"github.com/huong-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest is the add-to-cart payload.
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest sets a line quantity.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart returns the cart priced with the currently applied voucher.
func (h *Handler) GetCart(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}
	customerID := optionalCustomerID(c)

	state, err := h.VoucherService.Current(c.Request.Context(), sid)
	if err != nil {
		respondError(c, response.CodeInternal, "cart fetch failed", err)
		return
	}

	summary, err := h.CartService.Summary(customerID, sid, service.ToAppliedVoucher(state))
	if err != nil {
		respondError(c, response.CodeInternal, "cart fetch failed", err)
		return
	}
	response.Success(c, gin.H{
		"items":   summary.Items,
		"quote":   summary.Quote,
		"voucher": state,
	})
}

// AddCartItem puts a product in the cart.
func (h *Handler) AddCartItem(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	item, err := h.CartService.Add(optionalCustomerID(c), sid, req.ProductID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart update failed")
		return
	}
	response.Success(c, item)
}

// UpdateCartItem changes a line quantity.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "cart item id invalid", nil)
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	item, err := h.CartService.UpdateQuantity(optionalCustomerID(c), sid, uint(itemID), req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart update failed")
		return
	}
	response.Success(c, item)
}

// DeleteCartItem removes a line.
func (h *Handler) DeleteCartItem(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "cart item id invalid", nil)
		return
	}
	if err := h.CartService.Remove(optionalCustomerID(c), sid, uint(itemID)); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart update failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(optionalCustomerID(c), sid); err != nil {
		respondError(c, response.CodeInternal, "cart update failed", err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}

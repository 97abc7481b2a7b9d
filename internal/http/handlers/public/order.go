package public

import (
	"strconv"

	"github.com/huong-next/internal/http/response"
	"github.com/huong-next/internal/repository"
	"github.com/huong-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest is the order placement payload. Items may be omitted
// to check out the current cart.
type CheckoutRequest struct {
	Email         string                    `json:"email"`
	FullName      string                    `json:"full_name"`
	PaymentMethod string                    `json:"payment_method" binding:"required"`
	Note          string                    `json:"note"`
	Shipping      service.ShippingInfo      `json:"shipping"`
	Items         []service.CreateOrderLine `json:"items"`
}

// CreateOrder places an order from the request lines or the cart.
func (h *Handler) CreateOrder(c *gin.Context) {
	sid, ok := requireSession(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	customerID := optionalCustomerID(c)
	lines := req.Items
	if len(lines) == 0 {
		cartLines, err := h.CartService.Lines(customerID, sid)
		if err != nil {
			respondError(c, response.CodeInternal, "order create failed", err)
			return
		}
		lines = cartLines
	}

	order, err := h.OrderService.CreateOrder(c.Request.Context(), service.CreateOrderInput{
		SessionID:     sid,
		CustomerID:    customerID,
		Email:         req.Email,
		FullName:      req.FullName,
		Shipping:      req.Shipping,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
		ClientIP:      c.ClientIP(),
		Lines:         lines,
	})
	if err != nil {
		respondWithMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "order create failed")
		return
	}
	response.Success(c, order)
}

// MyOrders lists the customer's order history.
func (h *Handler) MyOrders(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListByCustomer(repository.OrderListFilter{
		CustomerID: customerID,
		Status:     c.Query("status"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "order list failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// MyOrder returns one of the customer's orders.
func (h *Handler) MyOrder(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "order id invalid", nil)
		return
	}

	order, err := h.OrderService.GetForCustomer(uint(orderID), customerID)
	if err != nil {
		respondWithMappedError(c, err, orderReadErrorRules, response.CodeInternal, "order fetch failed")
		return
	}
	response.Success(c, order)
}

// CancelMyOrder cancels the customer's own order while still allowed.
func (h *Handler) CancelMyOrder(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "order id invalid", nil)
		return
	}

	order, err := h.OrderService.CancelByCustomer(uint(orderID), customerID)
	if err != nil {
		respondWithMappedError(c, err, orderReadErrorRules, response.CodeInternal, "order cancel failed")
		return
	}
	response.Success(c, order)
}

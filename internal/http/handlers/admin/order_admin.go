package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/huong-next/internal/constants"
	handlershared "github.com/huong-next/internal/http/handlers/shared"
	"github.com/huong-next/internal/http/response"
	"github.com/huong-next/internal/repository"
	"github.com/huong-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest moves an order along its lifecycle. Status
// accepts canonical snake_case values or their Vietnamese aliases.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func respondOrderAdminError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		respondError(c, response.CodeNotFound, "order not found", nil)
	case errors.Is(err, service.ErrOrderStatusInvalid):
		respondError(c, response.CodeBadRequest, "status unknown", nil)
	case errors.Is(err, service.ErrOrderTransition):
		respondError(c, response.CodeBadRequest, "status transition not allowed", nil)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}

// ListOrders returns the back-office order list.
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	customerID, _ := strconv.ParseUint(c.Query("customer_id"), 10, 64)

	filter := repository.OrderListFilter{
		CustomerID: uint(customerID),
		Status:     constants.NormalizeOrderStatus(c.Query("status")),
		OrderNo:    strings.TrimSpace(c.Query("order_no")),
		Email:      strings.TrimSpace(c.Query("email")),
		Page:       page,
		PageSize:   pageSize,
	}
	if raw := c.Query("created_from"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.CreatedFrom = &t
		}
	}
	if raw := c.Query("created_to"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.CreatedTo = &t
		}
	}

	orders, total, err := h.OrderService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "order list failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrderAdmin returns one order with items.
func (h *Handler) GetOrderAdmin(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.Get(id)
	if err != nil {
		respondOrderAdminError(c, err, "order fetch failed")
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus applies a lifecycle transition. Warranty issuance
// and retraction ride on the delivered edge inside the service.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	order, err := h.OrderService.UpdateStatus(id, req.Status)
	if err != nil {
		respondOrderAdminError(c, err, "order status update failed")
		return
	}
	response.Success(c, order)
}

package admin

import (
	"errors"
	"strings"

	handlershared "github.com/huong-next/internal/http/handlers/shared"
	"github.com/huong-next/internal/http/response"
	"github.com/huong-next/internal/repository"
	"github.com/huong-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SetCustomerActiveRequest toggles a customer account.
type SetCustomerActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ListCustomers returns the customer list.
func (h *Handler) ListCustomers(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	filter := repository.CustomerListFilter{
		Email:    strings.TrimSpace(c.Query("email")),
		Phone:    strings.TrimSpace(c.Query("phone")),
		Page:     page,
		PageSize: pageSize,
	}
	customers, total, err := h.CustomerService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "customer list failed", err)
		return
	}
	response.SuccessWithPage(c, customers, response.NewPagination(page, pageSize, total))
}

// GetCustomer returns one customer with addresses.
func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	customer, err := h.CustomerService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondError(c, response.CodeNotFound, "customer not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "customer fetch failed", err)
		return
	}
	response.Success(c, customer)
}

// SetCustomerActive enables or disables a customer account.
func (h *Handler) SetCustomerActive(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req SetCustomerActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	customer, err := h.CustomerService.SetActive(id, *req.IsActive)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondError(c, response.CodeNotFound, "customer not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "customer update failed", err)
		return
	}
	response.Success(c, customer)
}

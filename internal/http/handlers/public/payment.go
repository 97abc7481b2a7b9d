package public

import (
	"strings"

	"github.com/huong-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// PaymentCallbackRequest is the gateway notification payload.
type PaymentCallbackRequest struct {
	OrderNo string `json:"order_no" binding:"required"`
	Result  string `json:"result" binding:"required"` // success / cancel
	Method  string `json:"method"`
}

// PaymentCallback processes a bank-transfer gateway notification.
// Gateways retry, so repeats on a settled order are acknowledged.
func (h *Handler) PaymentCallback(c *gin.Context) {
	var req PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	sid := sessionID(c)
	switch strings.ToLower(strings.TrimSpace(req.Result)) {
	case "success":
		order, err := h.PaymentService.HandleSuccess(c.Request.Context(), req.OrderNo, sid)
		if err != nil {
			respondWithMappedError(c, err, paymentCallbackErrorRules, response.CodeInternal, "payment callback failed")
			return
		}
		response.Success(c, order)
	case "cancel":
		order, err := h.PaymentService.HandleCancel(c.Request.Context(), req.OrderNo, req.Method)
		if err != nil {
			respondWithMappedError(c, err, paymentCallbackErrorRules, response.CodeInternal, "payment callback failed")
			return
		}
		response.Success(c, order)
	default:
		respondError(c, response.CodeBadRequest, "callback result invalid", nil)
	}
}

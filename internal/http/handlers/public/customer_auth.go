package public

import (
	"github.com/huong-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// RegisterRequest is the account creation payload.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// LoginRequest is the customer login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ResetRequestPayload asks for a password reset code.
type ResetRequestPayload struct {
	Email string `json:"email" binding:"required"`
}

// ResetConfirmPayload completes a password reset.
type ResetConfirmPayload struct {
	Email       string `json:"email" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// Register creates a customer account.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	customer, err := h.CustomerAuthService.Register(req.Email, req.Password, req.FullName, req.Phone)
	if err != nil {
		respondWithMappedError(c, err, customerAuthErrorRules, response.CodeInternal, "register failed")
		return
	}
	response.Success(c, gin.H{
		"id":        customer.ID,
		"email":     customer.Email,
		"full_name": customer.FullName,
	})
}

// Login authenticates a customer.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	token, customer, err := h.CustomerAuthService.Login(req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, customerAuthErrorRules, response.CodeInternal, "login failed")
		return
	}
	response.Success(c, gin.H{
		"token": token,
		"customer": gin.H{
			"id":        customer.ID,
			"email":     customer.Email,
			"full_name": customer.FullName,
		},
	})
}

// Me returns the signed-in customer's profile.
func (h *Handler) Me(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	customer, err := h.CustomerService.Get(customerID)
	if err != nil {
		respondWithMappedError(c, err, customerAuthErrorRules, response.CodeInternal, "profile fetch failed")
		return
	}
	response.Success(c, customer)
}

// RequestPasswordReset sends a reset code. Unknown emails get the same
// acknowledgement as known ones.
func (h *Handler) RequestPasswordReset(c *gin.Context) {
	var req ResetRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.CustomerAuthService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondWithMappedError(c, err, passwordResetErrorRules, response.CodeInternal, "reset request failed")
		return
	}
	response.SuccessWithMsg(c, "if the email exists, a code has been sent", nil)
}

// ConfirmPasswordReset verifies the code and sets the new password.
func (h *Handler) ConfirmPasswordReset(c *gin.Context) {
	var req ResetConfirmPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.CustomerAuthService.ConfirmPasswordReset(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		respondWithMappedError(c, err, passwordResetErrorRules, response.CodeInternal, "reset failed")
		return
	}
	response.SuccessWithMsg(c, "password updated", nil)
}

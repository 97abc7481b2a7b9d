package admin

import (
	"errors"

	"github.com/huong-next/internal/http/response"
	"github.com/huong-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an admin.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	token, account, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "invalid username or password", nil)
		case errors.Is(err, service.ErrAccountDisabled):
			respondError(c, response.CodeForbidden, "account disabled", nil)
		default:
			respondError(c, response.CodeInternal, "login failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"token": token,
		"admin": gin.H{
			"id":           account.ID,
			"username":     account.Username,
			"display_name": account.DisplayName,
			"is_super":     account.IsSuper,
		},
	})
}

// Me returns the signed-in admin's profile with roles and policies.
func (h *Handler) Me(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	account, err := h.AdminRepo.GetByID(adminID)
	if err != nil || account == nil {
		respondError(c, response.CodeInternal, "profile fetch failed", err)
		return
	}

	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "profile fetch failed", err)
		return
	}
	policies, err := h.AuthzService.GetAdminPolicies(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "profile fetch failed", err)
		return
	}

	response.Success(c, gin.H{
		"id":           account.ID,
		"username":     account.Username,
		"display_name": account.DisplayName,
		"is_super":     account.IsSuper,
		"roles":        roles,
		"policies":     policies,
	})
}

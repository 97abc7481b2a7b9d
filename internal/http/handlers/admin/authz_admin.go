package admin

import (
	"net/url"
	"strings"

	handlershared "github.com/huong-next/internal/http/handlers/shared"
	"github.com/huong-next/internal/http/response"
	"github.com/huong-next/internal/logger"
	"github.com/huong-next/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type rolePayload struct {
	Role string `json:"role" binding:"required"`
}

type policyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type setAdminRolesPayload struct {
	Roles []string `json:"roles"`
}

type createAdminPayload struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	IsSuper     *bool  `json:"is_super"`
	Roles       []string `json:"roles"`
}

// ListRoles returns every known role.
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "role list failed", err)
		return
	}
	response.Success(c, roles)
}

// CreateRole registers a role name so policies can be attached to it.
func (h *Handler) CreateRole(c *gin.Context) {
	var req rolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "role invalid", err)
		return
	}
	logger.Infow("authz_role_created", "role", role, "operator_admin_id", operatorAdminID(c))
	response.Success(c, gin.H{"role": role})
}

// DeleteRole removes a role and everything granted through it.
func (h *Handler) DeleteRole(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if role == "" {
		respondError(c, response.CodeBadRequest, "role required", nil)
		return
	}
	if err := h.AuthzService.DeleteRole(role); err != nil {
		respondError(c, response.CodeBadRequest, "role delete failed", err)
		return
	}
	logger.Infow("authz_role_deleted", "role", role, "operator_admin_id", operatorAdminID(c))
	response.Success(c, gin.H{"deleted": true})
}

// GetRolePolicies lists the object/action pairs granted to a role.
func (h *Handler) GetRolePolicies(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if role == "" {
		respondError(c, response.CodeBadRequest, "role required", nil)
		return
	}
	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "policy fetch failed", err)
		return
	}
	response.Success(c, policies)
}

// GrantPolicy attaches an object/action pair to a role.
func (h *Handler) GrantPolicy(c *gin.Context) {
	var req policyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "policy grant failed", err)
		return
	}
	logger.Infow("authz_policy_granted",
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
		"operator_admin_id", operatorAdminID(c),
	)
	response.Success(c, nil)
}

// RevokePolicy detaches an object/action pair from a role.
func (h *Handler) RevokePolicy(c *gin.Context) {
	var req policyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "policy revoke failed", err)
		return
	}
	logger.Infow("authz_policy_revoked",
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
		"operator_admin_id", operatorAdminID(c),
	)
	response.Success(c, nil)
}

// ListAdmins returns admin accounts with their roles.
func (h *Handler) ListAdmins(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	admins, total, err := h.AdminRepo.List(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "admin list failed", err)
		return
	}

	items := make([]gin.H, 0, len(admins))
	for _, account := range admins {
		roles, roleErr := h.AuthzService.GetAdminRoles(account.ID)
		if roleErr != nil {
			respondError(c, response.CodeInternal, "admin list failed", roleErr)
			return
		}
		items = append(items, gin.H{
			"id":            account.ID,
			"username":      account.Username,
			"display_name":  account.DisplayName,
			"is_super":      account.IsSuper,
			"is_active":     account.IsActive,
			"last_login_at": account.LastLoginAt,
			"created_at":    account.CreatedAt,
			"roles":         roles,
		})
	}
	response.SuccessWithPage(c, items, response.NewPagination(page, pageSize, total))
}

// CreateAdmin adds a back-office account, optionally pre-assigning roles.
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req createAdminPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if len(username) < 3 || strings.ContainsAny(username, " \t\r\n") {
		respondError(c, response.CodeBadRequest, "username invalid", nil)
		return
	}
	if len(password) < 8 {
		respondError(c, response.CodeBadRequest, "password too short", nil)
		return
	}

	existing, err := h.AdminRepo.GetByUsername(username)
	if err != nil {
		respondError(c, response.CodeInternal, "admin create failed", err)
		return
	}
	if existing != nil {
		respondError(c, response.CodeConflict, "username already exists", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, response.CodeInternal, "admin create failed", err)
		return
	}

	account := &models.Admin{
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(req.DisplayName),
		IsSuper:      req.IsSuper != nil && *req.IsSuper,
		IsActive:     true,
	}
	if err := h.AdminRepo.Create(account); err != nil {
		respondError(c, response.CodeInternal, "admin create failed", err)
		return
	}
	if len(req.Roles) > 0 {
		if err := h.AuthzService.SetAdminRoles(account.ID, req.Roles); err != nil {
			respondError(c, response.CodeInternal, "role assignment failed", err)
			return
		}
	}

	logger.Infow("authz_admin_created",
		"target_admin_id", account.ID,
		"target_username", account.Username,
		"is_super", account.IsSuper,
		"operator_admin_id", operatorAdminID(c),
	)
	response.Success(c, account)
}

// GetAdminRoles returns the roles bound to one admin.
func (h *Handler) GetAdminRoles(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	account, err := h.AdminRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "role fetch failed", err)
		return
	}
	if account == nil {
		respondError(c, response.CodeNotFound, "admin not found", nil)
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(id)
	if err != nil {
		respondError(c, response.CodeInternal, "role fetch failed", err)
		return
	}
	response.Success(c, roles)
}

// SetAdminRoles replaces the role set bound to one admin.
func (h *Handler) SetAdminRoles(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	account, err := h.AdminRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "role update failed", err)
		return
	}
	if account == nil {
		respondError(c, response.CodeNotFound, "admin not found", nil)
		return
	}

	var req setAdminRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.AuthzService.SetAdminRoles(id, req.Roles); err != nil {
		respondError(c, response.CodeBadRequest, "role update failed", err)
		return
	}

	logger.Infow("authz_admin_roles_updated",
		"target_admin_id", id,
		"roles", req.Roles,
		"operator_admin_id", operatorAdminID(c),
	)
	response.Success(c, nil)
}

func operatorAdminID(c *gin.Context) uint {
	value, exists := c.Get("admin_id")
	if !exists {
		return 0
	}
	if id, ok := value.(uint); ok {
		return id
	}
	return 0
}

func decodeRoleParam(value string) string {
	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(decoded)
}

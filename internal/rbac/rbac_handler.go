package rbac

import (
	"errors"
	"net/http"
	"strings"

	"go-academy/internal/shared/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service Service
	repo    Repository
}

func NewHandler(service Service, repo Repository) *Handler {
	return &Handler{service: service, repo: repo}
}

func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	req.StaffID = strings.TrimSpace(req.StaffID)
	req.TenantID = strings.TrimSpace(req.TenantID)
	req.Resource = strings.TrimSpace(req.Resource)
	req.Action = strings.TrimSpace(req.Action)

	if req.StaffID == "" || req.TenantID == "" || req.Resource == "" || req.Action == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "staff_id, tenant_id, resource, and action are required", nil)
		return
	}

	allowed, err := h.service.Enforce(req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{
		Allowed: allowed,
	}, nil)
}

func (h *Handler) ListRoles(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	roles, err := h.repo.ListRoles(tenantID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}

	res := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		res = append(res, h.toRoleResponse(role))
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) GetRole(c *gin.Context) {
	role, ok := h.findTenantRole(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, h.toRoleResponse(*role), nil)
}

func (h *Handler) CreateRole(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	if existing, err := h.repo.GetRoleByName(tenantID, req.Name); err == nil && existing != nil {
		response.Error(c, http.StatusConflict, "CONFLICT", "Role name already exists", nil)
		return
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}

	role := &RoleRow{
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.repo.CreateRole(role); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	if len(req.Permissions) > 0 {
		if err := h.repo.UpdateRolePermissions(role.ID, req.Permissions); err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
			return
		}
	}

	response.Success(c, http.StatusCreated, h.toRoleResponse(*role), nil)
}

func (h *Handler) UpdateRole(c *gin.Context) {
	role, ok := h.findTenantRole(c)
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	if req.Name != "" {
		role.Name = req.Name
	}
	if req.Description != "" {
		role.Description = req.Description
	}
	if err := h.repo.UpdateRole(role); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	if req.Permissions != nil {
		if err := h.repo.UpdateRolePermissions(role.ID, req.Permissions); err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
			return
		}
	}

	response.Success(c, http.StatusOK, h.toRoleResponse(*role), nil)
}

func (h *Handler) DeleteRole(c *gin.Context) {
	role, ok := h.findTenantRole(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteRole(role.ID); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) ListPermissions(c *gin.Context) {
	perms, err := h.repo.ListPermissions()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}

	res := make([]PermissionResponse, 0, len(perms))
	for _, p := range perms {
		res = append(res, PermissionResponse{
			ID:       p.ID,
			Resource: p.Resource,
			Action:   p.Action,
			Label:    p.Label,
			Category: p.Category,
		})
	}
	response.Success(c, http.StatusOK, res, nil)
}

// findTenantRole loads the role from the path id and rejects roles
// belonging to another tenant.
func (h *Handler) findTenantRole(c *gin.Context) (*RoleRow, bool) {
	tenantID := c.GetString("tenant_id")

	role, err := h.repo.GetRoleByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Role not found", nil)
			return nil, false
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return nil, false
	}
	if role.TenantID != tenantID {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Role not found", nil)
		return nil, false
	}
	return role, true
}

func (h *Handler) toRoleResponse(role RoleRow) RoleResponse {
	permissions := []string{}
	if perms, err := h.repo.GetPermissionsByRoleID(role.ID); err == nil {
		for _, p := range perms {
			permissions = append(permissions, p.ID)
		}
	}
	return RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: permissions,
	}
}

package handler

import (
	appidentity "github.com/garagehub/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RoleHandler handles role management endpoints
type RoleHandler struct {
	BaseHandler
	roleService *appidentity.RoleService
}

// NewRoleHandler creates a new RoleHandler
func NewRoleHandler(roleService *appidentity.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// CreateRoleRequest is the create role payload
type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=superadmin admin manager employee user"`
	Description string `json:"description"`
}

// Create creates a role
func (h *RoleHandler) Create(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid role payload")
		return
	}

	role, err := h.roleService.Create(c.Request.Context(), h.Tenant(c), appidentity.CreateRoleInput{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "Role created successfully", role)
}

// UpdateRoleRequest is the update role payload; omitted fields are kept
type UpdateRoleRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Update updates a role
func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid role payload")
		return
	}

	role, err := h.roleService.Update(c.Request.Context(), h.Tenant(c), appidentity.UpdateRoleInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Role updated successfully", role)
}

// Delete removes a role
func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	if err := h.roleService.Delete(c.Request.Context(), h.Tenant(c), id); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Role deleted successfully", nil)
}

// Get returns one role with its per-page grants
func (h *RoleHandler) Get(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	role, err := h.roleService.Get(c.Request.Context(), h.Tenant(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "", role)
}

// List returns roles matching the query
func (h *RoleHandler) List(c *gin.Context) {
	filter := h.BindFilter(c)
	roles, meta, err := h.roleService.List(c.Request.Context(), h.Tenant(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, "", roles, metaFromIdentity(meta))
}

// PageGrantRequest is one per-page grant in a permission update
type PageGrantRequest struct {
	PageID    uuid.UUID `json:"page_id" binding:"required"`
	CanCreate bool      `json:"create"`
	CanEdit   bool      `json:"edit"`
	CanView   bool      `json:"view"`
	CanDelete bool      `json:"delete"`
}

// UpdateRolePermissionsRequest replaces a role's per-page grants
type UpdateRolePermissionsRequest struct {
	Permissions []PageGrantRequest `json:"permissions" binding:"required"`
}

// UpdatePermissions replaces the role's per-page grants
func (h *RoleHandler) UpdatePermissions(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	var req UpdateRolePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid permissions payload")
		return
	}

	grants := make([]appidentity.PageGrantInput, 0, len(req.Permissions))
	for _, g := range req.Permissions {
		grants = append(grants, appidentity.PageGrantInput{
			PageID:    g.PageID,
			CanCreate: g.CanCreate,
			CanEdit:   g.CanEdit,
			CanView:   g.CanView,
			CanDelete: g.CanDelete,
		})
	}

	role, err := h.roleService.UpdatePermissions(c.Request.Context(), h.Tenant(c), id, grants)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Role permissions updated successfully", role)
}

package handler

import (
	"net/http"

	appidentity "github.com/garagehub/backend/internal/application/identity"
	"github.com/garagehub/backend/internal/domain/identity"
	"github.com/garagehub/backend/internal/interfaces/http/dto"
	"github.com/garagehub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PermissionHandler handles permission record endpoints
type PermissionHandler struct {
	BaseHandler
	permissionService *appidentity.PermissionService
}

// NewPermissionHandler creates a new PermissionHandler
func NewPermissionHandler(permissionService *appidentity.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

// GrantRequest is the grant payload. Omitted capability fields preserve
// whatever an existing record already grants.
type GrantRequest struct {
	UserIDs []uuid.UUID `json:"user_ids" binding:"required,min=1"`
	RoleIDs []uuid.UUID `json:"role_ids" binding:"required,min=1"`
	PageIDs []uuid.UUID `json:"page_ids" binding:"required,min=1"`
	Create  *bool       `json:"create"`
	Edit    *bool       `json:"edit"`
	View    *bool       `json:"view"`
	Delete  *bool       `json:"delete"`
}

// Grant upserts permission records per (user, role, page) combination
func (h *PermissionHandler) Grant(c *gin.Context) {
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid permission payload")
		return
	}

	records, err := h.permissionService.Grant(c.Request.Context(), h.Tenant(c), appidentity.GrantInput{
		UserIDs: req.UserIDs,
		RoleIDs: req.RoleIDs,
		PageIDs: req.PageIDs,
		Create:  req.Create,
		Edit:    req.Edit,
		View:    req.View,
		Delete:  req.Delete,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "Permissions granted successfully", records)
}

// CheckRequest is the permission check payload
type CheckRequest struct {
	PagePath string `json:"page_path" binding:"required"`
	Action   string `json:"action" binding:"required,oneof=create edit view delete"`
}

// CheckResponse reports the outcome of a permission check
type CheckResponse struct {
	Allowed bool `json:"allowed"`
}

// Check evaluates the authenticated user's permission for a page and action
func (h *PermissionHandler) Check(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("UNAUTHORIZED", "Authentication required"))
		return
	}

	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid check payload")
		return
	}

	allowed, err := h.permissionService.Check(c.Request.Context(), h.Tenant(c), appidentity.CheckInput{
		UserID:   userID,
		PagePath: req.PagePath,
		Action:   identity.Action(req.Action),
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "", CheckResponse{Allowed: allowed})
}

// Get returns one permission record
func (h *PermissionHandler) Get(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	record, err := h.permissionService.Get(c.Request.Context(), h.Tenant(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "", record)
}

// List returns permission records matching the query
func (h *PermissionHandler) List(c *gin.Context) {
	filter := h.BindFilter(c)
	records, meta, err := h.permissionService.List(c.Request.Context(), h.Tenant(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, "", records, metaFromIdentity(meta))
}

// Delete removes a permission record
func (h *PermissionHandler) Delete(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	if err := h.permissionService.Delete(c.Request.Context(), h.Tenant(c), id); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Permission record deleted successfully", nil)
}

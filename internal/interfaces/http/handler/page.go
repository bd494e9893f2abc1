package handler

import (
	appidentity "github.com/garagehub/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// PageHandler handles page management endpoints
type PageHandler struct {
	BaseHandler
	pageService *appidentity.PageService
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(pageService *appidentity.PageService) *PageHandler {
	return &PageHandler{pageService: pageService}
}

// CreatePageRequest is the create page payload
type CreatePageRequest struct {
	Name     string `json:"name" binding:"required"`
	Path     string `json:"path" binding:"required"`
	Category string `json:"category"`
}

// Create creates a page
func (h *PageHandler) Create(c *gin.Context) {
	var req CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid page payload")
		return
	}

	page, err := h.pageService.Create(c.Request.Context(), h.Tenant(c), appidentity.CreatePageInput{
		Name:     req.Name,
		Path:     req.Path,
		Category: req.Category,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "Page created successfully", page)
}

// UpdatePageRequest is the update page payload; omitted fields are kept
type UpdatePageRequest struct {
	Name     *string `json:"name"`
	Path     *string `json:"path"`
	Category *string `json:"category"`
	IsActive *bool   `json:"is_active"`
}

// Update updates a page
func (h *PageHandler) Update(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	var req UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid page payload")
		return
	}

	page, err := h.pageService.Update(c.Request.Context(), h.Tenant(c), appidentity.UpdatePageInput{
		ID:       id,
		Name:     req.Name,
		Path:     req.Path,
		Category: req.Category,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Page updated successfully", page)
}

// Delete removes a page
func (h *PageHandler) Delete(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	if err := h.pageService.Delete(c.Request.Context(), h.Tenant(c), id); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Page deleted successfully", nil)
}

// Get returns one page
func (h *PageHandler) Get(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	page, err := h.pageService.Get(c.Request.Context(), h.Tenant(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "", page)
}

// List returns pages matching the query
func (h *PageHandler) List(c *gin.Context) {
	filter := h.BindFilter(c)
	pages, meta, err := h.pageService.List(c.Request.Context(), h.Tenant(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, "", pages, metaFromIdentity(meta))
}

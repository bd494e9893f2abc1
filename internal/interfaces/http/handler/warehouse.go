package handler

import (
	appinventory "github.com/garagehub/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// WarehouseHandler handles warehouse endpoints
type WarehouseHandler struct {
	BaseHandler
	warehouseService *appinventory.WarehouseService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(warehouseService *appinventory.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouseService: warehouseService}
}

// CreateWarehouseRequest is the create warehouse payload. The sequence code
// is assigned server-side.
type CreateWarehouseRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Create creates a warehouse with the next sequence code
func (h *WarehouseHandler) Create(c *gin.Context) {
	var req CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid warehouse payload")
		return
	}

	warehouse, err := h.warehouseService.Create(c.Request.Context(), h.Tenant(c), appinventory.CreateWarehouseInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "Warehouse created successfully", warehouse)
}

// UpdateWarehouseRequest is the update warehouse payload; omitted fields are kept
type UpdateWarehouseRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// Update updates a warehouse
func (h *WarehouseHandler) Update(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	var req UpdateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid warehouse payload")
		return
	}

	warehouse, err := h.warehouseService.Update(c.Request.Context(), h.Tenant(c), appinventory.UpdateWarehouseInput{
		ID:      id,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Warehouse updated successfully", warehouse)
}

// Delete removes a warehouse
func (h *WarehouseHandler) Delete(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	if err := h.warehouseService.Delete(c.Request.Context(), h.Tenant(c), id); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Warehouse deleted successfully", nil)
}

// Get returns one warehouse
func (h *WarehouseHandler) Get(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	warehouse, err := h.warehouseService.Get(c.Request.Context(), h.Tenant(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "", warehouse)
}

// List returns warehouses matching the query
func (h *WarehouseHandler) List(c *gin.Context) {
	filter := h.BindFilter(c)
	warehouses, meta, err := h.warehouseService.List(c.Request.Context(), h.Tenant(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, "", warehouses, metaFromInventory(meta))
}

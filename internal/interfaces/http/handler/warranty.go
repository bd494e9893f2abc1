package handler

import (
	appgarage "github.com/garagehub/backend/internal/application/garage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WarrantyHandler handles warranty plan endpoints
type WarrantyHandler struct {
	BaseHandler
	warrantyService *appgarage.WarrantyService
}

// NewWarrantyHandler creates a new WarrantyHandler
func NewWarrantyHandler(warrantyService *appgarage.WarrantyService) *WarrantyHandler {
	return &WarrantyHandler{warrantyService: warrantyService}
}

// CreateWarrantyRequest is the create warranty payload
type CreateWarrantyRequest struct {
	ProductID      uuid.UUID `json:"product_id" binding:"required"`
	Name           string    `json:"name" binding:"required"`
	DurationMonths int       `json:"duration_months" binding:"required,min=1"`
	Terms          string    `json:"terms"`
}

// Create creates a warranty plan for a product
func (h *WarrantyHandler) Create(c *gin.Context) {
	var req CreateWarrantyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid warranty payload")
		return
	}

	warranty, err := h.warrantyService.Create(c.Request.Context(), h.Tenant(c), appgarage.CreateWarrantyInput{
		ProductID:      req.ProductID,
		Name:           req.Name,
		DurationMonths: req.DurationMonths,
		Terms:          req.Terms,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "Warranty created successfully", warranty)
}

// UpdateWarrantyRequest is the update warranty payload; omitted fields are kept
type UpdateWarrantyRequest struct {
	Name           *string `json:"name"`
	DurationMonths *int    `json:"duration_months" binding:"omitempty,min=1"`
	Terms          *string `json:"terms"`
	Status         *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// Update updates a warranty plan
func (h *WarrantyHandler) Update(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	var req UpdateWarrantyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid warranty payload")
		return
	}

	warranty, err := h.warrantyService.Update(c.Request.Context(), h.Tenant(c), appgarage.UpdateWarrantyInput{
		ID:             id,
		Name:           req.Name,
		DurationMonths: req.DurationMonths,
		Terms:          req.Terms,
		Status:         req.Status,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Warranty updated successfully", warranty)
}

// Delete removes a warranty plan
func (h *WarrantyHandler) Delete(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	if err := h.warrantyService.Delete(c.Request.Context(), h.Tenant(c), id); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Warranty deleted successfully", nil)
}

// Get returns one warranty plan
func (h *WarrantyHandler) Get(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	warranty, err := h.warrantyService.Get(c.Request.Context(), h.Tenant(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "", warranty)
}

// List returns warranty plans matching the query
func (h *WarrantyHandler) List(c *gin.Context) {
	filter := h.BindFilter(c)
	warranties, meta, err := h.warrantyService.List(c.Request.Context(), h.Tenant(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, "", warranties, metaFromGarage(meta))
}

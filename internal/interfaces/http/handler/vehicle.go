package handler

import (
	appgarage "github.com/garagehub/backend/internal/application/garage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VehicleHandler handles vehicle endpoints
type VehicleHandler struct {
	BaseHandler
	vehicleService *appgarage.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler
func NewVehicleHandler(vehicleService *appgarage.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// CreateVehicleRequest is the create vehicle payload
type CreateVehicleRequest struct {
	CustomerID     uuid.UUID `json:"customer_id" binding:"required"`
	RegistrationNo string    `json:"registration_no" binding:"required"`
	Make           string    `json:"make" binding:"required"`
	Model          string    `json:"model" binding:"required"`
	Year           int       `json:"year" binding:"omitempty,min=1900"`
}

// Create registers a vehicle under a customer
func (h *VehicleHandler) Create(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid vehicle payload")
		return
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), h.Tenant(c), appgarage.CreateVehicleInput{
		CustomerID:     req.CustomerID,
		RegistrationNo: req.RegistrationNo,
		Make:           req.Make,
		Model:          req.Model,
		Year:           req.Year,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "Vehicle created successfully", vehicle)
}

// UpdateVehicleRequest is the update vehicle payload; registration number and
// owner are immutable and therefore absent here
type UpdateVehicleRequest struct {
	Make  *string `json:"make"`
	Model *string `json:"model"`
	Year  *int    `json:"year" binding:"omitempty,min=1900"`
}

// Update updates a vehicle
func (h *VehicleHandler) Update(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid vehicle payload")
		return
	}

	vehicle, err := h.vehicleService.Update(c.Request.Context(), h.Tenant(c), appgarage.UpdateVehicleInput{
		ID:    id,
		Make:  req.Make,
		Model: req.Model,
		Year:  req.Year,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Vehicle updated successfully", vehicle)
}

// Delete removes a vehicle
func (h *VehicleHandler) Delete(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	if err := h.vehicleService.Delete(c.Request.Context(), h.Tenant(c), id); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Vehicle deleted successfully", nil)
}

// Get returns one vehicle
func (h *VehicleHandler) Get(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	vehicle, err := h.vehicleService.Get(c.Request.Context(), h.Tenant(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "", vehicle)
}

// List returns vehicles matching the query
func (h *VehicleHandler) List(c *gin.Context) {
	filter := h.BindFilter(c)
	vehicles, meta, err := h.vehicleService.List(c.Request.Context(), h.Tenant(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, "", vehicles, metaFromGarage(meta))
}

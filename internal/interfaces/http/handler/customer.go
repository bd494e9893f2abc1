package handler

import (
	appgarage "github.com/garagehub/backend/internal/application/garage"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *appgarage.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *appgarage.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomerRequest is the create customer payload
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
}

// Create creates a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid customer payload")
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), h.Tenant(c), appgarage.CreateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "Customer created successfully", customer)
}

// UpdateCustomerRequest is the update customer payload; omitted fields are kept
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
}

// Update updates a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid customer payload")
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), h.Tenant(c), appgarage.UpdateCustomerInput{
		ID:      id,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Customer updated successfully", customer)
}

// Delete removes a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	if err := h.customerService.Delete(c.Request.Context(), h.Tenant(c), id); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Customer deleted successfully", nil)
}

// Get returns one customer with their vehicles
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	customer, err := h.customerService.Get(c.Request.Context(), h.Tenant(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "", customer)
}

// List returns customers matching the query
func (h *CustomerHandler) List(c *gin.Context) {
	filter := h.BindFilter(c)
	customers, meta, err := h.customerService.List(c.Request.Context(), h.Tenant(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, "", customers, metaFromGarage(meta))
}

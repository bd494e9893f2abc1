package handler

import (
	appinventory "github.com/garagehub/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product catalogue endpoints
type ProductHandler struct {
	BaseHandler
	productService *appinventory.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *appinventory.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProductRequest is the create product payload
type CreateProductRequest struct {
	SKU       string          `json:"sku" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	Brand     string          `json:"brand"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Create creates a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid product payload")
		return
	}

	product, err := h.productService.Create(c.Request.Context(), h.Tenant(c), appinventory.CreateProductInput{
		SKU:       req.SKU,
		Name:      req.Name,
		Brand:     req.Brand,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "Product created successfully", product)
}

// UpdateProductRequest is the update product payload; omitted fields are kept
type UpdateProductRequest struct {
	Name      *string          `json:"name"`
	Brand     *string          `json:"brand"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// Update updates a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid product payload")
		return
	}

	product, err := h.productService.Update(c.Request.Context(), h.Tenant(c), appinventory.UpdateProductInput{
		ID:        id,
		Name:      req.Name,
		Brand:     req.Brand,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Product updated successfully", product)
}

// Delete removes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), h.Tenant(c), id); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Product deleted successfully", nil)
}

// Get returns one product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	product, err := h.productService.Get(c.Request.Context(), h.Tenant(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "", product)
}

// List returns products matching the query
func (h *ProductHandler) List(c *gin.Context) {
	filter := h.BindFilter(c)
	products, meta, err := h.productService.List(c.Request.Context(), h.Tenant(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, "", products, metaFromInventory(meta))
}

package handler

import (
	"time"

	appfinance "github.com/garagehub/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// IncomeHandler handles income endpoints
type IncomeHandler struct {
	BaseHandler
	incomeService *appfinance.IncomeService
}

// NewIncomeHandler creates a new IncomeHandler
func NewIncomeHandler(incomeService *appfinance.IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// CreateIncomeRequest is the create income payload. Totals are derived
// server-side and ignored if supplied.
type CreateIncomeRequest struct {
	Date                time.Time       `json:"date"`
	PartsIncomeAmount   decimal.Decimal `json:"parts_income_amount"`
	ServiceIncomeAmount decimal.Decimal `json:"service_income_amount"`
	Notes               string          `json:"notes"`
	Items               []ItemRequest   `json:"income_items"`
}

// Create records an income
func (h *IncomeHandler) Create(c *gin.Context) {
	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid income payload")
		return
	}

	income, err := h.incomeService.Create(c.Request.Context(), h.Tenant(c), appfinance.CreateIncomeInput{
		Date:                req.Date,
		PartsIncomeAmount:   req.PartsIncomeAmount,
		ServiceIncomeAmount: req.ServiceIncomeAmount,
		Notes:               req.Notes,
		Items:               toItemInputs(req.Items),
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "Income recorded successfully", income)
}

// UpdateIncomeRequest is the update income payload; omitted fields are kept
type UpdateIncomeRequest struct {
	Date                *time.Time       `json:"date"`
	PartsIncomeAmount   *decimal.Decimal `json:"parts_income_amount"`
	ServiceIncomeAmount *decimal.Decimal `json:"service_income_amount"`
	Notes               *string          `json:"notes"`
	Items               *[]ItemRequest   `json:"income_items"`
}

// Update updates an income
func (h *IncomeHandler) Update(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	var req UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid income payload")
		return
	}

	input := appfinance.UpdateIncomeInput{
		ID:                  id,
		Date:                req.Date,
		PartsIncomeAmount:   req.PartsIncomeAmount,
		ServiceIncomeAmount: req.ServiceIncomeAmount,
		Notes:               req.Notes,
	}
	if req.Items != nil {
		items := toItemInputs(*req.Items)
		input.Items = &items
	}

	income, err := h.incomeService.Update(c.Request.Context(), h.Tenant(c), input)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Income updated successfully", income)
}

// Delete removes an income and its items
func (h *IncomeHandler) Delete(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	if err := h.incomeService.Delete(c.Request.Context(), h.Tenant(c), id); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Income deleted successfully", nil)
}

// Get returns one income with its items
func (h *IncomeHandler) Get(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	income, err := h.incomeService.Get(c.Request.Context(), h.Tenant(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "", income)
}

// List returns incomes matching the query
func (h *IncomeHandler) List(c *gin.Context) {
	filter := h.BindFilter(c)
	incomes, meta, err := h.incomeService.List(c.Request.Context(), h.Tenant(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, "", incomes, metaFromFinance(meta))
}

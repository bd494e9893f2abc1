package handler

import (
	"time"

	appfinance "github.com/garagehub/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategoryHandler handles expense category endpoints
type ExpenseCategoryHandler struct {
	BaseHandler
	categoryService *appfinance.ExpenseCategoryService
}

// NewExpenseCategoryHandler creates a new ExpenseCategoryHandler
func NewExpenseCategoryHandler(categoryService *appfinance.ExpenseCategoryService) *ExpenseCategoryHandler {
	return &ExpenseCategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest is the create category payload
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// Create creates an expense category
func (h *ExpenseCategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid category payload")
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), h.Tenant(c), appfinance.CreateCategoryInput{
		Name: req.Name,
		Code: req.Code,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "Category created successfully", category)
}

// UpdateCategoryRequest is the update category payload; omitted fields are kept
type UpdateCategoryRequest struct {
	Name *string `json:"name"`
	Code *string `json:"code"`
}

// Update updates an expense category
func (h *ExpenseCategoryHandler) Update(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid category payload")
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), h.Tenant(c), appfinance.UpdateCategoryInput{
		ID:   id,
		Name: req.Name,
		Code: req.Code,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Category updated successfully", category)
}

// Delete removes an expense category
func (h *ExpenseCategoryHandler) Delete(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	if err := h.categoryService.Delete(c.Request.Context(), h.Tenant(c), id); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Category deleted successfully", nil)
}

// Get returns one expense category
func (h *ExpenseCategoryHandler) Get(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	category, err := h.categoryService.Get(c.Request.Context(), h.Tenant(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "", category)
}

// List returns expense categories matching the query
func (h *ExpenseCategoryHandler) List(c *gin.Context) {
	filter := h.BindFilter(c)
	categories, meta, err := h.categoryService.List(c.Request.Context(), h.Tenant(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, "", categories, metaFromFinance(meta))
}

// ExpenseHandler handles expense endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *appfinance.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *appfinance.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ItemRequest is one line item in expense/income payloads
type ItemRequest struct {
	Name   string          `json:"name" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

func toItemInputs(items []ItemRequest) []appfinance.ItemInput {
	out := make([]appfinance.ItemInput, 0, len(items))
	for _, item := range items {
		out = append(out, appfinance.ItemInput{Name: item.Name, Amount: item.Amount})
	}
	return out
}

// CreateExpenseRequest is the create expense payload. Totals are derived
// server-side and ignored if supplied.
type CreateExpenseRequest struct {
	CategoryID  uuid.UUID       `json:"category_id" binding:"required"`
	Date        time.Time       `json:"date"`
	InvoiceCost decimal.Decimal `json:"invoice_cost"`
	Notes       string          `json:"notes"`
	Items       []ItemRequest   `json:"expense_items"`
}

// Create records an expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid expense payload")
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), h.Tenant(c), appfinance.CreateExpenseInput{
		CategoryID:  req.CategoryID,
		Date:        req.Date,
		InvoiceCost: req.InvoiceCost,
		Notes:       req.Notes,
		Items:       toItemInputs(req.Items),
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "Expense recorded successfully", expense)
}

// UpdateExpenseRequest is the update expense payload; omitted fields are kept
type UpdateExpenseRequest struct {
	CategoryID  *uuid.UUID       `json:"category_id"`
	Date        *time.Time       `json:"date"`
	InvoiceCost *decimal.Decimal `json:"invoice_cost"`
	Notes       *string          `json:"notes"`
	Items       *[]ItemRequest   `json:"expense_items"`
}

// Update updates an expense
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid expense payload")
		return
	}

	input := appfinance.UpdateExpenseInput{
		ID:          id,
		CategoryID:  req.CategoryID,
		Date:        req.Date,
		InvoiceCost: req.InvoiceCost,
		Notes:       req.Notes,
	}
	if req.Items != nil {
		items := toItemInputs(*req.Items)
		input.Items = &items
	}

	expense, err := h.expenseService.Update(c.Request.Context(), h.Tenant(c), input)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Expense updated successfully", expense)
}

// Delete removes an expense and its items
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	if err := h.expenseService.Delete(c.Request.Context(), h.Tenant(c), id); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Expense deleted successfully", nil)
}

// Get returns one expense with its items
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	expense, err := h.expenseService.Get(c.Request.Context(), h.Tenant(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "", expense)
}

// List returns expenses matching the query
func (h *ExpenseHandler) List(c *gin.Context) {
	filter := h.BindFilter(c)
	expenses, meta, err := h.expenseService.List(c.Request.Context(), h.Tenant(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, "", expenses, metaFromFinance(meta))
}

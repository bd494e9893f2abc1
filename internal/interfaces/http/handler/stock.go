package handler

import (
	appinventory "github.com/garagehub/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockHandler handles stock ledger and transfer endpoints
type StockHandler struct {
	BaseHandler
	stockService *appinventory.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *appinventory.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// MovementRequest is the stock-in/stock-out payload
type MovementRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	WarehouseID uuid.UUID       `json:"warehouse_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Reference   string          `json:"reference"`
	Note        string          `json:"note"`
}

func (r MovementRequest) toInput() appinventory.MovementInput {
	return appinventory.MovementInput{
		ProductID:   r.ProductID,
		WarehouseID: r.WarehouseID,
		Quantity:    r.Quantity,
		Reference:   r.Reference,
		Note:        r.Note,
	}
}

// Receive records a stock-in entry
func (h *StockHandler) Receive(c *gin.Context) {
	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid stock movement payload")
		return
	}

	entry, err := h.stockService.Receive(c.Request.Context(), h.Tenant(c), req.toInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "Stock received successfully", entry)
}

// Issue records a stock-out entry
func (h *StockHandler) Issue(c *gin.Context) {
	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid stock movement payload")
		return
	}

	entry, err := h.stockService.Issue(c.Request.Context(), h.Tenant(c), req.toInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "Stock issued successfully", entry)
}

// TransferRequest is the warehouse-to-warehouse transfer payload
type TransferRequest struct {
	ProductID         uuid.UUID       `json:"product_id" binding:"required"`
	SourceWarehouseID uuid.UUID       `json:"source_warehouse_id" binding:"required"`
	DestWarehouseID   uuid.UUID       `json:"dest_warehouse_id" binding:"required"`
	Quantity          decimal.Decimal `json:"quantity" binding:"required"`
	Note              string          `json:"note"`
}

// Transfer moves stock between warehouses atomically
func (h *StockHandler) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid transfer payload")
		return
	}

	transfer, err := h.stockService.Transfer(c.Request.Context(), h.Tenant(c), appinventory.TransferInput{
		ProductID:         req.ProductID,
		SourceWarehouseID: req.SourceWarehouseID,
		DestWarehouseID:   req.DestWarehouseID,
		Quantity:          req.Quantity,
		Note:              req.Note,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "Stock transferred successfully", transfer)
}

// DeleteTransfer reverses a transfer
func (h *StockHandler) DeleteTransfer(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	if err := h.stockService.DeleteTransfer(c.Request.Context(), h.Tenant(c), id); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Transfer reversed successfully", nil)
}

// Level reports current stock of a product, per warehouse or overall
func (h *StockHandler) Level(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	var warehouseID *uuid.UUID
	if raw := c.Query("warehouse_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid warehouse ID")
			return
		}
		warehouseID = &parsed
	}

	level, err := h.stockService.Level(c.Request.Context(), h.Tenant(c), id, warehouseID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "", level)
}

// ListTransactions returns ledger entries matching the query
func (h *StockHandler) ListTransactions(c *gin.Context) {
	filter := h.BindFilter(c)
	entries, meta, err := h.stockService.ListTransactions(c.Request.Context(), h.Tenant(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, "", entries, metaFromInventory(meta))
}

// ListTransfers returns transfers matching the query
func (h *StockHandler) ListTransfers(c *gin.Context) {
	filter := h.BindFilter(c)
	transfers, meta, err := h.stockService.ListTransfers(c.Request.Context(), h.Tenant(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, "", transfers, metaFromInventory(meta))
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"printledger/internal/domain/ledgers/stockledger"
	"printledger/internal/infrastructure/http/v1/dto"
)

// StockLedgerHandler serves the daily stock sheets.
type StockLedgerHandler struct {
	*BaseHandler
	service *stockledger.Service
}

// NewStockLedgerHandler creates the stock ledger handler.
func NewStockLedgerHandler(base *BaseHandler, service *stockledger.Service) *StockLedgerHandler {
	return &StockLedgerHandler{BaseHandler: base, service: service}
}

// Record handles POST /ledgers/stock.
func (h *StockLedgerHandler) Record(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RecordStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	branchID, ok := h.BranchScope(c, req.BranchID)
	if !ok {
		return
	}
	date, ok := h.ParseDate(c, req.Date)
	if !ok {
		return
	}
	rows, err := dto.ToStockRows(req.Rows)
	if err != nil {
		h.Error(c, err)
		return
	}

	entry, err := h.service.Record(ctx, branchID, date, rows)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// Prefill handles GET /ledgers/stock/prefill?date=&branch=. Opening
// counts carry forward from the previous recorded day's closings.
func (h *StockLedgerHandler) Prefill(c *gin.Context) {
	ctx := c.Request.Context()

	branchID, ok := h.BranchScope(c, c.Query("branch"))
	if !ok {
		return
	}
	date, ok := h.ParseDate(c, c.Query("date"))
	if !ok {
		return
	}

	rows, err := h.service.PrefillForDate(ctx, branchID, date)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": rows})
}

// ListByDay handles GET /ledgers/stock?date=&branch=.
func (h *StockLedgerHandler) ListByDay(c *gin.Context) {
	ctx := c.Request.Context()

	branchID, ok := h.BranchScope(c, c.Query("branch"))
	if !ok {
		return
	}
	date, ok := h.ParseDate(c, c.Query("date"))
	if !ok {
		return
	}

	entries, err := h.service.ListByDay(ctx, branchID, date)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": entries, "totalCount": len(entries)})
}

// Get handles GET /ledgers/stock/:id.
func (h *StockLedgerHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	entryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	entry, err := h.service.GetByID(ctx, entryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if _, ok := h.BranchScope(c, entry.BranchID.String()); !ok {
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Update handles PUT /ledgers/stock/:id.
func (h *StockLedgerHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	entryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(ctx, entryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	branchID, ok := h.BranchScope(c, existing.BranchID.String())
	if !ok {
		return
	}

	rows, err := dto.ToStockRows(req.Rows)
	if err != nil {
		h.Error(c, err)
		return
	}

	entry, err := h.service.Update(ctx, branchID, entryID, req.Version, rows)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

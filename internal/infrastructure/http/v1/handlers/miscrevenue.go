package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"printledger/internal/domain/ledgers/miscrevenue"
	"printledger/internal/infrastructure/http/v1/dto"
)

// MiscRevenueHandler serves the labelled side-revenue sheets.
type MiscRevenueHandler struct {
	*BaseHandler
	service *miscrevenue.Service
}

// NewMiscRevenueHandler creates the revenue ledger handler.
func NewMiscRevenueHandler(base *BaseHandler, service *miscrevenue.Service) *MiscRevenueHandler {
	return &MiscRevenueHandler{BaseHandler: base, service: service}
}

// Record handles POST /ledgers/revenue.
func (h *MiscRevenueHandler) Record(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RecordRevenueRequest
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

	entry, err := h.service.Record(ctx, branchID, date, dto.ToRevenueLines(req.Rows))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// Template handles GET /ledgers/revenue/template - the customary
// line labels a fresh sheet starts from.
func (h *MiscRevenueHandler) Template(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rows": h.service.Template()})
}

// ListByDay handles GET /ledgers/revenue?date=&branch=.
func (h *MiscRevenueHandler) ListByDay(c *gin.Context) {
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

// Get handles GET /ledgers/revenue/:id.
func (h *MiscRevenueHandler) Get(c *gin.Context) {
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

// Update handles PUT /ledgers/revenue/:id.
func (h *MiscRevenueHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	entryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRevenueRequest
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

	entry, err := h.service.Update(ctx, branchID, entryID, req.Version, dto.ToRevenueLines(req.Rows))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"printledger/internal/domain/ledgers/jumbo"
	"printledger/internal/infrastructure/http/v1/dto"
)

// JumboHandler serves the wide-format job sheets.
type JumboHandler struct {
	*BaseHandler
	service *jumbo.Service
}

// NewJumboHandler creates the jumbo ledger handler.
func NewJumboHandler(base *BaseHandler, service *jumbo.Service) *JumboHandler {
	return &JumboHandler{BaseHandler: base, service: service}
}

// Record handles POST /ledgers/jumbo.
func (h *JumboHandler) Record(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RecordJumboRequest
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

	entry, err := h.service.Record(ctx, branchID, date, dto.ToJumboInput(req.Rows, req.CounterStart, req.CounterEnd))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListByDay handles GET /ledgers/jumbo?date=&branch=.
func (h *JumboHandler) ListByDay(c *gin.Context) {
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

// Get handles GET /ledgers/jumbo/:id.
func (h *JumboHandler) Get(c *gin.Context) {
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

// Update handles PUT /ledgers/jumbo/:id.
func (h *JumboHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	entryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateJumboRequest
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

	entry, err := h.service.Update(ctx, branchID, entryID, req.Version, dto.ToJumboInput(req.Rows, req.CounterStart, req.CounterEnd))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

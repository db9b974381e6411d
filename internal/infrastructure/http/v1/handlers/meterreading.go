package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"printledger/internal/domain/ledgers/meterreading"
	"printledger/internal/infrastructure/http/v1/dto"
)

// MeterReadingHandler serves the per-device counter ledger.
type MeterReadingHandler struct {
	*BaseHandler
	service *meterreading.Service
}

// NewMeterReadingHandler creates the meter reading handler.
func NewMeterReadingHandler(base *BaseHandler, service *meterreading.Service) *MeterReadingHandler {
	return &MeterReadingHandler{BaseHandler: base, service: service}
}

// Record handles POST /ledgers/meter-readings.
func (h *MeterReadingHandler) Record(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RecordMeterReadingRequest
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
	input, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	reading, err := h.service.Record(ctx, branchID, date, input)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, reading)
}

// Prefill handles GET /ledgers/meter-readings/prefill?date=&branch=.
// It returns each active device with its carried-forward starting
// counters so the form opens pre-populated.
func (h *MeterReadingHandler) Prefill(c *gin.Context) {
	ctx := c.Request.Context()

	branchID, ok := h.BranchScope(c, c.Query("branch"))
	if !ok {
		return
	}
	date, ok := h.ParseDate(c, c.Query("date"))
	if !ok {
		return
	}

	prefills, err := h.service.PrefillForDate(ctx, branchID, date)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": prefills})
}

// ListByDay handles GET /ledgers/meter-readings?date=&branch=.
func (h *MeterReadingHandler) ListByDay(c *gin.Context) {
	ctx := c.Request.Context()

	branchID, ok := h.BranchScope(c, c.Query("branch"))
	if !ok {
		return
	}
	date, ok := h.ParseDate(c, c.Query("date"))
	if !ok {
		return
	}

	readings, err := h.service.ListByDay(ctx, branchID, date)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": readings, "totalCount": len(readings)})
}

// Get handles GET /ledgers/meter-readings/:id.
func (h *MeterReadingHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	readingID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	reading, err := h.service.GetByID(ctx, readingID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if _, ok := h.BranchScope(c, reading.BranchID.String()); !ok {
		return
	}

	c.JSON(http.StatusOK, reading)
}

// ApplyEdits handles PUT /ledgers/meter-readings/edits. Each edit is
// applied on its own; one failed correction does not block the rest.
func (h *MeterReadingHandler) ApplyEdits(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.MeterEditsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	branchID, ok := h.BranchScope(c, req.BranchID)
	if !ok {
		return
	}
	edits, err := req.ToEdits()
	if err != nil {
		h.Error(c, err)
		return
	}

	results := h.service.ApplyEdits(ctx, branchID, edits)
	c.JSON(http.StatusOK, gin.H{"results": dto.FromEditResults(results)})
}

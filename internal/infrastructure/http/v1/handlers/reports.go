package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"printledger/internal/domain/reports"
)

// ReportsHandler serves the day reconciliation and range summaries.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates the reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// Day handles GET /reports/day?branch=&date=.
func (h *ReportsHandler) Day(c *gin.Context) {
	ctx := c.Request.Context()

	branchID, ok := h.BranchScope(c, c.Query("branch"))
	if !ok {
		return
	}
	date, ok := h.ParseDate(c, c.Query("date"))
	if !ok {
		return
	}

	summary, err := h.service.AggregateDay(ctx, reports.DayReportFilter{BranchID: branchID, Date: date})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Range handles GET /reports/range?branch=&from=&to=.
func (h *ReportsHandler) Range(c *gin.Context) {
	ctx := c.Request.Context()

	branchID, ok := h.BranchScope(c, c.Query("branch"))
	if !ok {
		return
	}
	from, ok := h.ParseDate(c, c.Query("from"))
	if !ok {
		return
	}
	to, ok := h.ParseDate(c, c.Query("to"))
	if !ok {
		return
	}

	summary, err := h.service.AggregateRange(ctx, reports.RangeReportFilter{BranchID: branchID, From: from, To: to})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ExportDay handles GET /reports/day/export?branch=&date=. The
// workbook is buffered so a failed aggregation still returns JSON
// instead of a truncated attachment.
func (h *ReportsHandler) ExportDay(c *gin.Context) {
	ctx := c.Request.Context()

	branchID, ok := h.BranchScope(c, c.Query("branch"))
	if !ok {
		return
	}
	date, ok := h.ParseDate(c, c.Query("date"))
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportDay(ctx, reports.DayReportFilter{BranchID: branchID, Date: date}, &buf); err != nil {
		h.Error(c, err)
		return
	}

	filename := fmt.Sprintf("day-report-%s.xlsx", date.String())
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

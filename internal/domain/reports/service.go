package reports

import (
	"context"
	"fmt"
	"io"
	"sort"

	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/core/types"
)

// Service assembles reconciliation reports from ledger aggregates.
type Service struct {
	repo     Repository
	readings ReadingSource
}

// NewService creates a new reports service.
func NewService(repo Repository, readings ReadingSource) *Service {
	return &Service{repo: repo, readings: readings}
}

// AggregateDay builds the reconciliation view for one branch-day.
// A day with no entries yields a fully zeroed summary, not an error.
func (s *Service) AggregateDay(ctx context.Context, filter DayReportFilter) (*DaySummary, error) {
	if id.IsNil(filter.BranchID) {
		return nil, apperror.NewValidation("branch is required")
	}
	if filter.Date.IsZero() {
		return nil, apperror.NewValidation("date is required")
	}

	summary := &DaySummary{
		BranchID:      filter.BranchID,
		Date:          filter.Date,
		Printers:      []PrinterTotal{},
		PrinterAmount: types.Zero(),
		StockItems:    []StockItemTotal{},
		StockAmount:   types.Zero(),
		Jumbo:         JumboTotal{Amount: types.Zero(), PrintedLength: types.Zero()},
		RevenueLines:  []RevenueLine{},
		TotalRevenue:  types.Zero(),
	}

	printers, err := s.repo.DayPrinterTotals(ctx, filter.BranchID, filter.Date)
	if err != nil {
		return nil, fmt.Errorf("day printer totals: %w", err)
	}
	for _, p := range printers {
		summary.PrinterCopies += p.Copies
		summary.PrinterAmount = summary.PrinterAmount.Add(p.Amount)
	}
	if len(printers) > 0 {
		summary.Printers = printers
	}

	stock, err := s.repo.DayStockTotals(ctx, filter.BranchID, filter.Date)
	if err != nil {
		return nil, fmt.Errorf("day stock totals: %w", err)
	}
	for _, it := range stock {
		summary.StockAmount = summary.StockAmount.Add(it.Amount)
	}
	if len(stock) > 0 {
		summary.StockItems = stock
	}

	jumbo, err := s.repo.DayJumboTotal(ctx, filter.BranchID, filter.Date)
	if err != nil {
		return nil, fmt.Errorf("day jumbo total: %w", err)
	}
	summary.Jumbo = jumbo

	lines, total, err := s.repo.DayRevenueLines(ctx, filter.BranchID, filter.Date)
	if err != nil {
		return nil, fmt.Errorf("day revenue lines: %w", err)
	}
	if len(lines) > 0 {
		summary.RevenueLines = lines
	}
	summary.TotalRevenue = total

	return summary, nil
}

// AggregateRange builds the per-day rollup and the per-device meter
// series for an inclusive date range.
func (s *Service) AggregateRange(ctx context.Context, filter RangeReportFilter) (*RangeSummary, error) {
	if id.IsNil(filter.BranchID) {
		return nil, apperror.NewValidation("branch is required")
	}
	if filter.From.IsZero() || filter.To.IsZero() {
		return nil, apperror.NewValidation("from and to dates are required")
	}
	if filter.To.Before(filter.From) {
		return nil, apperror.NewValidation("to date must not be before from date")
	}

	points, err := s.repo.RangeSeries(ctx, filter.BranchID, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("range series: %w", err)
	}

	summary := &RangeSummary{
		BranchID:      filter.BranchID,
		From:          filter.From,
		To:            filter.To,
		Points:        []SeriesPoint{},
		Devices:       []DeviceSeries{},
		PrinterAmount: types.Zero(),
		StockAmount:   types.Zero(),
		JumboAmount:   types.Zero(),
		TotalRevenue:  types.Zero(),
	}
	if len(points) > 0 {
		summary.Points = points
	}
	for _, p := range points {
		summary.Copies += p.Copies
		summary.PrinterAmount = summary.PrinterAmount.Add(p.PrinterAmount)
		summary.StockAmount = summary.StockAmount.Add(p.StockAmount)
		summary.JumboAmount = summary.JumboAmount.Add(p.JumboAmount)
		summary.TotalRevenue = summary.TotalRevenue.Add(p.TotalRevenue)
	}

	devices, err := s.deviceSeries(ctx, filter)
	if err != nil {
		return nil, err
	}
	summary.Devices = devices

	return summary, nil
}

// deviceSeries groups the range's meter readings into one series per
// printer. Readings arrive date-ascending, so each series stays sorted;
// the series themselves are ordered by printer name.
func (s *Service) deviceSeries(ctx context.Context, filter RangeReportFilter) ([]DeviceSeries, error) {
	readings, err := s.readings.ListByRange(ctx, filter.BranchID, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("range readings: %w", err)
	}

	byDevice := make(map[id.ID]int)
	devices := []DeviceSeries{}
	for _, r := range readings {
		idx, ok := byDevice[r.PrinterID]
		if !ok {
			idx = len(devices)
			byDevice[r.PrinterID] = idx
			devices = append(devices, DeviceSeries{
				PrinterID:   r.PrinterID,
				PrinterName: r.PrinterName,
				Points:      []DevicePoint{},
			})
		}
		devices[idx].Points = append(devices[idx].Points, DevicePoint{
			Date:   r.Date,
			Copies: r.TotalCopies,
			Amount: r.TotalAmount,
		})
	}

	sort.Slice(devices, func(i, j int) bool {
		return devices[i].PrinterName < devices[j].PrinterName
	})
	return devices, nil
}

// ExportDay writes the day summary as an xlsx workbook to w.
func (s *Service) ExportDay(ctx context.Context, filter DayReportFilter, w io.Writer) error {
	summary, err := s.AggregateDay(ctx, filter)
	if err != nil {
		return err
	}
	return writeDayWorkbook(summary, w)
}

package reports

import (
	"context"

	"printledger/internal/core/id"
	"printledger/internal/core/types"
	"printledger/internal/domain/ledgers/meterreading"
)

// ReadingSource supplies the raw meter readings behind the per-device
// range series. Satisfied by the meter-reading service.
type ReadingSource interface {
	ListByRange(ctx context.Context, branchID id.ID, from, to types.Date) ([]*meterreading.MeterReading, error)
}

// Repository defines report data access. Implementations aggregate in
// SQL; the service only assembles and validates.
type Repository interface {
	// Day sections. Each returns an empty slice (or zero struct) when
	// nothing was recorded for the branch-day.
	DayPrinterTotals(ctx context.Context, branchID id.ID, date types.Date) ([]PrinterTotal, error)
	DayStockTotals(ctx context.Context, branchID id.ID, date types.Date) ([]StockItemTotal, error)
	DayJumboTotal(ctx context.Context, branchID id.ID, date types.Date) (JumboTotal, error)
	DayRevenueLines(ctx context.Context, branchID id.ID, date types.Date) ([]RevenueLine, types.Money, error)

	// RangeSeries returns one point per day with activity, ordered by
	// date ascending.
	RangeSeries(ctx context.Context, branchID id.ID, from, to types.Date) ([]SeriesPoint, error)
}

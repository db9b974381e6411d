package reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/core/types"
	"printledger/internal/domain/ledgers/meterreading"
)

type mockReportRepo struct {
	printers []PrinterTotal
	stock    []StockItemTotal
	jumbo    JumboTotal
	lines    []RevenueLine
	total    types.Money
	series   []SeriesPoint
}

func (m *mockReportRepo) DayPrinterTotals(ctx context.Context, branchID id.ID, date types.Date) ([]PrinterTotal, error) {
	return m.printers, nil
}

func (m *mockReportRepo) DayStockTotals(ctx context.Context, branchID id.ID, date types.Date) ([]StockItemTotal, error) {
	return m.stock, nil
}

func (m *mockReportRepo) DayJumboTotal(ctx context.Context, branchID id.ID, date types.Date) (JumboTotal, error) {
	return m.jumbo, nil
}

func (m *mockReportRepo) DayRevenueLines(ctx context.Context, branchID id.ID, date types.Date) ([]RevenueLine, types.Money, error) {
	return m.lines, m.total, nil
}

func (m *mockReportRepo) RangeSeries(ctx context.Context, branchID id.ID, from, to types.Date) ([]SeriesPoint, error) {
	return m.series, nil
}

type mockReadingSource struct {
	readings []*meterreading.MeterReading
}

func (m *mockReadingSource) ListByRange(ctx context.Context, branchID id.ID, from, to types.Date) ([]*meterreading.MeterReading, error) {
	return m.readings, nil
}

func rangeReading(date string, printerID id.ID, name string, copies int64, amount string) *meterreading.MeterReading {
	r := &meterreading.MeterReading{
		PrinterID:   printerID,
		PrinterName: name,
		TotalCopies: copies,
		TotalAmount: types.MustMoney(amount),
	}
	r.Date = types.MustDate(date)
	return r
}

func TestAggregateDay_EmptyDayIsZeroedNotNil(t *testing.T) {
	repo := &mockReportRepo{
		jumbo: JumboTotal{Amount: types.Zero(), PrintedLength: types.Zero()},
		total: types.Zero(),
	}
	svc := NewService(repo, &mockReadingSource{})

	summary, err := svc.AggregateDay(context.Background(), DayReportFilter{
		BranchID: id.New(),
		Date:     types.MustDate("2026-08-15"),
	})
	require.NoError(t, err)

	assert.NotNil(t, summary.Printers)
	assert.Empty(t, summary.Printers)
	assert.NotNil(t, summary.StockItems)
	assert.NotNil(t, summary.RevenueLines)
	assert.True(t, summary.PrinterAmount.IsZero())
	assert.True(t, summary.TotalRevenue.IsZero())
}

func TestAggregateDay_SumsSections(t *testing.T) {
	repo := &mockReportRepo{
		printers: []PrinterTotal{
			{PrinterName: "Xerox", Copies: 180, Amount: types.MustMoney("810")},
			{PrinterName: "Canon", Copies: 90, Amount: types.MustMoney("320")},
		},
		stock: []StockItemTotal{
			{ItemName: "CD-R", Sold: 4, Amount: types.MustMoney("100")},
		},
		jumbo: JumboTotal{Qty: 5, Amount: types.MustMoney("390"), PrintedLength: types.MustMoney("99.75")},
		lines: []RevenueLine{
			{Label: "Stocks", Amount: types.MustMoney("100")},
			{Label: "Total Business", Amount: types.MustMoney("1620")},
		},
		total: types.MustMoney("1720"),
	}
	svc := NewService(repo, &mockReadingSource{})

	summary, err := svc.AggregateDay(context.Background(), DayReportFilter{
		BranchID: id.New(),
		Date:     types.MustDate("2026-08-15"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(270), summary.PrinterCopies)
	assert.True(t, summary.PrinterAmount.Equal(types.MustMoney("1130")))
	assert.True(t, summary.StockAmount.Equal(types.MustMoney("100")))
	assert.Equal(t, int64(5), summary.Jumbo.Qty)
	// the revenue ledger figure is authoritative, not a re-sum
	assert.True(t, summary.TotalRevenue.Equal(types.MustMoney("1720")))
}

func TestAggregateDay_RequiresBranchAndDate(t *testing.T) {
	svc := NewService(&mockReportRepo{}, &mockReadingSource{})

	_, err := svc.AggregateDay(context.Background(), DayReportFilter{Date: types.MustDate("2026-08-15")})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	_, err = svc.AggregateDay(context.Background(), DayReportFilter{BranchID: id.New()})
	assert.Error(t, err)
}

func TestAggregateRange_ValidatesOrder(t *testing.T) {
	svc := NewService(&mockReportRepo{}, &mockReadingSource{})

	_, err := svc.AggregateRange(context.Background(), RangeReportFilter{
		BranchID: id.New(),
		From:     types.MustDate("2026-08-15"),
		To:       types.MustDate("2026-08-10"),
	})
	require.Error(t, err)
}

func TestAggregateRange_SumsGrandTotals(t *testing.T) {
	repo := &mockReportRepo{
		series: []SeriesPoint{
			{Date: types.MustDate("2026-08-14"), Copies: 100, PrinterAmount: types.MustMoney("500"), StockAmount: types.MustMoney("50"), JumboAmount: types.MustMoney("0"), TotalRevenue: types.MustMoney("600")},
			{Date: types.MustDate("2026-08-15"), Copies: 180, PrinterAmount: types.MustMoney("810"), StockAmount: types.MustMoney("100"), JumboAmount: types.MustMoney("390"), TotalRevenue: types.MustMoney("1720")},
		},
	}
	svc := NewService(repo, &mockReadingSource{})

	summary, err := svc.AggregateRange(context.Background(), RangeReportFilter{
		BranchID: id.New(),
		From:     types.MustDate("2026-08-14"),
		To:       types.MustDate("2026-08-15"),
	})
	require.NoError(t, err)

	require.Len(t, summary.Points, 2)
	assert.Equal(t, int64(280), summary.Copies)
	assert.True(t, summary.PrinterAmount.Equal(types.MustMoney("1310")))
	assert.True(t, summary.StockAmount.Equal(types.MustMoney("150")))
	assert.True(t, summary.JumboAmount.Equal(types.MustMoney("390")))
	assert.True(t, summary.TotalRevenue.Equal(types.MustMoney("2320")))
}

func TestExportDay_WritesWorkbook(t *testing.T) {
	repo := &mockReportRepo{
		printers: []PrinterTotal{{PrinterName: "Xerox", Copies: 180, Amount: types.MustMoney("810")}},
		jumbo:    JumboTotal{Amount: types.Zero(), PrintedLength: types.Zero()},
		total:    types.MustMoney("810"),
	}
	svc := NewService(repo, &mockReadingSource{})

	var buf testBuffer
	err := svc.ExportDay(context.Background(), DayReportFilter{
		BranchID: id.New(),
		Date:     types.MustDate("2026-08-15"),
	}, &buf)
	require.NoError(t, err)
	// xlsx files are zip archives
	require.Greater(t, buf.n, 4)
	assert.Equal(t, byte('P'), buf.head[0])
	assert.Equal(t, byte('K'), buf.head[1])
}

type testBuffer struct {
	head [4]byte
	n    int
}

func (b *testBuffer) Write(p []byte) (int, error) {
	for _, c := range p {
		if b.n < len(b.head) {
			b.head[b.n] = c
		}
		b.n++
	}
	return len(p), nil
}

func TestAggregateRange_PerDeviceSeries(t *testing.T) {
	xerox := id.New()
	canon := id.New()
	readings := &mockReadingSource{readings: []*meterreading.MeterReading{
		// repository order: date ascending, then printer name
		rangeReading("2026-08-14", canon, "Canon", 90, "320"),
		rangeReading("2026-08-14", xerox, "Xerox", 100, "500"),
		rangeReading("2026-08-15", xerox, "Xerox", 180, "810"),
	}}
	svc := NewService(&mockReportRepo{}, readings)

	summary, err := svc.AggregateRange(context.Background(), RangeReportFilter{
		BranchID: id.New(),
		From:     types.MustDate("2026-08-14"),
		To:       types.MustDate("2026-08-15"),
	})
	require.NoError(t, err)

	require.Len(t, summary.Devices, 2)
	assert.Equal(t, "Canon", summary.Devices[0].PrinterName)
	assert.Equal(t, canon, summary.Devices[0].PrinterID)
	require.Len(t, summary.Devices[0].Points, 1)

	// same-day readings from two devices stay separate series
	series := summary.Devices[1]
	assert.Equal(t, xerox, series.PrinterID)
	require.Len(t, series.Points, 2)
	assert.Equal(t, types.MustDate("2026-08-14"), series.Points[0].Date)
	assert.Equal(t, int64(100), series.Points[0].Copies)
	assert.Equal(t, types.MustDate("2026-08-15"), series.Points[1].Date)
	assert.Equal(t, int64(180), series.Points[1].Copies)
	assert.True(t, series.Points[1].Amount.Equal(types.MustMoney("810")))
}

func TestAggregateRange_NoReadingsYieldsEmptyDeviceList(t *testing.T) {
	svc := NewService(&mockReportRepo{}, &mockReadingSource{})

	summary, err := svc.AggregateRange(context.Background(), RangeReportFilter{
		BranchID: id.New(),
		From:     types.MustDate("2026-08-14"),
		To:       types.MustDate("2026-08-15"),
	})
	require.NoError(t, err)
	assert.NotNil(t, summary.Devices)
	assert.Empty(t, summary.Devices)
}

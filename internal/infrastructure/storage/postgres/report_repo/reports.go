// Package report_repo provides PostgreSQL implementations for report
// repositories. Aggregation happens in SQL; per-item breakdowns unpack
// the JSONB row arrays with jsonb_array_elements.
package report_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"printledger/internal/core/id"
	"printledger/internal/core/types"
	"printledger/internal/domain/reports"
	"printledger/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

// DayPrinterTotals returns per-device copies and amounts for a branch-day.
func (r *ReportRepo) DayPrinterTotals(ctx context.Context, branchID id.ID, date types.Date) ([]reports.PrinterTotal, error) {
	query := `
		SELECT
			printer_id,
			printer_name,
			total_copies AS copies,
			total_amount AS amount
		FROM meter_readings
		WHERE branch_id = $1 AND entry_date = $2
		ORDER BY printer_name ASC
	`

	items := []reports.PrinterTotal{}
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, query, branchID, date); err != nil {
		return nil, fmt.Errorf("day printer totals: %w", err)
	}
	return items, nil
}

// DayStockTotals returns per-item sold counts and amounts for a
// branch-day, summed across recording users.
func (r *ReportRepo) DayStockTotals(ctx context.Context, branchID id.ID, date types.Date) ([]reports.StockItemTotal, error) {
	query := `
		SELECT
			(line->>'itemId')::uuid AS item_id,
			MAX(line->>'itemName') AS item_name,
			COALESCE(SUM((line->>'sold')::bigint), 0) AS sold,
			COALESCE(SUM((line->>'amount')::numeric), 0) AS amount
		FROM stock_entries, jsonb_array_elements(rows) AS line
		WHERE branch_id = $1 AND entry_date = $2
		GROUP BY (line->>'itemId')::uuid
		ORDER BY item_name ASC
	`

	items := []reports.StockItemTotal{}
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, query, branchID, date); err != nil {
		return nil, fmt.Errorf("day stock totals: %w", err)
	}
	return items, nil
}

// DayJumboTotal sums the wide-format ledger for a branch-day.
func (r *ReportRepo) DayJumboTotal(ctx context.Context, branchID id.ID, date types.Date) (reports.JumboTotal, error) {
	query := `
		SELECT
			COALESCE(SUM(total_qty), 0) AS qty,
			COALESCE(SUM(total_amount), 0) AS amount,
			COALESCE(SUM((counter->>'printedLength')::numeric), 0) AS printed_length
		FROM jumbo_entries
		WHERE branch_id = $1 AND entry_date = $2
	`

	var total reports.JumboTotal
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &total, query, branchID, date); err != nil {
		return reports.JumboTotal{}, fmt.Errorf("day jumbo total: %w", err)
	}
	return total, nil
}

// DayRevenueLines returns the labelled revenue lines for a branch-day
// in first-appearance order, plus the authoritative day total.
func (r *ReportRepo) DayRevenueLines(ctx context.Context, branchID id.ID, date types.Date) ([]reports.RevenueLine, types.Money, error) {
	linesQuery := `
		SELECT
			line.value->>'label' AS label,
			COALESCE(SUM((line.value->>'amount')::numeric), 0) AS amount
		FROM revenue_entries,
			jsonb_array_elements(rows) WITH ORDINALITY AS line(value, ord)
		WHERE branch_id = $1 AND entry_date = $2
		GROUP BY line.value->>'label'
		ORDER BY MIN(line.ord) ASC
	`

	lines := []reports.RevenueLine{}
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, linesQuery, branchID, date); err != nil {
		return nil, types.Zero(), fmt.Errorf("day revenue lines: %w", err)
	}

	totalQuery := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM revenue_entries
		WHERE branch_id = $1 AND entry_date = $2
	`

	total := types.Zero()
	if err := querier.QueryRow(ctx, totalQuery, branchID, date).Scan(&total); err != nil {
		return nil, types.Zero(), fmt.Errorf("day revenue total: %w", err)
	}

	return lines, total, nil
}

// RangeSeries returns the per-day rollup for an inclusive date range,
// one point per day with activity, ordered by date ascending.
func (r *ReportRepo) RangeSeries(ctx context.Context, branchID id.ID, from, to types.Date) ([]reports.SeriesPoint, error) {
	query := `
		SELECT
			entry_date AS date,
			COALESCE(SUM(copies), 0) AS copies,
			COALESCE(SUM(printer_amount), 0) AS printer_amount,
			COALESCE(SUM(stock_amount), 0) AS stock_amount,
			COALESCE(SUM(jumbo_amount), 0) AS jumbo_amount,
			COALESCE(SUM(total_revenue), 0) AS total_revenue
		FROM (
			SELECT entry_date, total_copies AS copies, total_amount AS printer_amount,
				0::numeric AS stock_amount, 0::numeric AS jumbo_amount, 0::numeric AS total_revenue
			FROM meter_readings
			WHERE branch_id = $1 AND entry_date BETWEEN $2 AND $3
			UNION ALL
			SELECT entry_date, 0, 0::numeric, total_sold_amount, 0::numeric, 0::numeric
			FROM stock_entries
			WHERE branch_id = $1 AND entry_date BETWEEN $2 AND $3
			UNION ALL
			SELECT entry_date, 0, 0::numeric, 0::numeric, total_amount, 0::numeric
			FROM jumbo_entries
			WHERE branch_id = $1 AND entry_date BETWEEN $2 AND $3
			UNION ALL
			SELECT entry_date, 0, 0::numeric, 0::numeric, 0::numeric, total_amount
			FROM revenue_entries
			WHERE branch_id = $1 AND entry_date BETWEEN $2 AND $3
		) ledgers
		GROUP BY entry_date
		ORDER BY entry_date ASC
	`

	points := []reports.SeriesPoint{}
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &points, query, branchID, from, to); err != nil {
		return nil, fmt.Errorf("range series: %w", err)
	}
	return points, nil
}

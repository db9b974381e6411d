// Package reports provides day and range reconciliation reports across
// the four ledgers.
package reports

import (
	"printledger/internal/core/id"
	"printledger/internal/core/types"
)

// --- Day report ---

// DayReportFilter selects one branch-day to reconcile.
type DayReportFilter struct {
	BranchID id.ID
	Date     types.Date
}

// PrinterTotal is per-device output for the day, summed across size tiers.
type PrinterTotal struct {
	PrinterID   id.ID       `json:"printerId"`
	PrinterName string      `json:"printerName"`
	Copies      int64       `json:"copies"`
	Amount      types.Money `json:"amount"`
}

// StockItemTotal is per-item sales for the day.
type StockItemTotal struct {
	ItemID   id.ID       `json:"itemId"`
	ItemName string      `json:"itemName"`
	Sold     int64       `json:"sold"`
	Amount   types.Money `json:"amount"`
}

// JumboTotal sums the wide-format ledger for the day.
type JumboTotal struct {
	Qty           int64       `json:"qty"`
	Amount        types.Money `json:"amount"`
	PrintedLength types.Money `json:"printedLength"`
}

// RevenueLine is one labelled amount from the revenue ledger,
// summed across recording users.
type RevenueLine struct {
	Label  string      `json:"label"`
	Amount types.Money `json:"amount"`
}

// DaySummary is the reconciliation view for one branch-day.
// Every section is zeroed, never nil, when nothing was recorded.
type DaySummary struct {
	BranchID id.ID      `json:"branchId"`
	Date     types.Date `json:"date"`

	Printers      []PrinterTotal `json:"printers"`
	PrinterCopies int64          `json:"printerCopies"`
	PrinterAmount types.Money    `json:"printerAmount"`

	StockItems  []StockItemTotal `json:"stockItems"`
	StockAmount types.Money      `json:"stockAmount"`

	Jumbo JumboTotal `json:"jumbo"`

	RevenueLines []RevenueLine `json:"revenueLines"`

	// TotalRevenue is the authoritative day figure, taken from the
	// revenue ledger rather than re-derived from the other ledgers.
	TotalRevenue types.Money `json:"totalRevenue"`
}

// --- Range report ---

// RangeReportFilter selects an inclusive date range for one branch.
type RangeReportFilter struct {
	BranchID id.ID
	From     types.Date
	To       types.Date
}

// DevicePoint is one day of one printer's output.
type DevicePoint struct {
	Date   types.Date  `json:"date"`
	Copies int64       `json:"copies"`
	Amount types.Money `json:"amount"`
}

// DeviceSeries is one printer's output over the range, one point per
// recorded day, dates ascending. Feeds the per-device dashboard chart.
type DeviceSeries struct {
	PrinterID   id.ID         `json:"printerId"`
	PrinterName string        `json:"printerName"`
	Points      []DevicePoint `json:"points"`
}

// SeriesPoint is the per-day rollup inside a range report.
type SeriesPoint struct {
	Date          types.Date  `json:"date"`
	Copies        int64       `json:"copies"`
	PrinterAmount types.Money `json:"printerAmount"`
	StockAmount   types.Money `json:"stockAmount"`
	JumboAmount   types.Money `json:"jumboAmount"`
	TotalRevenue  types.Money `json:"totalRevenue"`
}

// RangeSummary is the range report: one point per day that has at
// least one ledger entry, sorted by date ascending, plus grand totals.
type RangeSummary struct {
	BranchID id.ID      `json:"branchId"`
	From     types.Date `json:"from"`
	To       types.Date `json:"to"`

	Points  []SeriesPoint  `json:"points"`
	Devices []DeviceSeries `json:"devices"`

	Copies        int64       `json:"copies"`
	PrinterAmount types.Money `json:"printerAmount"`
	StockAmount   types.Money `json:"stockAmount"`
	JumboAmount   types.Money `json:"jumboAmount"`
	TotalRevenue  types.Money `json:"totalRevenue"`
}

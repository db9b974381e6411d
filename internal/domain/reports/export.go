package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const daySheet = "Day Report"

// writeDayWorkbook renders a day summary as a single-sheet workbook.
// Section layout mirrors the paper reconciliation sheet the branches
// used before: printers, stocks, jumbo, then the revenue lines.
func writeDayWorkbook(summary *DaySummary, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(daySheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	row := 1
	setRow(f, row, "Day Report", summary.Date.String())
	row += 2

	setRow(f, row, "Printers", "", "Copies", "Amount")
	row++
	for _, p := range summary.Printers {
		setRow(f, row, p.PrinterName, "", p.Copies, p.Amount.String())
		row++
	}
	setRow(f, row, "Printer Total", "", summary.PrinterCopies, summary.PrinterAmount.String())
	row += 2

	setRow(f, row, "Stocks", "", "Sold", "Amount")
	row++
	for _, it := range summary.StockItems {
		setRow(f, row, it.ItemName, "", it.Sold, it.Amount.String())
		row++
	}
	setRow(f, row, "Stock Total", "", "", summary.StockAmount.String())
	row += 2

	setRow(f, row, "Jumbo", "", "Qty", "Amount")
	row++
	setRow(f, row, "All jobs", "", summary.Jumbo.Qty, summary.Jumbo.Amount.String())
	row++
	setRow(f, row, "Printed length", "", summary.Jumbo.PrintedLength.String())
	row += 2

	setRow(f, row, "Revenue", "", "", "Amount")
	row++
	for _, l := range summary.RevenueLines {
		setRow(f, row, l.Label, "", "", l.Amount.String())
		row++
	}
	setRow(f, row, "Total Revenue", "", "", summary.TotalRevenue.String())

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values ...interface{}) {
	col := 'A'
	for _, v := range values {
		cell := fmt.Sprintf("%c%d", col, row)
		// Cell errors only occur for invalid references, which the
		// fixed layout cannot produce.
		_ = f.SetCellValue(daySheet, cell, v)
		col++
	}
}

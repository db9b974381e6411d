package dto

import (
	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/core/types"
	"printledger/internal/domain/catalogs/printer"
	"printledger/internal/domain/ledgers/jumbo"
	"printledger/internal/domain/ledgers/meterreading"
	"printledger/internal/domain/ledgers/miscrevenue"
	"printledger/internal/domain/ledgers/stockledger"
)

// --- Meter readings ---

// TierReadingDTO is one submitted counter pair.
type TierReadingDTO struct {
	SizeTier string `json:"sizeTier" binding:"required"`
	Starting int64  `json:"starting"`
	Final    int64  `json:"final"`
}

// RecordMeterReadingRequest records one device's counters for a day.
type RecordMeterReadingRequest struct {
	Date      string           `json:"date" binding:"required"`
	BranchID  string           `json:"branchId,omitempty"`
	PrinterID string           `json:"printerId" binding:"required"`
	Tiers     []TierReadingDTO `json:"tiers" binding:"required"`
}

// ToInput converts the request to the domain input.
func (r RecordMeterReadingRequest) ToInput() (meterreading.RecordInput, error) {
	printerID, err := id.Parse(r.PrinterID)
	if err != nil {
		return meterreading.RecordInput{}, apperror.NewValidation("invalid printerId").WithDetail("printerId", r.PrinterID)
	}
	in := meterreading.RecordInput{PrinterID: printerID}
	for _, t := range r.Tiers {
		in.Tiers = append(in.Tiers, meterreading.TierInput{
			SizeTier: printer.SizeTier(t.SizeTier),
			Starting: t.Starting,
			Final:    t.Final,
		})
	}
	return in, nil
}

// TierBoundsDTO is one counter correction; nil fields keep the
// recorded value.
type TierBoundsDTO struct {
	SizeTier string `json:"sizeTier" binding:"required"`
	Starting *int64 `json:"starting,omitempty"`
	Final    *int64 `json:"final,omitempty"`
}

// MeterEditDTO is one entry correction.
type MeterEditDTO struct {
	ReadingID string          `json:"readingId" binding:"required"`
	Version   int             `json:"version" binding:"min=1"`
	Tiers     []TierBoundsDTO `json:"tiers" binding:"required"`
}

// MeterEditsRequest applies corrections to several readings at once.
type MeterEditsRequest struct {
	BranchID string         `json:"branchId,omitempty"`
	Edits    []MeterEditDTO `json:"edits" binding:"required"`
}

// ToEdits converts the request to domain edits.
func (r MeterEditsRequest) ToEdits() ([]meterreading.Edit, error) {
	edits := make([]meterreading.Edit, 0, len(r.Edits))
	for _, e := range r.Edits {
		readingID, err := id.Parse(e.ReadingID)
		if err != nil {
			return nil, apperror.NewValidation("invalid readingId").WithDetail("readingId", e.ReadingID)
		}
		edit := meterreading.Edit{ReadingID: readingID, Version: e.Version}
		for _, t := range e.Tiers {
			edit.Tiers = append(edit.Tiers, meterreading.TierBounds{
				SizeTier: printer.SizeTier(t.SizeTier),
				Starting: t.Starting,
				Final:    t.Final,
			})
		}
		edits = append(edits, edit)
	}
	return edits, nil
}

// MeterEditResultDTO reports one edit outcome.
type MeterEditResultDTO struct {
	ReadingID string                     `json:"readingId"`
	Reading   *meterreading.MeterReading `json:"reading,omitempty"`
	Error     string                     `json:"error,omitempty"`
}

// FromEditResults maps edit outcomes for the response.
func FromEditResults(results []meterreading.EditResult) []MeterEditResultDTO {
	out := make([]MeterEditResultDTO, 0, len(results))
	for _, r := range results {
		item := MeterEditResultDTO{ReadingID: r.ReadingID.String(), Reading: r.Reading}
		if r.Err != nil {
			item.Error = r.Err.Error()
		}
		out = append(out, item)
	}
	return out
}

// --- Stock ledger ---

// StockRowDTO is one submitted stock row.
type StockRowDTO struct {
	ItemID  string `json:"itemId" binding:"required"`
	Opening int64  `json:"opening"`
	Added   int64  `json:"added"`
	Sold    int64  `json:"sold"`
}

// RecordStockRequest records the calling user's stock sheet for a day.
type RecordStockRequest struct {
	Date     string        `json:"date" binding:"required"`
	BranchID string        `json:"branchId,omitempty"`
	Rows     []StockRowDTO `json:"rows" binding:"required"`
}

// UpdateStockRequest edits a recorded sheet's counts.
type UpdateStockRequest struct {
	Version int           `json:"version" binding:"min=1"`
	Rows    []StockRowDTO `json:"rows" binding:"required"`
}

// ToStockRows converts submitted rows to domain inputs.
func ToStockRows(rows []StockRowDTO) ([]stockledger.RowInput, error) {
	out := make([]stockledger.RowInput, 0, len(rows))
	for _, r := range rows {
		itemID, err := id.Parse(r.ItemID)
		if err != nil {
			return nil, apperror.NewValidation("invalid itemId").WithDetail("itemId", r.ItemID)
		}
		out = append(out, stockledger.RowInput{
			ItemID:  itemID,
			Opening: r.Opening,
			Added:   r.Added,
			Sold:    r.Sold,
		})
	}
	return out, nil
}

// --- Jumbo ledger ---

// JumboRowDTO is one grid cell with its per-order rate.
type JumboRowDTO struct {
	Type      string      `json:"type" binding:"required"`
	Size      string      `json:"size" binding:"required"`
	Qty       int64       `json:"qty"`
	UnitPrice types.Money `json:"unitPrice"`
}

// RecordJumboRequest records the calling user's jumbo sheet for a day.
type RecordJumboRequest struct {
	Date         string        `json:"date" binding:"required"`
	BranchID     string        `json:"branchId,omitempty"`
	Rows         []JumboRowDTO `json:"rows"`
	CounterStart types.Money   `json:"counterStart"`
	CounterEnd   types.Money   `json:"counterEnd"`
}

// UpdateJumboRequest edits a recorded jumbo sheet.
type UpdateJumboRequest struct {
	Version      int           `json:"version" binding:"min=1"`
	Rows         []JumboRowDTO `json:"rows"`
	CounterStart types.Money   `json:"counterStart"`
	CounterEnd   types.Money   `json:"counterEnd"`
}

// ToJumboInput converts submitted rows and counters to the domain input.
func ToJumboInput(rows []JumboRowDTO, start, end types.Money) jumbo.RecordInput {
	in := jumbo.RecordInput{CounterStart: start, CounterEnd: end}
	for _, r := range rows {
		in.Rows = append(in.Rows, jumbo.RowInput{
			Type:      jumbo.JobType(r.Type),
			Size:      jumbo.Size(r.Size),
			Qty:       r.Qty,
			UnitPrice: r.UnitPrice,
		})
	}
	return in
}

// --- Revenue ledger ---

// RevenueLineDTO is one labelled amount.
type RevenueLineDTO struct {
	Label  string      `json:"label" binding:"required"`
	Amount types.Money `json:"amount"`
}

// RecordRevenueRequest records the calling user's revenue lines for a day.
type RecordRevenueRequest struct {
	Date     string           `json:"date" binding:"required"`
	BranchID string           `json:"branchId,omitempty"`
	Rows     []RevenueLineDTO `json:"rows" binding:"required"`
}

// UpdateRevenueRequest edits recorded revenue lines.
type UpdateRevenueRequest struct {
	Version int              `json:"version" binding:"min=1"`
	Rows    []RevenueLineDTO `json:"rows" binding:"required"`
}

// ToRevenueLines converts submitted lines to the domain type.
func ToRevenueLines(rows []RevenueLineDTO) miscrevenue.Lines {
	lines := make(miscrevenue.Lines, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, miscrevenue.Line{Label: r.Label, Amount: r.Amount})
	}
	return lines
}

// Package meterreading provides the daily printer meter-reading ledger.
// One document is recorded per device per branch per day, with one row
// per priced size tier. Tier prices are frozen into the document at
// entry time, so later catalog price changes never rewrite recorded
// amounts; edits re-derive from the frozen price.
package meterreading

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"printledger/internal/core/apperror"
	"printledger/internal/core/entity"
	"printledger/internal/core/id"
	"printledger/internal/core/types"
	"printledger/internal/domain/catalogs/printer"
)

// TierReading is one size tier's counter movement for the day.
type TierReading struct {
	SizeTier printer.SizeTier `json:"sizeTier"`

	Starting     int64 `json:"starting"`
	FinalReading int64 `json:"finalReading"`

	// Copies is FinalReading - Starting. Negative values are stored
	// as-is: a meter swap or misentry shows up in the day report
	// instead of being silently clamped.
	Copies int64 `json:"copies"`

	// UnitPrice is frozen at entry time
	UnitPrice types.Money `json:"unitPrice"`

	// Amount is UnitPrice * Copies
	Amount types.Money `json:"amount"`
}

// Derive recomputes Copies and Amount from the bounds and frozen price.
func (t *TierReading) Derive() {
	t.Copies = t.FinalReading - t.Starting
	t.Amount = types.MulInt(t.UnitPrice, t.Copies)
}

// TierReadings is the tier row set, stored as JSONB.
type TierReadings []TierReading

// Value implements driver.Valuer (JSONB encoding).
func (tr TierReadings) Value() (driver.Value, error) {
	return json.Marshal(tr)
}

// Scan implements sql.Scanner.
func (tr *TierReadings) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*tr = nil
		return nil
	case []byte:
		return json.Unmarshal(v, tr)
	case string:
		return json.Unmarshal([]byte(v), tr)
	default:
		return fmt.Errorf("cannot scan %T into meterreading.TierReadings", src)
	}
}

// MeterReading records one device's counter movements for one day.
type MeterReading struct {
	entity.LedgerDocument

	// PrinterID references the device in the catalog
	PrinterID id.ID `db:"printer_id" json:"printerId"`

	// PrinterName is frozen at entry time for stable reporting
	PrinterName string `db:"printer_name" json:"printerName"`

	// Tiers holds one row per priced size tier
	Tiers TierReadings `db:"tiers" json:"tiers"`

	// TotalCopies is the sum of tier copies
	TotalCopies int64 `db:"total_copies" json:"totalCopies"`

	// TotalAmount is the sum of tier amounts
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`
}

// New creates a meter reading for a device and day.
func New(branchID id.ID, date types.Date, recordedBy, printerID id.ID) *MeterReading {
	return &MeterReading{
		LedgerDocument: entity.NewLedgerDocument(branchID, date, recordedBy),
		PrinterID:      printerID,
	}
}

// Derive recomputes every tier row and the document totals.
// Derived fields are never trusted from input.
func (m *MeterReading) Derive() {
	m.TotalCopies = 0
	total := types.Zero()
	for i := range m.Tiers {
		m.Tiers[i].Derive()
		m.TotalCopies += m.Tiers[i].Copies
		total = total.Add(m.Tiers[i].Amount)
	}
	m.TotalAmount = total
}

// Validate implements entity.Validatable.
func (m *MeterReading) Validate(ctx context.Context) error {
	if err := m.LedgerDocument.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(m.PrinterID) {
		return apperror.NewValidation("printer is required").
			WithDetail("field", "printerId")
	}

	if len(m.Tiers) == 0 {
		return apperror.NewValidation("reading has no tier rows").
			WithDetail("field", "tiers")
	}

	seen := make(map[printer.SizeTier]struct{}, len(m.Tiers))
	for i, t := range m.Tiers {
		if t.SizeTier == "" {
			return apperror.NewValidation("size tier is required").
				WithDetail("row", i)
		}
		if _, dup := seen[t.SizeTier]; dup {
			return apperror.NewValidation("size tier recorded twice").
				WithDetail("row", i).
				WithDetail("sizeTier", string(t.SizeTier))
		}
		seen[t.SizeTier] = struct{}{}

		if t.Starting < 0 {
			return apperror.NewValidation("starting count cannot be negative").
				WithDetail("sizeTier", string(t.SizeTier)).
				WithDetail("value", t.Starting)
		}
		if t.FinalReading < 0 {
			return apperror.NewValidation("final reading cannot be negative").
				WithDetail("sizeTier", string(t.SizeTier)).
				WithDetail("value", t.FinalReading)
		}
	}

	return nil
}

// Key identifies a meter reading by its natural ledger key.
type Key struct {
	BranchID  id.ID
	Date      types.Date
	PrinterID id.ID
}

func (m *MeterReading) Key() Key {
	return Key{BranchID: m.BranchID, Date: m.Date, PrinterID: m.PrinterID}
}

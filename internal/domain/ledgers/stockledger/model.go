// Package stockledger provides the daily stock movement ledger.
// One sheet is recorded per user per branch per day. Every sellable
// item appears as a row; the closing count carries forward into the
// next day's opening count. Unit prices are frozen at entry time.
package stockledger

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"printledger/internal/core/apperror"
	"printledger/internal/core/entity"
	"printledger/internal/core/id"
	"printledger/internal/core/types"
)

// Row is one stock item's movement for the day.
type Row struct {
	ItemID   id.ID  `json:"itemId"`
	ItemName string `json:"itemName"`
	// UnitPrice is frozen at entry time
	UnitPrice types.Money `json:"unitPrice"`
	Opening   int64       `json:"opening"`
	Added     int64       `json:"added"`
	Sold      int64       `json:"sold"`
	// Closing is Opening + Added - Sold
	Closing int64 `json:"closing"`
	// Amount is UnitPrice * Sold
	Amount types.Money `json:"amount"`
}

// Derive recomputes Closing and Amount from the counts and frozen price.
func (r *Row) Derive() {
	r.Closing = r.Opening + r.Added - r.Sold
	r.Amount = types.MulInt(r.UnitPrice, r.Sold)
}

// Rows is the sheet's row set, stored as JSONB. The sheet is always
// read and written whole, never row by row.
type Rows []Row

// Value implements driver.Valuer (JSONB encoding).
func (rs Rows) Value() (driver.Value, error) {
	return json.Marshal(rs)
}

// Scan implements sql.Scanner.
func (rs *Rows) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*rs = nil
		return nil
	case []byte:
		return json.Unmarshal(v, rs)
	case string:
		return json.Unmarshal([]byte(v), rs)
	default:
		return fmt.Errorf("cannot scan %T into stockledger.Rows", src)
	}
}

// Entry is one user's stock sheet for one day.
type Entry struct {
	entity.LedgerDocument

	Rows Rows `db:"rows" json:"rows"`

	// TotalSoldAmount is the sum of row amounts
	TotalSoldAmount types.Money `db:"total_sold_amount" json:"totalSoldAmount"`
}

// New creates an empty stock sheet for a user and day.
func New(branchID id.ID, date types.Date, recordedBy id.ID) *Entry {
	return &Entry{
		LedgerDocument: entity.NewLedgerDocument(branchID, date, recordedBy),
		Rows:           make(Rows, 0),
	}
}

// Derive recomputes every row and the sheet total.
// Derived fields are never trusted from input.
func (e *Entry) Derive() {
	total := types.Zero()
	for i := range e.Rows {
		e.Rows[i].Derive()
		total = total.Add(e.Rows[i].Amount)
	}
	e.TotalSoldAmount = total
}

// Validate implements entity.Validatable.
func (e *Entry) Validate(ctx context.Context) error {
	if err := e.LedgerDocument.Validate(ctx); err != nil {
		return err
	}

	if len(e.Rows) == 0 {
		return apperror.NewValidation("stock sheet has no rows").
			WithDetail("field", "rows")
	}

	seen := make(map[id.ID]struct{}, len(e.Rows))
	for i, row := range e.Rows {
		if id.IsNil(row.ItemID) {
			return apperror.NewValidation("row item is required").
				WithDetail("row", i)
		}
		if _, dup := seen[row.ItemID]; dup {
			return apperror.NewValidation("item appears twice in sheet").
				WithDetail("row", i).
				WithDetail("itemId", row.ItemID.String())
		}
		seen[row.ItemID] = struct{}{}

		if row.Opening < 0 || row.Added < 0 || row.Sold < 0 {
			return apperror.NewValidation("stock counts cannot be negative").
				WithDetail("row", i).
				WithDetail("item", row.ItemName)
		}
	}

	return nil
}

// Key identifies a stock sheet by its natural ledger key.
type Key struct {
	BranchID   id.ID
	Date       types.Date
	RecordedBy id.ID
}

func (e *Entry) Key() Key {
	return Key{BranchID: e.BranchID, Date: e.Date, RecordedBy: e.RecordedBy}
}

// Package miscrevenue provides the daily miscellaneous revenue ledger.
// One line set is recorded per user per branch per day: free-form named
// revenue and expense amounts. The day's total revenue reported to
// dashboards comes from this ledger, so it carries the reconciliation
// template rows by default.
package miscrevenue

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"printledger/internal/core/apperror"
	"printledger/internal/core/entity"
	"printledger/internal/core/id"
	"printledger/internal/core/types"
)

// Line is one named amount.
type Line struct {
	Label  string      `json:"label"`
	Amount types.Money `json:"amount"`
}

// Lines is the ordered line set, stored as JSONB.
type Lines []Line

// Value implements driver.Valuer (JSONB encoding).
func (ls Lines) Value() (driver.Value, error) {
	return json.Marshal(ls)
}

// Scan implements sql.Scanner.
func (ls *Lines) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*ls = nil
		return nil
	case []byte:
		return json.Unmarshal(v, ls)
	case string:
		return json.Unmarshal([]byte(v), ls)
	default:
		return fmt.Errorf("cannot scan %T into miscrevenue.Lines", src)
	}
}

// DefaultTemplate returns the standard reconciliation rows managers
// fill in at close of day, in their customary order.
func DefaultTemplate() Lines {
	labels := []string{
		"Canon 8986",
		"Toshiba 8518",
		"Canon V700",
		"Jumbo Xerox",
		"Stocks",
		"DNP Photo Printing",
		"Digital Business",
		"Gift Business",
		"Mimaki Business",
		"Total Business",
		"Discount",
		"Paytm QR & Card Machine",
		"Expense",
		"Cash As Per Accounts",
		"Cash In Hand",
	}

	lines := make(Lines, 0, len(labels))
	for _, label := range labels {
		lines = append(lines, Line{Label: label, Amount: types.Zero()})
	}
	return lines
}

// Entry is one user's revenue line set for one day.
type Entry struct {
	entity.LedgerDocument

	Rows Lines `db:"rows" json:"rows"`

	// TotalAmount is the sum of row amounts, recomputed on every save
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`
}

// New creates a revenue line set for a user and day.
func New(branchID id.ID, date types.Date, recordedBy id.ID) *Entry {
	return &Entry{
		LedgerDocument: entity.NewLedgerDocument(branchID, date, recordedBy),
		Rows:           make(Lines, 0),
	}
}

// Derive recomputes the total from the rows.
func (e *Entry) Derive() {
	total := types.Zero()
	for _, line := range e.Rows {
		total = total.Add(line.Amount)
	}
	e.TotalAmount = total
}

// Validate implements entity.Validatable.
func (e *Entry) Validate(ctx context.Context) error {
	if err := e.LedgerDocument.Validate(ctx); err != nil {
		return err
	}

	if len(e.Rows) == 0 {
		return apperror.NewValidation("revenue entry has no rows").
			WithDetail("field", "rows")
	}

	for i, line := range e.Rows {
		if strings.TrimSpace(line.Label) == "" {
			return apperror.NewValidation("row label is required").
				WithDetail("row", i)
		}
	}

	return nil
}

// Key identifies a revenue entry by its natural ledger key.
type Key struct {
	BranchID   id.ID
	Date       types.Date
	RecordedBy id.ID
}

func (e *Entry) Key() Key {
	return Key{BranchID: e.BranchID, Date: e.Date, RecordedBy: e.RecordedBy}
}

// Package jumbo provides the daily jumbo-format (large format) ledger.
// One submission per user per branch per day carries a fixed grid of
// nine job rows (sizes A0/A1/A2 across colour, black-and-white and
// scan) plus the machine's physical length counter. Stored totals are
// persisted for querying but always recomputed from rows before any
// save; they are never trusted in isolation.
package jumbo

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

// JobType is the print mode of a grid row.
type JobType string

const (
	TypeColour JobType = "colour"
	TypeBW     JobType = "bw"
	TypeScan   JobType = "scan"
)

// Size is the sheet size of a grid row.
type Size string

const (
	SizeA0 Size = "A0"
	SizeA1 Size = "A1"
	SizeA2 Size = "A2"
)

// Row is one grid cell: a size/type combination with quantity and rate.
type Row struct {
	Type      JobType     `json:"type"`
	Size      Size        `json:"size"`
	Qty       int64       `json:"qty"`
	UnitPrice types.Money `json:"unitPrice"`
	// Amount is Qty * UnitPrice
	Amount types.Money `json:"amount"`
}

// Rows is the grid, stored as JSONB in fixed order.
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
		return fmt.Errorf("cannot scan %T into jumbo.Rows", src)
	}
}

// Counter is the machine's physical length counter for the day.
// Lengths are decimal metres, so the counter uses Money precision
// rather than integer counts.
type Counter struct {
	Start types.Money `json:"start"`
	End   types.Money `json:"end"`
	// PrintedLength is End - Start
	PrintedLength types.Money `json:"printedLength"`
}

// Value implements driver.Valuer (JSONB encoding).
func (c Counter) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner.
func (c *Counter) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*c = Counter{}
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("cannot scan %T into jumbo.Counter", src)
	}
}

// GridShape returns the expected grid in fixed order.
func GridShape() []struct {
	Size Size
	Type JobType
} {
	sizes := []Size{SizeA0, SizeA1, SizeA2}
	jobTypes := []JobType{TypeColour, TypeBW, TypeScan}

	shape := make([]struct {
		Size Size
		Type JobType
	}, 0, len(sizes)*len(jobTypes))
	for _, sz := range sizes {
		for _, jt := range jobTypes {
			shape = append(shape, struct {
				Size Size
				Type JobType
			}{Size: sz, Type: jt})
		}
	}
	return shape
}

// DefaultGrid returns a zeroed grid in fixed order.
func DefaultGrid() Rows {
	shape := GridShape()
	rows := make(Rows, 0, len(shape))
	for _, cell := range shape {
		rows = append(rows, Row{
			Type:      cell.Type,
			Size:      cell.Size,
			UnitPrice: types.Zero(),
			Amount:    types.Zero(),
		})
	}
	return rows
}

// Entry is one user's jumbo submission for one day.
type Entry struct {
	entity.LedgerDocument

	Rows    Rows    `db:"rows" json:"rows"`
	Counter Counter `db:"counter" json:"counter"`

	// TotalQty is the sum of row quantities
	TotalQty int64 `db:"total_qty" json:"totalQty"`

	// TotalAmount is the sum of row amounts
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`
}

// New creates a jumbo entry with a zeroed grid for a user and day.
func New(branchID id.ID, date types.Date, recordedBy id.ID) *Entry {
	return &Entry{
		LedgerDocument: entity.NewLedgerDocument(branchID, date, recordedBy),
		Rows:           DefaultGrid(),
	}
}

// Derive recomputes every row amount, the totals and the counter's
// printed length.
func (e *Entry) Derive() {
	e.TotalQty = 0
	total := types.Zero()
	for i := range e.Rows {
		e.Rows[i].Amount = types.MulInt(e.Rows[i].UnitPrice, e.Rows[i].Qty)
		e.TotalQty += e.Rows[i].Qty
		total = total.Add(e.Rows[i].Amount)
	}
	e.TotalAmount = total
	e.Counter.PrintedLength = e.Counter.End.Sub(e.Counter.Start)
}

// Validate implements entity.Validatable.
// The grid must be exactly the nine expected size/type cells in order.
func (e *Entry) Validate(ctx context.Context) error {
	if err := e.LedgerDocument.Validate(ctx); err != nil {
		return err
	}

	shape := GridShape()
	if len(e.Rows) != len(shape) {
		return apperror.NewValidation("jumbo grid must have exactly nine rows").
			WithDetail("rows", len(e.Rows))
	}

	for i, row := range e.Rows {
		if row.Size != shape[i].Size || row.Type != shape[i].Type {
			return apperror.NewValidation("jumbo grid rows out of order").
				WithDetail("row", i).
				WithDetail("expected", fmt.Sprintf("%s/%s", shape[i].Size, shape[i].Type)).
				WithDetail("got", fmt.Sprintf("%s/%s", row.Size, row.Type))
		}
		if row.Qty < 0 {
			return apperror.NewValidation("quantity cannot be negative").
				WithDetail("row", i).
				WithDetail("value", row.Qty)
		}
		if row.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price cannot be negative").
				WithDetail("row", i).
				WithDetail("value", row.UnitPrice.String())
		}
	}

	if e.Counter.Start.IsNegative() || e.Counter.End.IsNegative() {
		return apperror.NewValidation("counter values cannot be negative")
	}

	return nil
}

// Key identifies a jumbo entry by its natural ledger key.
type Key struct {
	BranchID   id.ID
	Date       types.Date
	RecordedBy id.ID
}

func (e *Entry) Key() Key {
	return Key{BranchID: e.BranchID, Date: e.Date, RecordedBy: e.RecordedBy}
}

package entity

import (
	"context"
	"time"

	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/core/types"
)

// LedgerDocument is the base type for daily ledger entries.
// Every ledger document belongs to exactly one branch and one calendar day;
// the (branch, date, ...) key is what the duplicate guards protect.
type LedgerDocument struct {
	BaseEntity

	// BranchID is the owning branch (required)
	BranchID id.ID `db:"branch_id" json:"branchId"`

	// Date is the business day of the entry
	Date types.Date `db:"entry_date" json:"date"`

	// RecordedBy is the user who created the entry
	RecordedBy id.ID `db:"recorded_by" json:"recordedBy"`

	// Audit fields
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewLedgerDocument creates a new LedgerDocument with generated ID and timestamps.
func NewLedgerDocument(branchID id.ID, date types.Date, recordedBy id.ID) LedgerDocument {
	now := time.Now().UTC()
	return LedgerDocument{
		BaseEntity: NewBaseEntity(),
		BranchID:   branchID,
		Date:       date,
		RecordedBy: recordedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate implements Validatable interface.
func (d *LedgerDocument) Validate(ctx context.Context) error {
	if id.IsNil(d.BranchID) {
		return apperror.NewValidation("branch is required").
			WithDetail("field", "branchId")
	}
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}

// Touch updates the UpdatedAt timestamp and increments version.
func (d *LedgerDocument) Touch() {
	d.UpdatedAt = time.Now().UTC()
	d.BaseEntity.Touch()
}

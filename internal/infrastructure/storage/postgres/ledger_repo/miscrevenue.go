package ledger_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"printledger/internal/core/id"
	"printledger/internal/core/types"
	"printledger/internal/domain/ledgers/miscrevenue"
	"printledger/internal/infrastructure/storage/postgres"
)

const revenueEntryTable = "revenue_entries"

// MiscRevenueRepo implements miscrevenue.Repository.
type MiscRevenueRepo struct {
	*BaseLedgerRepo[*miscrevenue.Entry]
}

// NewMiscRevenueRepo creates a new revenue ledger repository.
func NewMiscRevenueRepo(txm *postgres.TxManager) *MiscRevenueRepo {
	return &MiscRevenueRepo{
		BaseLedgerRepo: NewBaseLedgerRepo[*miscrevenue.Entry](
			txm,
			revenueEntryTable,
			"revenue entry",
			postgres.ExtractDBColumns[miscrevenue.Entry](),
			func() *miscrevenue.Entry { return &miscrevenue.Entry{} },
		),
	}
}

// Create inserts a line set; one per (branch, date, user).
func (r *MiscRevenueRepo) Create(ctx context.Context, entry *miscrevenue.Entry) error {
	return r.BaseLedgerRepo.Create(ctx, entry, entry.Date.String())
}

// GetByKey retrieves one user's line set for a day.
func (r *MiscRevenueRepo) GetByKey(ctx context.Context, key miscrevenue.Key) (*miscrevenue.Entry, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{
			"branch_id":   key.BranchID,
			"entry_date":  key.Date,
			"recorded_by": key.RecordedBy,
		}).
		Limit(1)

	return r.FindOne(ctx, q)
}

// ListByDay retrieves all line sets for a branch and day.
func (r *MiscRevenueRepo) ListByDay(ctx context.Context, branchID id.ID, date types.Date) ([]*miscrevenue.Entry, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"branch_id": branchID, "entry_date": date}).
		OrderBy("created_at ASC")

	return r.FindAll(ctx, q)
}

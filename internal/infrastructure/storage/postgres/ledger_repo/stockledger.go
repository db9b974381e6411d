package ledger_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"printledger/internal/core/id"
	"printledger/internal/core/types"
	"printledger/internal/domain/ledgers/stockledger"
	"printledger/internal/infrastructure/storage/postgres"
)

const stockEntryTable = "stock_entries"

// StockLedgerRepo implements stockledger.Repository.
type StockLedgerRepo struct {
	*BaseLedgerRepo[*stockledger.Entry]
}

// NewStockLedgerRepo creates a new stock ledger repository.
func NewStockLedgerRepo(txm *postgres.TxManager) *StockLedgerRepo {
	return &StockLedgerRepo{
		BaseLedgerRepo: NewBaseLedgerRepo[*stockledger.Entry](
			txm,
			stockEntryTable,
			"stock sheet",
			postgres.ExtractDBColumns[stockledger.Entry](),
			func() *stockledger.Entry { return &stockledger.Entry{} },
		),
	}
}

// Create inserts a sheet; one per (branch, date, user).
func (r *StockLedgerRepo) Create(ctx context.Context, entry *stockledger.Entry) error {
	return r.BaseLedgerRepo.Create(ctx, entry, entry.Date.String())
}

// GetByKey retrieves one user's sheet for a day.
func (r *StockLedgerRepo) GetByKey(ctx context.Context, key stockledger.Key) (*stockledger.Entry, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{
			"branch_id":   key.BranchID,
			"entry_date":  key.Date,
			"recorded_by": key.RecordedBy,
		}).
		Limit(1)

	return r.FindOne(ctx, q)
}

// ListByDay retrieves all sheets for a branch and day.
func (r *StockLedgerRepo) ListByDay(ctx context.Context, branchID id.ID, date types.Date) ([]*stockledger.Entry, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"branch_id": branchID, "entry_date": date}).
		OrderBy("created_at ASC")

	return r.FindAll(ctx, q)
}

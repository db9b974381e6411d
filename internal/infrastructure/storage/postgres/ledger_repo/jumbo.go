package ledger_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"printledger/internal/core/id"
	"printledger/internal/core/types"
	"printledger/internal/domain/ledgers/jumbo"
	"printledger/internal/infrastructure/storage/postgres"
)

const jumboEntryTable = "jumbo_entries"

// JumboRepo implements jumbo.Repository.
type JumboRepo struct {
	*BaseLedgerRepo[*jumbo.Entry]
}

// NewJumboRepo creates a new jumbo ledger repository.
func NewJumboRepo(txm *postgres.TxManager) *JumboRepo {
	return &JumboRepo{
		BaseLedgerRepo: NewBaseLedgerRepo[*jumbo.Entry](
			txm,
			jumboEntryTable,
			"jumbo entry",
			postgres.ExtractDBColumns[jumbo.Entry](),
			func() *jumbo.Entry { return &jumbo.Entry{} },
		),
	}
}

// Create inserts an entry; one per (branch, date, user).
func (r *JumboRepo) Create(ctx context.Context, entry *jumbo.Entry) error {
	return r.BaseLedgerRepo.Create(ctx, entry, entry.Date.String())
}

// GetByKey retrieves one user's entry for a day.
func (r *JumboRepo) GetByKey(ctx context.Context, key jumbo.Key) (*jumbo.Entry, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{
			"branch_id":   key.BranchID,
			"entry_date":  key.Date,
			"recorded_by": key.RecordedBy,
		}).
		Limit(1)

	return r.FindOne(ctx, q)
}

// ListByDay retrieves all entries for a branch and day.
func (r *JumboRepo) ListByDay(ctx context.Context, branchID id.ID, date types.Date) ([]*jumbo.Entry, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"branch_id": branchID, "entry_date": date}).
		OrderBy("created_at ASC")

	return r.FindAll(ctx, q)
}

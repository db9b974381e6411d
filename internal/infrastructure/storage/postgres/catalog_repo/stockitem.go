package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"printledger/internal/core/id"
	"printledger/internal/domain/catalogs/stockitem"
	"printledger/internal/infrastructure/storage/postgres"
)

const stockItemTable = "stock_items"

// StockItemRepo implements stockitem.Repository.
type StockItemRepo struct {
	*BaseCatalogRepo[*stockitem.StockItem]
}

// NewStockItemRepo creates a new stock item repository.
func NewStockItemRepo(txm *postgres.TxManager) *StockItemRepo {
	return &StockItemRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*stockitem.StockItem](
			txm,
			stockItemTable,
			postgres.ExtractDBColumns[stockitem.StockItem](),
			func() *stockitem.StockItem { return &stockitem.StockItem{} },
		),
	}
}

// ListByBranch retrieves all active stock items for a branch, ordered by name.
func (r *StockItemRepo) ListByBranch(ctx context.Context, branchID id.ID) ([]*stockitem.StockItem, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"branch_id": branchID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC")

	return r.FindAll(ctx, q)
}

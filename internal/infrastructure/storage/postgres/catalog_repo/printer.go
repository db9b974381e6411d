package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"printledger/internal/core/id"
	"printledger/internal/domain/catalogs/printer"
	"printledger/internal/infrastructure/storage/postgres"
)

const printerTable = "printers"

// PrinterRepo implements printer.Repository.
type PrinterRepo struct {
	*BaseCatalogRepo[*printer.Printer]
}

// NewPrinterRepo creates a new printer repository.
func NewPrinterRepo(txm *postgres.TxManager) *PrinterRepo {
	return &PrinterRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*printer.Printer](
			txm,
			printerTable,
			postgres.ExtractDBColumns[printer.Printer](),
			func() *printer.Printer { return &printer.Printer{} },
		),
	}
}

// ListByBranch retrieves all active printers for a branch, ordered by name.
func (r *PrinterRepo) ListByBranch(ctx context.Context, branchID id.ID) ([]*printer.Printer, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"branch_id": branchID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC")

	return r.FindAll(ctx, q)
}

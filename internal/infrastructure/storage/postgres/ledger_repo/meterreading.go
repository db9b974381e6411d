package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"printledger/internal/core/id"
	"printledger/internal/core/types"
	"printledger/internal/domain/ledgers/meterreading"
	"printledger/internal/infrastructure/storage/postgres"
)

const meterReadingTable = "meter_readings"

// MeterReadingRepo implements meterreading.Repository.
type MeterReadingRepo struct {
	*BaseLedgerRepo[*meterreading.MeterReading]
}

// NewMeterReadingRepo creates a new meter reading repository.
func NewMeterReadingRepo(txm *postgres.TxManager) *MeterReadingRepo {
	return &MeterReadingRepo{
		BaseLedgerRepo: NewBaseLedgerRepo[*meterreading.MeterReading](
			txm,
			meterReadingTable,
			"meter reading",
			postgres.ExtractDBColumns[meterreading.MeterReading](),
			func() *meterreading.MeterReading { return &meterreading.MeterReading{} },
		),
	}
}

// Create inserts a reading; one per (branch, date, device).
func (r *MeterReadingRepo) Create(ctx context.Context, reading *meterreading.MeterReading) error {
	dupKey := fmt.Sprintf("%s %s", reading.Date, reading.PrinterName)
	return r.BaseLedgerRepo.Create(ctx, reading, dupKey)
}

// GetByKey retrieves the reading for a device on a given day.
func (r *MeterReadingRepo) GetByKey(ctx context.Context, key meterreading.Key) (*meterreading.MeterReading, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{
			"branch_id":  key.BranchID,
			"entry_date": key.Date,
			"printer_id": key.PrinterID,
		}).
		Limit(1)

	return r.FindOne(ctx, q)
}

// ListByDay retrieves all readings for a branch and day, ordered by printer name.
func (r *MeterReadingRepo) ListByDay(ctx context.Context, branchID id.ID, date types.Date) ([]*meterreading.MeterReading, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"branch_id": branchID, "entry_date": date}).
		OrderBy("printer_name ASC")

	return r.FindAll(ctx, q)
}

// ListByRange retrieves readings between two dates inclusive,
// ordered by date then printer name.
func (r *MeterReadingRepo) ListByRange(ctx context.Context, branchID id.ID, from, to types.Date) ([]*meterreading.MeterReading, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"branch_id": branchID}).
		Where(squirrel.GtOrEq{"entry_date": from}).
		Where(squirrel.LtOrEq{"entry_date": to}).
		OrderBy("entry_date ASC", "printer_name ASC")

	return r.FindAll(ctx, q)
}

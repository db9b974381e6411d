package jumbo

import (
	"context"
	"fmt"

	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/core/session"
	"printledger/internal/core/tx"
	"printledger/internal/core/types"
	"printledger/pkg/logger"
)

// Service provides business operations for the jumbo ledger.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new jumbo ledger service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// RowInput is one submitted grid cell. Rates are entered with the job,
// not looked up from a catalog: jumbo work is priced per order.
type RowInput struct {
	Type      JobType
	Size      Size
	Qty       int64
	UnitPrice types.Money
}

// RecordInput is one submitted jumbo day sheet.
type RecordInput struct {
	Rows         []RowInput
	CounterStart types.Money
	CounterEnd   types.Money
}

// Record creates the calling user's jumbo entry for a day.
func (s *Service) Record(ctx context.Context, branchID id.ID, date types.Date, in RecordInput) (*Entry, error) {
	entry := New(branchID, date, session.UserID(ctx))
	applyRows(entry, in.Rows)
	entry.Counter.Start = in.CounterStart
	entry.Counter.End = in.CounterEnd
	entry.Derive()

	if err := entry.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, entry); err != nil {
			return fmt.Errorf("create jumbo entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "jumbo entry recorded",
		"id", entry.ID,
		"date", entry.Date.String(),
		"total_qty", entry.TotalQty,
		"total_amount", entry.TotalAmount.String())

	return entry, nil
}

// applyRows merges submitted cells onto the fixed grid. Cells not
// submitted keep their previous values; unknown size/type combinations
// are ignored.
func applyRows(entry *Entry, rows []RowInput) {
	for _, in := range rows {
		for i := range entry.Rows {
			if entry.Rows[i].Size == in.Size && entry.Rows[i].Type == in.Type {
				entry.Rows[i].Qty = in.Qty
				entry.Rows[i].UnitPrice = in.UnitPrice
				break
			}
		}
	}
}

// GetByID retrieves an entry by ID.
func (s *Service) GetByID(ctx context.Context, entryID id.ID) (*Entry, error) {
	return s.repo.GetByID(ctx, entryID)
}

// GetByKey retrieves one user's entry for a day.
func (s *Service) GetByKey(ctx context.Context, key Key) (*Entry, error) {
	return s.repo.GetByKey(ctx, key)
}

// ListByDay retrieves all entries for a branch and day.
func (s *Service) ListByDay(ctx context.Context, branchID id.ID, date types.Date) ([]*Entry, error) {
	return s.repo.ListByDay(ctx, branchID, date)
}

// Update replaces the grid and counter of an existing entry. Both
// quantities and rates are editable after creation; amounts and totals
// are always rederived from the rows before the save.
func (s *Service) Update(ctx context.Context, branchID id.ID, entryID id.ID, version int, in RecordInput) (*Entry, error) {
	var updated *Entry

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		entry, err := s.repo.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry.BranchID != branchID {
			return apperror.NewNotFound("jumbo entry", entryID.String())
		}

		applyRows(entry, in.Rows)
		entry.Counter.Start = in.CounterStart
		entry.Counter.End = in.CounterEnd

		// Version holds the caller's expected version; the repo bumps it
		// in SQL and rejects the write when someone got there first.
		entry.Version = version
		entry.Derive()

		if err := entry.Validate(ctx); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, entry); err != nil {
			return fmt.Errorf("update jumbo entry: %w", err)
		}

		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

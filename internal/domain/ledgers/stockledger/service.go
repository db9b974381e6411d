package stockledger

import (
	"context"
	"fmt"

	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/core/session"
	"printledger/internal/core/tx"
	"printledger/internal/core/types"
	"printledger/internal/domain/catalogs/stockitem"
	"printledger/pkg/logger"
)

// Service provides business operations for the stock ledger.
type Service struct {
	repo      Repository
	items     stockitem.Repository
	txManager tx.Manager
}

// NewService creates a new stock ledger service.
func NewService(repo Repository, items stockitem.Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		items:     items,
		txManager: txManager,
	}
}

// RowInput is one submitted stock row.
type RowInput struct {
	ItemID  id.ID
	Opening int64
	Added   int64
	Sold    int64
}

// Record creates the calling user's stock sheet for a day.
// Item names and unit prices are frozen from the catalog here.
func (s *Service) Record(ctx context.Context, branchID id.ID, date types.Date, rows []RowInput) (*Entry, error) {
	entry := New(branchID, date, session.UserID(ctx))

	if err := s.fillRows(ctx, entry, branchID, rows); err != nil {
		return nil, err
	}
	entry.Derive()

	if err := entry.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, entry); err != nil {
			return fmt.Errorf("create stock sheet: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock sheet recorded",
		"id", entry.ID,
		"date", entry.Date.String(),
		"rows", len(entry.Rows),
		"sold_amount", entry.TotalSoldAmount.String())

	return entry, nil
}

// fillRows resolves catalog items and freezes names and prices.
func (s *Service) fillRows(ctx context.Context, entry *Entry, branchID id.ID, rows []RowInput) error {
	items, err := s.items.ListByBranch(ctx, branchID)
	if err != nil {
		return fmt.Errorf("list stock items: %w", err)
	}
	byID := make(map[id.ID]*stockitem.StockItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	entry.Rows = make(Rows, 0, len(rows))
	for _, in := range rows {
		item, ok := byID[in.ItemID]
		if !ok {
			return apperror.NewNotFound("stock item", in.ItemID.String())
		}
		entry.Rows = append(entry.Rows, Row{
			ItemID:    item.ID,
			ItemName:  item.Name,
			UnitPrice: item.UnitPrice,
			Opening:   in.Opening,
			Added:     in.Added,
			Sold:      in.Sold,
		})
	}

	return nil
}

// PrefillRow is one suggested row for the entry form.
type PrefillRow struct {
	ItemID    id.ID       `json:"itemId"`
	ItemName  string      `json:"itemName"`
	UnitPrice types.Money `json:"unitPrice"`
	Opening   int64       `json:"opening"`
	// HasPrior is set when Opening was carried from the previous day's
	// closing count. When false the manager enters the opening manually.
	HasPrior bool `json:"hasPrior"`
}

// PrefillForDate builds the entry form for a branch and day.
// The opening count carries forward from the previous day's sheet under
// the same scoping key (branch, date-1, calling user) for each item
// present in both; items without a prior row start blank.
func (s *Service) PrefillForDate(ctx context.Context, branchID id.ID, date types.Date) ([]PrefillRow, error) {
	items, err := s.items.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}

	closings := make(map[id.ID]int64)
	prev, err := s.repo.GetByKey(ctx, Key{
		BranchID:   branchID,
		Date:       date.Prev(),
		RecordedBy: session.UserID(ctx),
	})
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}
	if prev != nil {
		for _, row := range prev.Rows {
			closings[row.ItemID] = row.Closing
		}
	}

	rows := make([]PrefillRow, 0, len(items))
	for _, item := range items {
		row := PrefillRow{
			ItemID:    item.ID,
			ItemName:  item.Name,
			UnitPrice: item.UnitPrice,
		}
		if closing, ok := closings[item.ID]; ok {
			row.Opening = closing
			row.HasPrior = true
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// GetByID retrieves a sheet by ID.
func (s *Service) GetByID(ctx context.Context, entryID id.ID) (*Entry, error) {
	return s.repo.GetByID(ctx, entryID)
}

// GetByKey retrieves one user's sheet for a day.
func (s *Service) GetByKey(ctx context.Context, key Key) (*Entry, error) {
	return s.repo.GetByKey(ctx, key)
}

// ListByDay retrieves all sheets for a branch and day.
func (s *Service) ListByDay(ctx context.Context, branchID id.ID, date types.Date) ([]*Entry, error) {
	return s.repo.ListByDay(ctx, branchID, date)
}

// Update replaces the counts of an existing sheet and rederives every
// row and the grand total. The full rows array and the total persist
// atomically as one document write. Prices stay frozen as recorded:
// corrections change counts, not rates.
func (s *Service) Update(ctx context.Context, branchID id.ID, entryID id.ID, version int, rows []RowInput) (*Entry, error) {
	var updated *Entry

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		entry, err := s.repo.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry.BranchID != branchID {
			return apperror.NewNotFound("stock sheet", entryID.String())
		}

		frozen := make(map[id.ID]Row, len(entry.Rows))
		for _, row := range entry.Rows {
			frozen[row.ItemID] = row
		}

		newRows := make(Rows, 0, len(rows))
		for _, in := range rows {
			old, ok := frozen[in.ItemID]
			if !ok {
				return apperror.NewValidation("cannot add items to a recorded sheet").
					WithDetail("itemId", in.ItemID.String())
			}
			old.Opening = in.Opening
			old.Added = in.Added
			old.Sold = in.Sold
			newRows = append(newRows, old)
		}

		// Version holds the caller's expected version; the repo bumps it
		// in SQL and rejects the write when someone got there first.
		entry.Version = version
		entry.Rows = newRows
		entry.Derive()

		if err := entry.Validate(ctx); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, entry); err != nil {
			return fmt.Errorf("update stock sheet: %w", err)
		}

		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

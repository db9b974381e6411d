package miscrevenue

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

// Service provides business operations for the misc revenue ledger.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new misc revenue service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Record creates the calling user's revenue line set for a day.
// The total is derived from the rows; a submitted total is ignored.
func (s *Service) Record(ctx context.Context, branchID id.ID, date types.Date, rows Lines) (*Entry, error) {
	entry := New(branchID, date, session.UserID(ctx))
	entry.Rows = rows
	entry.Derive()

	if err := entry.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, entry); err != nil {
			return fmt.Errorf("create revenue entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "revenue entry recorded",
		"id", entry.ID,
		"date", entry.Date.String(),
		"total", entry.TotalAmount.String())

	return entry, nil
}

// Template returns the default row template for the entry form.
func (s *Service) Template() Lines {
	return DefaultTemplate()
}

// GetByID retrieves an entry by ID.
func (s *Service) GetByID(ctx context.Context, entryID id.ID) (*Entry, error) {
	return s.repo.GetByID(ctx, entryID)
}

// GetByKey retrieves one user's line set for a day.
func (s *Service) GetByKey(ctx context.Context, key Key) (*Entry, error) {
	return s.repo.GetByKey(ctx, key)
}

// ListByDay retrieves all line sets for a branch and day.
func (s *Service) ListByDay(ctx context.Context, branchID id.ID, date types.Date) ([]*Entry, error) {
	return s.repo.ListByDay(ctx, branchID, date)
}

// Update replaces the rows of an existing line set and recomputes the total.
func (s *Service) Update(ctx context.Context, branchID id.ID, entryID id.ID, version int, rows Lines) (*Entry, error) {
	var updated *Entry

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		entry, err := s.repo.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry.BranchID != branchID {
			return apperror.NewNotFound("revenue entry", entryID.String())
		}

		// Version holds the caller's expected version; the repo bumps it
		// in SQL and rejects the write when someone got there first.
		entry.Version = version
		entry.Rows = rows
		entry.Derive()

		if err := entry.Validate(ctx); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, entry); err != nil {
			return fmt.Errorf("update revenue entry: %w", err)
		}

		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

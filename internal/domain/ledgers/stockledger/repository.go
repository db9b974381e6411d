package stockledger

import (
	"context"

	"printledger/internal/core/id"
	"printledger/internal/core/types"
)

// Repository defines the interface for stock sheet persistence.
//
// Create must surface the (branch, date, user) unique constraint as
// apperror.CodeDuplicateEntry.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error

	GetByID(ctx context.Context, entryID id.ID) (*Entry, error)

	// GetByKey retrieves one user's sheet for a day.
	// Returns apperror.CodeNotFound when no entry exists.
	GetByKey(ctx context.Context, key Key) (*Entry, error)

	// ListByDay retrieves all sheets for a branch and day (one per user).
	ListByDay(ctx context.Context, branchID id.ID, date types.Date) ([]*Entry, error)

	// Update modifies an existing sheet (with optimistic locking).
	Update(ctx context.Context, entry *Entry) error
}

package jumbo

import (
	"context"

	"printledger/internal/core/id"
	"printledger/internal/core/types"
)

// Repository defines the interface for jumbo entry persistence.
//
// Create must surface the (branch, date, user) unique constraint as
// apperror.CodeDuplicateEntry.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error

	GetByID(ctx context.Context, entryID id.ID) (*Entry, error)

	// GetByKey retrieves one user's entry for a day.
	// Returns apperror.CodeNotFound when no entry exists.
	GetByKey(ctx context.Context, key Key) (*Entry, error)

	// ListByDay retrieves all entries for a branch and day.
	ListByDay(ctx context.Context, branchID id.ID, date types.Date) ([]*Entry, error)

	// Update modifies an existing entry (with optimistic locking).
	Update(ctx context.Context, entry *Entry) error
}

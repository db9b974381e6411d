package meterreading

import (
	"context"

	"printledger/internal/core/id"
	"printledger/internal/core/types"
)

// Repository defines the interface for MeterReading persistence.
//
// Create must surface the (branch, date, printer) unique constraint as
// apperror.CodeDuplicateEntry: the store index is the authoritative
// duplicate check, so concurrent submits race there and exactly one wins.
type Repository interface {
	Create(ctx context.Context, reading *MeterReading) error

	GetByID(ctx context.Context, readingID id.ID) (*MeterReading, error)

	// GetByKey retrieves the reading for a device on a given day.
	// Returns apperror.CodeNotFound when no entry exists.
	GetByKey(ctx context.Context, key Key) (*MeterReading, error)

	// ListByDay retrieves all readings for a branch and day, ordered by printer name.
	ListByDay(ctx context.Context, branchID id.ID, date types.Date) ([]*MeterReading, error)

	// ListByRange retrieves readings for a branch between two dates inclusive,
	// ordered by date then printer name. Feeds the range reports.
	ListByRange(ctx context.Context, branchID id.ID, from, to types.Date) ([]*MeterReading, error)

	// Update modifies an existing reading (with optimistic locking).
	Update(ctx context.Context, reading *MeterReading) error
}

package printer

import (
	"context"

	"printledger/internal/core/id"
	"printledger/internal/domain"
)

// Repository defines the interface for Printer persistence.
type Repository interface {
	domain.CatalogRepository[*Printer]

	// ListByBranch retrieves all active printers for a branch, ordered by name.
	// Used by meter-reading prefill, which needs the full device list.
	ListByBranch(ctx context.Context, branchID id.ID) ([]*Printer, error)
}

package stockitem

import (
	"context"

	"printledger/internal/core/id"
	"printledger/internal/domain"
)

// Repository defines the interface for StockItem persistence.
type Repository interface {
	domain.CatalogRepository[*StockItem]

	// ListByBranch retrieves all active stock items for a branch, ordered by name.
	ListByBranch(ctx context.Context, branchID id.ID) ([]*StockItem, error)
}

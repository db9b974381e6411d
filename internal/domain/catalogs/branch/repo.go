package branch

import (
	"context"

	"printledger/internal/domain"
)

// Repository defines the interface for Branch persistence.
type Repository interface {
	domain.CatalogRepository[*Branch]

	// GetByName retrieves a branch by exact name.
	GetByName(ctx context.Context, name string) (*Branch, error)
}

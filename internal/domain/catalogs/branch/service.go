package branch

import (
	"printledger/internal/core/tx"
	"printledger/internal/domain"
)

// Service provides business logic for the Branch catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Branch]
	repo Repository
}

// NewService creates a new Branch service.
func NewService(repo Repository, txm tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Branch]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "branch",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}

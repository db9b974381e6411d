package stockitem

import (
	"context"

	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/core/tx"
	"printledger/internal/domain"
	"printledger/internal/domain/catalogs/branch"
)

// Service provides business logic for the StockItem catalog.
type Service struct {
	*domain.CatalogService[*StockItem]
	repo     Repository
	branches branch.Repository
}

// NewService creates a new StockItem service.
func NewService(repo Repository, branches branch.Repository, txm tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*StockItem]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "stock item",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		branches:       branches,
	}

	base.Hooks().On(domain.BeforeCreate, svc.checkBranch)
	base.Hooks().On(domain.BeforeUpdate, svc.checkBranch)

	return svc
}

func (s *Service) checkBranch(ctx context.Context, si *StockItem) error {
	ok, err := s.branches.Exists(ctx, si.BranchID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewNotFound("branch", si.BranchID.String())
	}
	return nil
}

// ListByBranch retrieves all active stock items for a branch.
func (s *Service) ListByBranch(ctx context.Context, branchID id.ID) ([]*StockItem, error) {
	return s.repo.ListByBranch(ctx, branchID)
}

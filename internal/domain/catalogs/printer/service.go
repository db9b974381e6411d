package printer

import (
	"context"

	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/core/tx"
	"printledger/internal/domain"
	"printledger/internal/domain/catalogs/branch"
)

// Service provides business logic for the Printer catalog.
type Service struct {
	*domain.CatalogService[*Printer]
	repo     Repository
	branches branch.Repository
}

// NewService creates a new Printer service.
func NewService(repo Repository, branches branch.Repository, txm tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Printer]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "printer",
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

// checkBranch verifies the referenced branch exists.
func (s *Service) checkBranch(ctx context.Context, p *Printer) error {
	ok, err := s.branches.Exists(ctx, p.BranchID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewNotFound("branch", p.BranchID.String())
	}
	return nil
}

// ListByBranch retrieves all active printers for a branch.
func (s *Service) ListByBranch(ctx context.Context, branchID id.ID) ([]*Printer, error) {
	return s.repo.ListByBranch(ctx, branchID)
}

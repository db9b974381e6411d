package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"printledger/internal/domain/catalogs/branch"
	"printledger/internal/infrastructure/storage/postgres"
)

const branchTable = "branches"

// BranchRepo implements branch.Repository.
type BranchRepo struct {
	*BaseCatalogRepo[*branch.Branch]
}

// NewBranchRepo creates a new branch repository.
func NewBranchRepo(txm *postgres.TxManager) *BranchRepo {
	return &BranchRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*branch.Branch](
			txm,
			branchTable,
			postgres.ExtractDBColumns[branch.Branch](),
			func() *branch.Branch { return &branch.Branch{} },
		),
	}
}

// GetByName retrieves a branch by exact name.
func (r *BranchRepo) GetByName(ctx context.Context, name string) (*branch.Branch, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"name": name}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	return r.FindOne(ctx, q)
}

package handlers

import (
	"printledger/internal/domain"
	"printledger/internal/domain/catalogs/branch"
	"printledger/internal/infrastructure/http/v1/dto"
)

// NewBranchHandler creates a handler for the branch catalog.
// Branches are chain-wide, so no branch scope applies.
func NewBranchHandler(base *BaseHandler, service *domain.CatalogService[*branch.Branch]) *CatalogHandler[*branch.Branch, dto.CreateBranchRequest, dto.UpdateBranchRequest] {
	return NewCatalogHandler(base, CatalogHandlerConfig[*branch.Branch, dto.CreateBranchRequest, dto.UpdateBranchRequest]{
		Service:    service,
		EntityName: "branch",
		MapCreateDTO: func(req dto.CreateBranchRequest) (*branch.Branch, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdateBranchRequest, existing *branch.Branch) *branch.Branch {
			req.ApplyTo(existing)
			return existing
		},
	})
}

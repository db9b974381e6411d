package dto

import (
	"printledger/internal/domain/catalogs/branch"
)

// CreateBranchRequest adds a branch to the chain.
type CreateBranchRequest struct {
	Name    string  `json:"name" binding:"required"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

// ToEntity builds the domain entity.
func (r CreateBranchRequest) ToEntity() *branch.Branch {
	b := branch.NewBranch(r.Name)
	b.Address = r.Address
	b.Phone = r.Phone
	return b
}

// UpdateBranchRequest edits a branch.
type UpdateBranchRequest struct {
	Name     string  `json:"name" binding:"required"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
	Version  int     `json:"version" binding:"min=1"`
}

// ApplyTo applies the edit onto the stored entity.
func (r UpdateBranchRequest) ApplyTo(b *branch.Branch) {
	b.Name = r.Name
	b.Address = r.Address
	b.Phone = r.Phone
	if r.IsActive != nil {
		b.IsActive = *r.IsActive
	}
	b.Version = r.Version
}

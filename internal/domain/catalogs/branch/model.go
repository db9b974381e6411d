// Package branch provides the Branch catalog.
// Branches are the shop locations; every manager and every ledger
// document belongs to exactly one branch.
package branch

import (
	"context"

	"printledger/internal/core/entity"
)

// Branch represents a shop location.
type Branch struct {
	entity.Catalog

	// Address is the physical address
	Address *string `db:"address" json:"address,omitempty"`

	// Phone is the contact number
	Phone *string `db:"phone" json:"phone,omitempty"`

	// IsActive indicates if the branch is operational
	IsActive bool `db:"is_active" json:"isActive"`
}

// NewBranch creates a new Branch with required fields.
func NewBranch(name string) *Branch {
	return &Branch{
		Catalog:  entity.NewCatalog(name),
		IsActive: true,
	}
}

// Validate implements entity.Validatable interface.
func (b *Branch) Validate(ctx context.Context) error {
	return b.Catalog.Validate(ctx)
}

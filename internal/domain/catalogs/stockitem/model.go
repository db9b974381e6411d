// Package stockitem provides the StockItem catalog.
// Stock items are sellable goods tracked by the daily stock ledger:
// papers, laminate pouches, binding spirals and the like.
package stockitem

import (
	"context"

	"printledger/internal/core/apperror"
	"printledger/internal/core/entity"
	"printledger/internal/core/id"
	"printledger/internal/core/types"
)

// StockItem represents a sellable good at a branch.
type StockItem struct {
	entity.Catalog

	// BranchID is the owning branch (required)
	BranchID id.ID `db:"branch_id" json:"branchId"`

	// UnitPrice is the current selling price per unit
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	// IsActive indicates if the item is still sold
	IsActive bool `db:"is_active" json:"isActive"`
}

// NewStockItem creates a new StockItem with required fields.
func NewStockItem(name string, branchID id.ID, unitPrice types.Money) *StockItem {
	return &StockItem{
		Catalog:   entity.NewCatalog(name),
		BranchID:  branchID,
		UnitPrice: unitPrice,
		IsActive:  true,
	}
}

// Validate implements entity.Validatable interface.
func (si *StockItem) Validate(ctx context.Context) error {
	if err := si.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(si.BranchID) {
		return apperror.NewValidation("branch is required").
			WithDetail("field", "branchId")
	}

	if si.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unitPrice").
			WithDetail("value", si.UnitPrice.String())
	}

	return nil
}

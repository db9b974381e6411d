package dto

import (
	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/core/types"
	"printledger/internal/domain/catalogs/stockitem"
)

// CreateStockItemRequest adds a sellable item to a branch.
type CreateStockItemRequest struct {
	Name      string      `json:"name" binding:"required"`
	BranchID  string      `json:"branchId" binding:"required"`
	UnitPrice types.Money `json:"unitPrice"`
}

// ToEntity builds the domain entity.
func (r CreateStockItemRequest) ToEntity() (*stockitem.StockItem, error) {
	branchID, err := id.Parse(r.BranchID)
	if err != nil {
		return nil, apperror.NewValidation("invalid branchId").WithDetail("branchId", r.BranchID)
	}
	return stockitem.NewStockItem(r.Name, branchID, r.UnitPrice), nil
}

// UpdateStockItemRequest edits an item's name or price. Price changes
// only affect future ledger entries; recorded rows keep their frozen
// rates.
type UpdateStockItemRequest struct {
	Name      string      `json:"name" binding:"required"`
	UnitPrice types.Money `json:"unitPrice"`
	IsActive  *bool       `json:"isActive,omitempty"`
	Version   int         `json:"version" binding:"min=1"`
}

// ApplyTo applies the edit onto the stored entity.
func (r UpdateStockItemRequest) ApplyTo(it *stockitem.StockItem) {
	it.Name = r.Name
	it.UnitPrice = r.UnitPrice
	if r.IsActive != nil {
		it.IsActive = *r.IsActive
	}
	it.Version = r.Version
}

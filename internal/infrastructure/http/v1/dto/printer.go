package dto

import (
	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/core/types"
	"printledger/internal/domain/catalogs/printer"
)

// PriceEntryDTO is one size-tier price.
type PriceEntryDTO struct {
	SizeTier  string      `json:"sizeTier" binding:"required"`
	UnitPrice types.Money `json:"unitPrice"`
}

// CreatePrinterRequest registers a device with its price list.
type CreatePrinterRequest struct {
	Name       string          `json:"name" binding:"required"`
	DeviceCode string          `json:"deviceCode" binding:"required"`
	BranchID   string          `json:"branchId" binding:"required"`
	Prices     []PriceEntryDTO `json:"prices" binding:"required"`
}

// ToEntity builds the domain entity.
func (r CreatePrinterRequest) ToEntity() (*printer.Printer, error) {
	branchID, err := id.Parse(r.BranchID)
	if err != nil {
		return nil, apperror.NewValidation("invalid branchId").WithDetail("branchId", r.BranchID)
	}
	p := printer.NewPrinter(r.Name, r.DeviceCode, branchID, toPriceList(r.Prices))
	return p, nil
}

// UpdatePrinterRequest edits a device's name or prices.
type UpdatePrinterRequest struct {
	Name     string          `json:"name" binding:"required"`
	Prices   []PriceEntryDTO `json:"prices" binding:"required"`
	IsActive *bool           `json:"isActive,omitempty"`
	Version  int             `json:"version" binding:"min=1"`
}

// ApplyTo applies the edit onto the stored entity. Price changes only
// affect future ledger entries; recorded rows keep their frozen rates.
func (r UpdatePrinterRequest) ApplyTo(p *printer.Printer) {
	p.Name = r.Name
	p.Prices = toPriceList(r.Prices)
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	p.Version = r.Version
}

func toPriceList(entries []PriceEntryDTO) printer.PriceList {
	prices := make(printer.PriceList, 0, len(entries))
	for _, e := range entries {
		prices = append(prices, printer.PriceEntry{
			SizeTier:  printer.SizeTier(e.SizeTier),
			UnitPrice: e.UnitPrice,
		})
	}
	return prices
}

// Package printer provides the Printer (device) catalog.
// Each device belongs to a branch and carries an ordered price list,
// one entry per size tier. Meter-reading entries freeze these prices at
// entry time, so later catalog edits never rewrite recorded amounts.
package printer

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"printledger/internal/core/apperror"
	"printledger/internal/core/entity"
	"printledger/internal/core/id"
	"printledger/internal/core/types"
)

// SizeTier names a priced counter band on a device.
type SizeTier string

const (
	TierTotalLarge SizeTier = "total_large"
	TierTotalSmall SizeTier = "total_small"
	TierBWScan     SizeTier = "bw_scan"
	TierColourScan SizeTier = "colour_scan"
	TierLongSheet  SizeTier = "long_sheet"
)

// DefaultTiers returns the standard tier set for a new device.
func DefaultTiers() []SizeTier {
	return []SizeTier{TierTotalLarge, TierTotalSmall, TierBWScan, TierColourScan, TierLongSheet}
}

// PriceEntry is one size tier's per-copy price.
type PriceEntry struct {
	SizeTier  SizeTier    `json:"sizeTier"`
	UnitPrice types.Money `json:"unitPrice"`
}

// PriceList is an ordered price list, stored as JSONB.
type PriceList []PriceEntry

// Price returns the unit price for a tier.
func (pl PriceList) Price(tier SizeTier) (types.Money, bool) {
	for _, p := range pl {
		if p.SizeTier == tier {
			return p.UnitPrice, true
		}
	}
	return types.Zero(), false
}

// Value implements driver.Valuer (JSONB encoding).
func (pl PriceList) Value() (driver.Value, error) {
	return json.Marshal(pl)
}

// Scan implements sql.Scanner.
func (pl *PriceList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*pl = nil
		return nil
	case []byte:
		return json.Unmarshal(v, pl)
	case string:
		return json.Unmarshal([]byte(v), pl)
	default:
		return fmt.Errorf("cannot scan %T into printer.PriceList", src)
	}
}

// Printer represents a copying or printing device at a branch.
type Printer struct {
	entity.Catalog

	// DeviceCode is a human-readable identifier (unique within branch)
	DeviceCode string `db:"device_code" json:"deviceCode"`

	// BranchID is the owning branch (required)
	BranchID id.ID `db:"branch_id" json:"branchId"`

	// Prices is the ordered per-tier price list
	Prices PriceList `db:"prices" json:"prices"`

	// IsActive indicates if the device is in service
	IsActive bool `db:"is_active" json:"isActive"`
}

// NewPrinter creates a new Printer with required fields.
func NewPrinter(name, deviceCode string, branchID id.ID, prices PriceList) *Printer {
	return &Printer{
		Catalog:    entity.NewCatalog(name),
		DeviceCode: deviceCode,
		BranchID:   branchID,
		Prices:     prices,
		IsActive:   true,
	}
}

// Validate implements entity.Validatable interface.
func (p *Printer) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.BranchID) {
		return apperror.NewValidation("branch is required").
			WithDetail("field", "branchId")
	}

	if len(p.Prices) == 0 {
		return apperror.NewValidation("device needs at least one priced tier").
			WithDetail("field", "prices")
	}

	seen := make(map[SizeTier]struct{}, len(p.Prices))
	for i, entry := range p.Prices {
		if entry.SizeTier == "" {
			return apperror.NewValidation("size tier is required").
				WithDetail("row", i)
		}
		if _, dup := seen[entry.SizeTier]; dup {
			return apperror.NewValidation("size tier priced twice").
				WithDetail("row", i).
				WithDetail("sizeTier", string(entry.SizeTier))
		}
		seen[entry.SizeTier] = struct{}{}

		if entry.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price cannot be negative").
				WithDetail("sizeTier", string(entry.SizeTier)).
				WithDetail("value", entry.UnitPrice.String())
		}
	}

	return nil
}

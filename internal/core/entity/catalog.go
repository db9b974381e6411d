package entity

import (
	"context"

	"printledger/internal/core/apperror"
)

// Catalog is the base type for reference data: branches, printers, stock items.
// Catalog rows carry configuration (names, prices) and are long-lived;
// ledger documents reference them but freeze prices at entry time.
type Catalog struct {
	BaseEntity

	// Name is the display name (unique within its catalog)
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(name string) Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(),
		Name:       name,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

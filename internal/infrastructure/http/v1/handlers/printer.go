package handlers

import (
	"printledger/internal/core/id"
	"printledger/internal/domain"
	"printledger/internal/domain/catalogs/printer"
	"printledger/internal/infrastructure/http/v1/dto"
)

// NewPrinterHandler creates a handler for the printer catalog.
func NewPrinterHandler(base *BaseHandler, service *domain.CatalogService[*printer.Printer]) *CatalogHandler[*printer.Printer, dto.CreatePrinterRequest, dto.UpdatePrinterRequest] {
	return NewCatalogHandler(base, CatalogHandlerConfig[*printer.Printer, dto.CreatePrinterRequest, dto.UpdatePrinterRequest]{
		Service:      service,
		EntityName:   "printer",
		MapCreateDTO: dto.CreatePrinterRequest.ToEntity,
		MapUpdateDTO: func(req dto.UpdatePrinterRequest, existing *printer.Printer) *printer.Printer {
			req.ApplyTo(existing)
			return existing
		},
		BranchOf: func(p *printer.Printer) id.ID { return p.BranchID },
	})
}

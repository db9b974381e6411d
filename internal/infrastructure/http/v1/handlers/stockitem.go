package handlers

import (
	"printledger/internal/core/id"
	"printledger/internal/domain"
	"printledger/internal/domain/catalogs/stockitem"
	"printledger/internal/infrastructure/http/v1/dto"
)

// NewStockItemHandler creates a handler for the stock item catalog.
func NewStockItemHandler(base *BaseHandler, service *domain.CatalogService[*stockitem.StockItem]) *CatalogHandler[*stockitem.StockItem, dto.CreateStockItemRequest, dto.UpdateStockItemRequest] {
	return NewCatalogHandler(base, CatalogHandlerConfig[*stockitem.StockItem, dto.CreateStockItemRequest, dto.UpdateStockItemRequest]{
		Service:      service,
		EntityName:   "stock item",
		MapCreateDTO: dto.CreateStockItemRequest.ToEntity,
		MapUpdateDTO: func(req dto.UpdateStockItemRequest, existing *stockitem.StockItem) *stockitem.StockItem {
			req.ApplyTo(existing)
			return existing
		},
		BranchOf: func(it *stockitem.StockItem) id.ID { return it.BranchID },
	})
}

// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
)

// CatalogRouteHandler defines the interface for catalog handlers.
// All catalog handlers must implement these methods.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	SetDeletionMark(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
// This eliminates the need to manually wire up routes for each catalog.
// Hard delete is intentionally absent: ledger entries keep references
// to catalog rows, so catalogs only carry a deletion mark.
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.POST("/:id/deletion-mark", handler.SetDeletionMark)
}

// LedgerRouteHandler defines the interface for daily ledger handlers.
type LedgerRouteHandler interface {
	Record(c *gin.Context)
	ListByDay(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
}

// RegisterLedgerRoutes registers the shared daily-ledger routes.
func RegisterLedgerRoutes(group *gin.RouterGroup, handler LedgerRouteHandler) {
	group.POST("", handler.Record)
	group.GET("", handler.ListByDay)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
}

// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"printledger/internal/domain/auth"
	"printledger/internal/domain/catalogs/branch"
	"printledger/internal/domain/catalogs/printer"
	"printledger/internal/domain/catalogs/stockitem"
	"printledger/internal/domain/ledgers/jumbo"
	"printledger/internal/domain/ledgers/meterreading"
	"printledger/internal/domain/ledgers/miscrevenue"
	"printledger/internal/domain/ledgers/stockledger"
	"printledger/internal/domain/reports"
	"printledger/internal/infrastructure/http/v1/handlers"
	"printledger/internal/infrastructure/http/v1/middleware"
	"printledger/internal/infrastructure/storage/postgres"
	"printledger/internal/infrastructure/storage/postgres/catalog_repo"
	"printledger/internal/infrastructure/storage/postgres/ledger_repo"
	"printledger/internal/infrastructure/storage/postgres/report_repo"
	"printledger/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// TxManager runs repository calls inside transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// TokenValidator for JWT validation
	TokenValidator middleware.TokenValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, cfg)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.TokenValidator))

		registerCatalogRoutes(protected, cfg)
		registerLedgerRoutes(protected, cfg)
		registerReportRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	public := rg.Group("/auth")
	{
		public.POST("/login", authHandler.Login)
		public.POST("/password-reset", authHandler.PasswordReset)
	}

	private := rg.Group("/auth")
	private.Use(middleware.Auth(cfg.TokenValidator))
	{
		private.GET("/profile", authHandler.Profile)
		private.POST("/change-password", authHandler.ChangePassword)
		private.GET("/managers", authHandler.ListManagers)
		private.POST("/managers", middleware.RequireAdmin(), authHandler.CreateManager)
	}
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	branchRepo := catalog_repo.NewBranchRepo(cfg.TxManager)

	// --- BRANCHES (admin only: the chain layout is head office business) ---
	{
		service := branch.NewService(branchRepo, cfg.TxManager)
		handler := handlers.NewBranchHandler(baseHandler, service.CatalogService)
		group := catalogs.Group("/branches")
		group.Use(middleware.RequireAdmin())
		RegisterCatalogRoutes(group, handler)
	}

	// --- PRINTERS ---
	{
		repo := catalog_repo.NewPrinterRepo(cfg.TxManager)
		service := printer.NewService(repo, branchRepo, cfg.TxManager)
		handler := handlers.NewPrinterHandler(baseHandler, service.CatalogService)
		RegisterCatalogRoutes(catalogs.Group("/printers"), handler)
	}

	// --- STOCK ITEMS ---
	{
		repo := catalog_repo.NewStockItemRepo(cfg.TxManager)
		service := stockitem.NewService(repo, branchRepo, cfg.TxManager)
		handler := handlers.NewStockItemHandler(baseHandler, service.CatalogService)
		RegisterCatalogRoutes(catalogs.Group("/stock-items"), handler)
	}
}

// registerLedgerRoutes registers the daily ledger endpoints.
func registerLedgerRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	ledgers := rg.Group("/ledgers")
	baseHandler := handlers.NewBaseHandler()

	// --- METER READINGS ---
	{
		printerRepo := catalog_repo.NewPrinterRepo(cfg.TxManager)
		repo := ledger_repo.NewMeterReadingRepo(cfg.TxManager)
		service := meterreading.NewService(repo, printerRepo, cfg.TxManager)
		handler := handlers.NewMeterReadingHandler(baseHandler, service)

		group := ledgers.Group("/meter-readings")
		group.POST("", handler.Record)
		group.GET("", handler.ListByDay)
		group.GET("/prefill", handler.Prefill)
		group.PUT("/edits", handler.ApplyEdits)
		group.GET("/:id", handler.Get)
	}

	// --- STOCK SHEETS ---
	{
		itemRepo := catalog_repo.NewStockItemRepo(cfg.TxManager)
		repo := ledger_repo.NewStockLedgerRepo(cfg.TxManager)
		service := stockledger.NewService(repo, itemRepo, cfg.TxManager)
		handler := handlers.NewStockLedgerHandler(baseHandler, service)

		group := ledgers.Group("/stock")
		group.GET("/prefill", handler.Prefill)
		RegisterLedgerRoutes(group, handler)
	}

	// --- JUMBO SHEETS ---
	{
		repo := ledger_repo.NewJumboRepo(cfg.TxManager)
		service := jumbo.NewService(repo, cfg.TxManager)
		handler := handlers.NewJumboHandler(baseHandler, service)
		RegisterLedgerRoutes(ledgers.Group("/jumbo"), handler)
	}

	// --- MISC REVENUE ---
	{
		repo := ledger_repo.NewMiscRevenueRepo(cfg.TxManager)
		service := miscrevenue.NewService(repo, cfg.TxManager)
		handler := handlers.NewMiscRevenueHandler(baseHandler, service)

		group := ledgers.Group("/revenue")
		group.GET("/template", handler.Template)
		RegisterLedgerRoutes(group, handler)
	}
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	reportsGroup := rg.Group("/reports")
	baseHandler := handlers.NewBaseHandler()

	reportRepo := report_repo.NewReportRepo(cfg.TxManager)
	printerRepo := catalog_repo.NewPrinterRepo(cfg.TxManager)
	readingRepo := ledger_repo.NewMeterReadingRepo(cfg.TxManager)
	readingService := meterreading.NewService(readingRepo, printerRepo, cfg.TxManager)
	reportService := reports.NewService(reportRepo, readingService)
	reportHandler := handlers.NewReportsHandler(baseHandler, reportService)

	reportsGroup.GET("/day", reportHandler.Day)
	reportsGroup.GET("/day/export", reportHandler.ExportDay)
	reportsGroup.GET("/range", reportHandler.Range)
}

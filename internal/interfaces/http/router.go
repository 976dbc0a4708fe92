package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/copperwirepro/ledger-api/internal/application/auth"
	"github.com/copperwirepro/ledger-api/internal/application/khata"
	"github.com/copperwirepro/ledger-api/internal/application/ledger"
	"github.com/copperwirepro/ledger-api/internal/application/reports"
	"github.com/copperwirepro/ledger-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	LedgerUC  *ledger.UseCase
	KhataUC   *khata.UseCase
	ReportsUC *reports.UseCase
	AuthUC    *auth.UseCase
	JWTSecret string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (require a Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Stock entries
	entries := protected.Group("/entries")
	entryHandler := NewEntryHandler(deps.LedgerUC)
	entries.Post("/", entryHandler.Create)
	entries.Get("/", entryHandler.List)
	entries.Get("/:id", entryHandler.GetByID)
	entries.Get("/:id/available", entryHandler.GetAvailable)
	entries.Get("/:id/transactions", entryHandler.ListTransactions)

	// Ledger mutations
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	entries.Post("/:id/sell", ledgerHandler.Sell)
	entries.Post("/:id/return", ledgerHandler.Return)
	entries.Post("/:id/delete-partial", RequireRole(entity.RoleAdmin), ledgerHandler.DeletePartial)

	transactions := protected.Group("/transactions")
	transactions.Post("/:id/undo", ledgerHandler.UndoSale)

	// Khata
	khataGroup := protected.Group("/khata")
	khataHandler := NewKhataHandler(deps.KhataUC)
	khataGroup.Post("/customers", khataHandler.CreateCustomer)
	khataGroup.Get("/customers", khataHandler.ListCustomers)
	khataGroup.Get("/customers/:id/statement", khataHandler.Statement)
	khataGroup.Get("/customers/:id/statement.pdf", khataHandler.StatementPDF)
	khataGroup.Post("/sales", khataHandler.RecordSale)

	// Reports
	reportGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportGroup.Get("/stock-summary", reportHandler.StockSummary)
	reportGroup.Get("/khata-balances", reportHandler.KhataBalances)
}

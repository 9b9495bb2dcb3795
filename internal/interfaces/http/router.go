package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockpos-api/internal/application/inventory"
	"github.com/jhoicas/stockpos-api/internal/application/reports"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TransactionUC *inventory.TransactionUseCase
	ReportUC      *reports.ReportUseCase
	ExportUC      *reports.ExportUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Ledger de transacciones (protegido)
	txHandler := NewTransactionHandler(deps.TransactionUC)
	transactions := protected.Group("/transactions")
	transactions.Post("/", txHandler.Create)
	transactions.Get("/", txHandler.List)
	transactions.Get("/:id", txHandler.GetByID)
	transactions.Delete("/:id", txHandler.Delete)

	// Ventas multi-ítem (protegido)
	protected.Post("/sales", txHandler.CreateSale)

	// Recuperación de stock (solo admin)
	protected.Post("/products/:id/rebuild-stock", RequireRole("admin"), txHandler.RebuildStock)

	// Reportes (protegido)
	reportHandler := NewReportHandler(deps.ReportUC, deps.ExportUC)
	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/daily-sales", reportHandler.DailySales)
	reportsGroup.Get("/monthly-sales", reportHandler.MonthlySales)
	reportsGroup.Get("/inventory-status", reportHandler.InventoryStatus)
	reportsGroup.Get("/stock-report", reportHandler.StockReport)
}

package dto

import "github.com/shopspring/decimal"

// DailySalesDTO respuesta de GET /api/reports/daily-sales.
type DailySalesDTO struct {
	Date   string          `json:"date"` // YYYY-MM-DD
	Totals DailyTotals     `json:"totals"`
	Items  []SalesLineItem `json:"items"`
}

// DailyTotals agregados del día.
type DailyTotals struct {
	TotalSales   decimal.Decimal `json:"total_sales"`
	Transactions int             `json:"transactions"`
	ItemsSold    int             `json:"items_sold"`
}

// SalesLineItem renglón por producto del reporte diario.
// Price es el precio vigente al momento de la consulta, no al de la venta.
type SalesLineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// MonthlySalesDTO respuesta de GET /api/reports/monthly-sales.
type MonthlySalesDTO struct {
	Month  int           `json:"month"`
	Year   int           `json:"year"`
	Totals MonthlyTotals `json:"totals"`
	Daily  []DailyBucket `json:"daily"`
}

// MonthlyTotals agregados del mes.
type MonthlyTotals struct {
	TotalSales   decimal.Decimal `json:"total_sales"`
	Transactions int             `json:"transactions"`
}

// DailyBucket un día del desglose mensual, orden ascendente.
type DailyBucket struct {
	Day          string          `json:"day"` // YYYY-MM-DD
	Sales        decimal.Decimal `json:"sales"`
	Transactions int             `json:"transactions"`
}

// InventoryStatusRow una fila de GET /api/reports/inventory-status.
type InventoryStatusRow struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Category     string `json:"category,omitempty"`
	Stock        int    `json:"stock"`
	InitialStock int    `json:"initial_stock"`
	Status       string `json:"status"` // OK | LOW | OUT
}

// StockReportRow una fila de GET /api/reports/stock-report. A diferencia del
// estado de inventario, la agregación in/out puede restringirse a una ventana
// de fechas y no clasifica estado.
type StockReportRow struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Category  string `json:"category,omitempty"`
	Initial   int    `json:"initial"`
	StockedIn int    `json:"stocked_in"`
	Sold      int    `json:"sold"`
	Current   int    `json:"current"`
}

// RebuildStockResult respuesta de POST /api/products/:id/rebuild-stock.
type RebuildStockResult struct {
	ProductID   string `json:"product_id"`
	OldQuantity int    `json:"old_quantity"`
	NewQuantity int    `json:"new_quantity"`
	Drift       int    `json:"drift"` // new - old; 0 = ledger y cantidad coherentes
}

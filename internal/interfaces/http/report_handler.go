package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockpos-api/internal/application/dto"
	"github.com/jhoicas/stockpos-api/internal/application/reports"
)

// ReportHandler maneja las peticiones HTTP de reportes (protegido).
type ReportHandler struct {
	reports *reports.ReportUseCase
	exports *reports.ExportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(r *reports.ReportUseCase, e *reports.ExportUseCase) *ReportHandler {
	return &ReportHandler{reports: r, exports: e}
}

// DailySales ventas del día. date es obligatorio; con format=pdf devuelve el
// PDF descargable.
//
// GET /api/reports/daily-sales?date=YYYY-MM-DD&format=
func (h *ReportHandler) DailySales(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date es obligatorio (YYYY-MM-DD)"})
	}

	if c.Query("format") == "pdf" {
		data, err := h.exports.DailySalesPDF(c.Context(), date)
		if err != nil {
			return mapDomainError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="daily-sales-%s.pdf"`, date))
		return c.Send(data)
	}

	report, err := h.reports.DailySales(c.Context(), date)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(report)
}

// MonthlySales desglose diario y totales del mes. month y year son
// obligatorios; si faltan llegan en cero y el caso de uso los rechaza.
//
// GET /api/reports/monthly-sales?month=&year=
func (h *ReportHandler) MonthlySales(c *fiber.Ctx) error {
	month := c.QueryInt("month", 0)
	year := c.QueryInt("year", 0)

	report, err := h.reports.MonthlySales(c.Context(), month, year)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(report)
}

// InventoryStatus estado OK/LOW/OUT por producto, filtrable por nombre o SKU.
//
// GET /api/reports/inventory-status?search=
func (h *ReportHandler) InventoryStatus(c *fiber.Ctx) error {
	rows, err := h.reports.InventoryStatus(c.Context(), c.Query("search"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"count": len(rows), "data": rows})
}

// StockReport balance inicial/entradas/salidas/actual por producto, con
// ventana de fechas opcional. Con format=xlsx devuelve el libro Excel.
//
// GET /api/reports/stock-report?start_date=&end_date=&format=
func (h *ReportHandler) StockReport(c *fiber.Ctx) error {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	if c.Query("format") == "xlsx" {
		data, err := h.exports.StockReportXLSX(c.Context(), startDate, endDate)
		if err != nil {
			return mapDomainError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="stock-report-%s.xlsx"`, time.Now().Format("20060102_150405")))
		return c.Send(data)
	}

	rows, err := h.reports.StockReport(c.Context(), startDate, endDate)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"count": len(rows), "data": rows})
}

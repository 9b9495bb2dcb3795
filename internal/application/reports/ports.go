package reports

import (
	"context"

	"github.com/jhoicas/stockpos-api/internal/application/dto"
)

// DailySalesPDFGenerator puerto de salida: renderiza el reporte de ventas
// diarias como PDF. La implementación vive en infraestructura.
type DailySalesPDFGenerator interface {
	GenerateDailySalesPDF(ctx context.Context, report *dto.DailySalesDTO) ([]byte, error)
}

// StockReportXLSXGenerator puerto de salida: exporta el reporte de stock como
// libro Excel.
type StockReportXLSXGenerator interface {
	GenerateStockReportXLSX(ctx context.Context, rows []dto.StockReportRow) ([]byte, error)
}

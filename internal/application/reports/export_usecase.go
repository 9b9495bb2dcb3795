package reports

import (
	"context"
	"fmt"
)

// ExportUseCase produce las variantes descargables de los reportes (PDF, XLSX).
// Compone el caso de uso de consulta con los generadores inyectados.
type ExportUseCase struct {
	reports *ReportUseCase
	pdfGen  DailySalesPDFGenerator
	xlsxGen StockReportXLSXGenerator
}

// NewExportUseCase construye el caso de uso inyectando los generadores.
func NewExportUseCase(reports *ReportUseCase, pdfGen DailySalesPDFGenerator, xlsxGen StockReportXLSXGenerator) *ExportUseCase {
	return &ExportUseCase{reports: reports, pdfGen: pdfGen, xlsxGen: xlsxGen}
}

// DailySalesPDF calcula el reporte de ventas del día y lo renderiza como PDF.
func (uc *ExportUseCase) DailySalesPDF(ctx context.Context, date string) ([]byte, error) {
	report, err := uc.reports.DailySales(ctx, date)
	if err != nil {
		return nil, err
	}
	data, err := uc.pdfGen.GenerateDailySalesPDF(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("generar PDF de ventas diarias: %w", err)
	}
	return data, nil
}

// StockReportXLSX calcula el reporte de stock (ventana opcional) y lo exporta
// como libro Excel.
func (uc *ExportUseCase) StockReportXLSX(ctx context.Context, startDate, endDate string) ([]byte, error) {
	rows, err := uc.reports.StockReport(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}
	data, err := uc.xlsxGen.GenerateStockReportXLSX(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("generar XLSX de stock: %w", err)
	}
	return data, nil
}

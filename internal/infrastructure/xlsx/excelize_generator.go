// Package xlsx exporta reportes como libros Excel usando excelize.
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockpos-api/internal/application/dto"
	appreports "github.com/jhoicas/stockpos-api/internal/application/reports"
)

var _ appreports.StockReportXLSXGenerator = (*ExcelizeGenerator)(nil)

// ExcelizeGenerator implementa reports.StockReportXLSXGenerator.
type ExcelizeGenerator struct{}

// NewExcelizeGenerator construye el generador.
func NewExcelizeGenerator() *ExcelizeGenerator { return &ExcelizeGenerator{} }

// GenerateStockReportXLSX escribe una fila por producto con el balance
// inicial/entradas/salidas/actual y devuelve los bytes del .xlsx.
func (g *ExcelizeGenerator) GenerateStockReportXLSX(_ context.Context, rows []dto.StockReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"product_id",
		"name",
		"sku",
		"category",
		"initial_stock",
		"stocked_in",
		"sold",
		"current_stock",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: escribir cabecera: %w", err)
	}

	rowNum := 2
	for _, r := range rows {
		excelRow := []interface{}{
			r.ProductID,
			r.Name,
			r.SKU,
			r.Category,
			r.Initial,
			r.StockedIn,
			r.Sold,
			r.Current,
		}
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return nil, fmt.Errorf("xlsx: calcular celda: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("xlsx: escribir fila %d: %w", rowNum, err)
		}
		rowNum++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}

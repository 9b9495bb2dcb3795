// Package reports contiene los casos de uso de reportes: consumidores de solo
// lectura del ledger. No hay caché: cada reporte se recalcula bajo demanda
// componiendo las funciones puras del motor de reconciliación.
package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpos-api/internal/application/dto"
	"github.com/jhoicas/stockpos-api/internal/domain"
	"github.com/jhoicas/stockpos-api/internal/domain/entity"
	"github.com/jhoicas/stockpos-api/internal/domain/inventory"
	"github.com/jhoicas/stockpos-api/internal/domain/repository"
)

// ReportUseCase genera los reportes de ventas y de inventario.
//
// La zona horaria es una dependencia explícita: todos los límites de día y de
// mes se calculan en ella, nunca en la zona del proceso, para que las ventanas
// sean deterministas y testeables.
type ReportUseCase struct {
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	loc         *time.Location
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(productRepo repository.ProductRepository, txRepo repository.TransactionRepository, loc *time.Location) *ReportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportUseCase{productRepo: productRepo, txRepo: txRepo, loc: loc}
}

// DailySales calcula las ventas del día [date 00:00, date+1 00:00).
// date en formato YYYY-MM-DD. El precio usado es el vigente al consultar.
func (uc *ReportUseCase) DailySales(ctx context.Context, date string) (*dto.DailySalesDTO, error) {
	start, err := time.ParseInLocation("2006-01-02", date, uc.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: date debe ser YYYY-MM-DD", domain.ErrInvalidInput)
	}
	end := start.AddDate(0, 0, 1)

	txs, err := uc.txRepo.ListInRange(&start, &end, entity.TxTypeOut)
	if err != nil {
		return nil, err
	}
	products, err := uc.productIndex()
	if err != nil {
		return nil, err
	}

	report := &dto.DailySalesDTO{
		Date:   start.Format("2006-01-02"),
		Totals: dto.DailyTotals{TotalSales: decimal.Zero},
		Items:  []dto.SalesLineItem{},
	}

	// Un renglón por producto: cantidad acumulada y subtotal qty × precio.
	qtyByProduct := make(map[string]int)
	for _, tx := range txs {
		qtyByProduct[tx.ProductID] += tx.Quantity
		report.Totals.Transactions++
		report.Totals.ItemsSold += tx.Quantity
	}
	for productID, qty := range qtyByProduct {
		item := dto.SalesLineItem{
			ProductID: productID,
			Qty:       qty,
			Price:     decimal.Zero,
			Subtotal:  decimal.Zero,
		}
		if p, ok := products[productID]; ok {
			item.Name = p.Name
			item.Price = p.Price
			item.Subtotal = p.Price.Mul(decimal.NewFromInt(int64(qty)))
		}
		report.Totals.TotalSales = report.Totals.TotalSales.Add(item.Subtotal)
		report.Items = append(report.Items, item)
	}
	sort.Slice(report.Items, func(i, j int) bool { return report.Items[i].Name < report.Items[j].Name })

	return report, nil
}

// MonthlySales calcula el desglose diario y los totales del mes
// [primero-del-mes, primero-del-mes-siguiente). month en 1-12.
func (uc *ReportUseCase) MonthlySales(ctx context.Context, month, year int) (*dto.MonthlySalesDTO, error) {
	if month < 1 || month > 12 || year <= 0 {
		return nil, fmt.Errorf("%w: month (1-12) y year son obligatorios", domain.ErrInvalidInput)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.loc)
	end := start.AddDate(0, 1, 0)

	txs, err := uc.txRepo.ListInRange(&start, &end, entity.TxTypeOut)
	if err != nil {
		return nil, err
	}
	products, err := uc.productIndex()
	if err != nil {
		return nil, err
	}

	prices := make(map[string]decimal.Decimal, len(products))
	for id, p := range products {
		prices[id] = p.Price
	}
	buckets := inventory.BucketByDay(txs, prices, uc.loc)

	report := &dto.MonthlySalesDTO{
		Month:  month,
		Year:   year,
		Totals: dto.MonthlyTotals{TotalSales: decimal.Zero},
		Daily:  make([]dto.DailyBucket, 0, len(buckets)),
	}
	for _, b := range buckets {
		report.Totals.TotalSales = report.Totals.TotalSales.Add(b.Sales)
		report.Totals.Transactions += b.Transactions
		report.Daily = append(report.Daily, dto.DailyBucket{Day: b.Day, Sales: b.Sales, Transactions: b.Transactions})
	}
	return report, nil
}

// InventoryStatus devuelve una fila por producto (opcionalmente filtrado por
// substring de nombre/SKU, case-insensitive) con stock inicial y actual
// derivados del historial completo y el estado OK/LOW/OUT.
func (uc *ReportUseCase) InventoryStatus(ctx context.Context, search string) ([]dto.InventoryStatusRow, error) {
	products, err := uc.productRepo.List(search)
	if err != nil {
		return nil, err
	}
	txs, err := uc.txRepo.ListInRange(nil, nil, "")
	if err != nil {
		return nil, err
	}
	totals := inventory.AggregateByProduct(txs)

	rows := make([]dto.InventoryStatusRow, 0, len(products))
	for _, p := range products {
		t := totals[p.ID]
		initial := inventory.DeriveInitialStock(p, t.In, t.Out)
		current := inventory.DeriveCurrentStock(p, t.In, t.Out)
		rows = append(rows, dto.InventoryStatusRow{
			ProductID:    p.ID,
			Name:         p.Name,
			SKU:          p.SKU,
			Category:     p.Category,
			Stock:        current,
			InitialStock: initial,
			Status:       string(inventory.ClassifyStatus(current, initial)),
		})
	}
	return rows, nil
}

// StockReport devuelve inicial/entradas/salidas/actual por producto, con la
// agregación in/out restringida a una ventana opcional de fechas (abierta por
// cualquiera de los dos lados; ambas vacías = todo el historial). Incluye
// todos los productos del catálogo, sin filtro de búsqueda.
func (uc *ReportUseCase) StockReport(ctx context.Context, startDate, endDate string) ([]dto.StockReportRow, error) {
	var from, to *time.Time
	if startDate != "" {
		s, err := time.ParseInLocation("2006-01-02", startDate, uc.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: start_date debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
		from = &s
	}
	if endDate != "" {
		e, err := time.ParseInLocation("2006-01-02", endDate, uc.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: end_date debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
		// Inclusivo hasta el final del día: límite superior exclusivo al día siguiente.
		eEnd := e.AddDate(0, 0, 1)
		to = &eEnd
	}

	products, err := uc.productRepo.List("")
	if err != nil {
		return nil, err
	}
	txs, err := uc.txRepo.ListInRange(from, to, "")
	if err != nil {
		return nil, err
	}
	totals := inventory.AggregateByProduct(txs)

	rows := make([]dto.StockReportRow, 0, len(products))
	for _, p := range products {
		t := totals[p.ID]
		initial := inventory.DeriveInitialStock(p, t.In, t.Out)
		rows = append(rows, dto.StockReportRow{
			ProductID: p.ID,
			Name:      p.Name,
			SKU:       p.SKU,
			Category:  p.Category,
			Initial:   initial,
			StockedIn: t.In,
			Sold:      t.Out,
			Current:   initial + t.In - t.Out,
		})
	}
	return rows, nil
}

// productIndex devuelve el catálogo completo indexado por ID.
func (uc *ReportUseCase) productIndex() (map[string]*entity.Product, error) {
	products, err := uc.productRepo.List("")
	if err != nil {
		return nil, err
	}
	index := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return index, nil
}

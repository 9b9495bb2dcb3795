package reports_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpos-api/internal/application/dto"
	"github.com/jhoicas/stockpos-api/internal/application/reports"
	"github.com/jhoicas/stockpos-api/internal/domain"
	"github.com/jhoicas/stockpos-api/internal/domain/entity"
	"github.com/jhoicas/stockpos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de lectura: los reportes solo consumen List y ListInRange.
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct{ products []*entity.Product }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error)      { return r.find(id), nil }
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.find(id), nil }
func (r *fakeProductRepo) UpdateQuantity(string, int) error                { return nil }

func (r *fakeProductRepo) find(id string) *entity.Product {
	for _, p := range r.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *fakeProductRepo) List(search string) ([]*entity.Product, error) {
	needle := strings.ToLower(search)
	var out []*entity.Product
	for _, p := range r.products {
		if needle == "" ||
			strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.SKU), needle) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeTxRepo struct{ txs []*entity.Transaction }

func (r *fakeTxRepo) Create(*entity.Transaction) error { return nil }

func (r *fakeTxRepo) GetByID(string) (*entity.Transaction, error) { return nil, nil }

func (r *fakeTxRepo) Delete(string) error { return nil }

func (r *fakeTxRepo) ListByProduct(string) ([]*entity.Transaction, error) { return nil, nil }

func (r *fakeTxRepo) List(repository.TransactionFilter, int, int) ([]*entity.Transaction, int, error) {
	return nil, 0, nil
}

func (r *fakeTxRepo) ListInRange(from, to *time.Time, txType string) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range r.txs {
		if txType != "" && tx.Type != txType {
			continue
		}
		if from != nil && tx.Date.Before(*from) {
			continue
		}
		if to != nil && !tx.Date.Before(*to) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func intPtr(n int) *int { return &n }

func product(name string, qty int, initial *int, price int64) *entity.Product {
	return &entity.Product{
		ID: uuid.NewString(), Name: name, SKU: "SKU-" + strings.ToUpper(name),
		Quantity: qty, InitialStock: initial, Price: decimal.NewFromInt(price),
	}
}

func outTx(productID string, qty int, date time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID: uuid.NewString(), ProductID: productID, Type: entity.TxTypeOut,
		Quantity: qty, Date: date,
	}
}

func inTx(productID string, qty int, date time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID: uuid.NewString(), ProductID: productID, Type: entity.TxTypeIn,
		Quantity: qty, Date: date,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// DailySales
// ──────────────────────────────────────────────────────────────────────────────

func TestDailySales_RenglonesYTotales(t *testing.T) {
	cafe := product("Cafe", 100, nil, 100)
	pan := product("Pan", 50, nil, 5)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	txRepo := &fakeTxRepo{txs: []*entity.Transaction{
		outTx(cafe.ID, 2, day.Add(9*time.Hour)),
		outTx(cafe.ID, 1, day.Add(18*time.Hour)),
		outTx(pan.ID, 10, day.Add(12*time.Hour)),
		outTx(pan.ID, 4, day.AddDate(0, 0, 1)),  // día siguiente: fuera de ventana
		inTx(cafe.ID, 50, day.Add(8*time.Hour)), // entrada: no es venta
	}}
	uc := reports.NewReportUseCase(&fakeProductRepo{[]*entity.Product{cafe, pan}}, txRepo, time.UTC)

	report, err := uc.DailySales(context.Background(), "2026-03-02")
	require.NoError(t, err)

	assert.Equal(t, "2026-03-02", report.Date)
	assert.Equal(t, 3, report.Totals.Transactions)
	assert.Equal(t, 13, report.Totals.ItemsSold)
	assert.True(t, report.Totals.TotalSales.Equal(decimal.NewFromInt(350)), "3*100 + 10*5")

	require.Len(t, report.Items, 2)
	assert.Equal(t, "Cafe", report.Items[0].Name)
	assert.Equal(t, 3, report.Items[0].Qty)
	assert.True(t, report.Items[0].Subtotal.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "Pan", report.Items[1].Name)
	assert.True(t, report.Items[1].Subtotal.Equal(decimal.NewFromInt(50)))
}

// Venta de un producto que ya no está en el catálogo: cuenta en transacciones
// e ítems vendidos, pero su precio es 0.
func TestDailySales_ProductoBorradoValeCero(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	txRepo := &fakeTxRepo{txs: []*entity.Transaction{
		outTx(uuid.NewString(), 7, day.Add(time.Hour)),
	}}
	uc := reports.NewReportUseCase(&fakeProductRepo{}, txRepo, time.UTC)

	report, err := uc.DailySales(context.Background(), "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Totals.Transactions)
	assert.Equal(t, 7, report.Totals.ItemsSold)
	assert.True(t, report.Totals.TotalSales.IsZero())
}

func TestDailySales_FechaInvalida(t *testing.T) {
	uc := reports.NewReportUseCase(&fakeProductRepo{}, &fakeTxRepo{}, time.UTC)
	_, err := uc.DailySales(context.Background(), "02/03/2026")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El límite del día se calcula en la zona configurada: una venta a las
// 02:00 UTC pertenece al día anterior en Bogotá (UTC-5).
func TestDailySales_VentanaEnZonaConfigurada(t *testing.T) {
	bogota := time.FixedZone("America/Bogota", -5*3600)
	cafe := product("Cafe", 10, nil, 10)
	txRepo := &fakeTxRepo{txs: []*entity.Transaction{
		outTx(cafe.ID, 1, time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC)),
	}}
	uc := reports.NewReportUseCase(&fakeProductRepo{[]*entity.Product{cafe}}, txRepo, bogota)

	d1, err := uc.DailySales(context.Background(), "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, 1, d1.Totals.Transactions)

	d2, err := uc.DailySales(context.Background(), "2026-03-02")
	require.NoError(t, err)
	assert.Zero(t, d2.Totals.Transactions)
}

// ──────────────────────────────────────────────────────────────────────────────
// MonthlySales
// ──────────────────────────────────────────────────────────────────────────────

func TestMonthlySales_BucketsYTotales(t *testing.T) {
	cafe := product("Cafe", 100, nil, 100)
	txRepo := &fakeTxRepo{txs: []*entity.Transaction{
		outTx(cafe.ID, 1, time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)),
		outTx(cafe.ID, 2, time.Date(2026, 3, 5, 16, 0, 0, 0, time.UTC)),
		outTx(cafe.ID, 4, time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)),
		outTx(cafe.ID, 9, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)), // abril: fuera
	}}
	uc := reports.NewReportUseCase(&fakeProductRepo{[]*entity.Product{cafe}}, txRepo, time.UTC)

	report, err := uc.MonthlySales(context.Background(), 3, 2026)
	require.NoError(t, err)

	require.Len(t, report.Daily, 2)
	assert.Equal(t, "2026-03-05", report.Daily[0].Day, "orden ascendente")
	assert.True(t, report.Daily[0].Sales.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 2, report.Daily[0].Transactions)
	assert.Equal(t, "2026-03-20", report.Daily[1].Day)

	assert.True(t, report.Totals.TotalSales.Equal(decimal.NewFromInt(700)))
	assert.Equal(t, 3, report.Totals.Transactions)
}

func TestMonthlySales_ArgumentosInvalidos(t *testing.T) {
	uc := reports.NewReportUseCase(&fakeProductRepo{}, &fakeTxRepo{}, time.UTC)
	ctx := context.Background()

	for _, c := range []struct{ month, year int }{
		{0, 2026}, {13, 2026}, {5, 0}, {-1, -1},
	} {
		_, err := uc.MonthlySales(ctx, c.month, c.year)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "month=%d year=%d", c.month, c.year)
	}
}

// Coherencia de ventanas: los totales de DailySales(d) deben coincidir con el
// bucket de ese día dentro de MonthlySales del mes contenedor.
func TestVentanas_DiarioCoincideConBucketMensual(t *testing.T) {
	cafe := product("Cafe", 100, nil, 100)
	pan := product("Pan", 50, nil, 5)
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	txRepo := &fakeTxRepo{txs: []*entity.Transaction{
		outTx(cafe.ID, 3, day.Add(10*time.Hour)),
		outTx(pan.ID, 6, day.Add(11*time.Hour)),
		outTx(cafe.ID, 1, day.AddDate(0, 0, 3)),
	}}
	uc := reports.NewReportUseCase(&fakeProductRepo{[]*entity.Product{cafe, pan}}, txRepo, time.UTC)
	ctx := context.Background()

	daily, err := uc.DailySales(ctx, "2026-03-14")
	require.NoError(t, err)
	monthly, err := uc.MonthlySales(ctx, 3, 2026)
	require.NoError(t, err)

	var bucket *struct {
		sales decimal.Decimal
		count int
	}
	for _, b := range monthly.Daily {
		if b.Day == "2026-03-14" {
			bucket = &struct {
				sales decimal.Decimal
				count int
			}{b.Sales, b.Transactions}
		}
	}
	require.NotNil(t, bucket, "el mes debe contener el bucket del día")
	assert.True(t, daily.Totals.TotalSales.Equal(bucket.sales))
	assert.Equal(t, daily.Totals.Transactions, bucket.count)
}

// ──────────────────────────────────────────────────────────────────────────────
// InventoryStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestInventoryStatus_DerivaYClasifica(t *testing.T) {
	// Inicial explícito 100, vendido 60: stock 40 <= 50 → LOW.
	low := product("Cafe", 40, intPtr(100), 100)
	// Sin inicial: se reconstruye initial = 80 - (20-0) = 60; 80 > 30 → OK.
	ok := product("Pan", 80, nil, 5)
	// Agotado.
	out := product("Te", 0, intPtr(10), 2)

	txRepo := &fakeTxRepo{txs: []*entity.Transaction{
		outTx(low.ID, 60, time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)),
		inTx(ok.ID, 20, time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)),
		outTx(out.ID, 10, time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)),
	}}
	uc := reports.NewReportUseCase(&fakeProductRepo{[]*entity.Product{low, ok, out}}, txRepo, time.UTC)

	rows, err := uc.InventoryStatus(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byName := make(map[string]string)
	for _, r := range rows {
		byName[r.Name] = r.Status
	}
	assert.Equal(t, "LOW", byName["Cafe"])
	assert.Equal(t, "OK", byName["Pan"])
	assert.Equal(t, "OUT", byName["Te"])

	for _, r := range rows {
		if r.Name == "Pan" {
			assert.Equal(t, 60, r.InitialStock, "inicial reconstruido desde el historial")
			assert.Equal(t, 80, r.Stock)
		}
	}
}

func TestInventoryStatus_BusquedaCaseInsensitive(t *testing.T) {
	cafe := product("Cafe Premium", 10, nil, 100)
	pan := product("Pan", 10, nil, 5)
	uc := reports.NewReportUseCase(&fakeProductRepo{[]*entity.Product{cafe, pan}}, &fakeTxRepo{}, time.UTC)

	rows, err := uc.InventoryStatus(context.Background(), "CAFE")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Cafe Premium", rows[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// StockReport
// ──────────────────────────────────────────────────────────────────────────────

func TestStockReport_VentanaDeFechas(t *testing.T) {
	cafe := product("Cafe", 45, intPtr(40), 100)
	sinMovimiento := product("Te", 7, nil, 2)

	txRepo := &fakeTxRepo{txs: []*entity.Transaction{
		inTx(cafe.ID, 10, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)),
		outTx(cafe.ID, 5, time.Date(2026, 3, 15, 23, 30, 0, 0, time.UTC)),
		inTx(cafe.ID, 100, time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)), // antes de la ventana
	}}
	uc := reports.NewReportUseCase(&fakeProductRepo{[]*entity.Product{cafe, sinMovimiento}}, txRepo, time.UTC)

	rows, err := uc.StockReport(context.Background(), "2026-03-01", "2026-03-15")
	require.NoError(t, err)
	require.Len(t, rows, 2, "incluye todos los productos, con o sin movimientos")

	byName := make(map[string]dto.StockReportRow, len(rows))
	for _, r := range rows {
		byName[r.Name] = r
	}

	c := byName["Cafe"]
	assert.Equal(t, 10, c.StockedIn, "solo las entradas dentro de la ventana")
	assert.Equal(t, 5, c.Sold, "end_date es inclusivo hasta el fin del día")
	assert.Equal(t, 40, c.Initial)
	assert.Equal(t, 45, c.Current)

	tr := byName["Te"]
	assert.Zero(t, tr.StockedIn)
	assert.Zero(t, tr.Sold)
	assert.Equal(t, 7, tr.Current, "sin historial: quantity es la verdad")
}

func TestStockReport_SinVentanaCubreTodo(t *testing.T) {
	cafe := product("Cafe", 45, intPtr(40), 100)
	txRepo := &fakeTxRepo{txs: []*entity.Transaction{
		inTx(cafe.ID, 10, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)),
		outTx(cafe.ID, 5, time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)),
	}}
	uc := reports.NewReportUseCase(&fakeProductRepo{[]*entity.Product{cafe}}, txRepo, time.UTC)

	rows, err := uc.StockReport(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 10, rows[0].StockedIn)
	assert.Equal(t, 5, rows[0].Sold)
	assert.Equal(t, 45, rows[0].Current, "40 + 10 - 5")
}

func TestStockReport_FechaInvalida(t *testing.T) {
	uc := reports.NewReportUseCase(&fakeProductRepo{}, &fakeTxRepo{}, time.UTC)
	_, err := uc.StockReport(context.Background(), "hoy", "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

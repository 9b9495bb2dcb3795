package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpos-api/internal/application/reports"
	"github.com/jhoicas/stockpos-api/internal/domain/entity"
	"github.com/jhoicas/stockpos-api/internal/domain/repository"
	apphttp "github.com/jhoicas/stockpos-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de solo lectura (catálogo y ledger vacíos)
// ──────────────────────────────────────────────────────────────────────────────

type emptyProductRepo struct{}

func (r *emptyProductRepo) GetByID(string) (*entity.Product, error) { return nil, nil }

func (r *emptyProductRepo) GetForUpdate(string) (*entity.Product, error) { return nil, nil }

func (r *emptyProductRepo) UpdateQuantity(string, int) error { return nil }

func (r *emptyProductRepo) List(string) ([]*entity.Product, error) { return nil, nil }

type emptyTxRepo struct{}

func (r *emptyTxRepo) Create(*entity.Transaction) error { return nil }

func (r *emptyTxRepo) GetByID(string) (*entity.Transaction, error) { return nil, nil }

func (r *emptyTxRepo) Delete(string) error { return nil }

func (r *emptyTxRepo) List(repository.TransactionFilter, int, int) ([]*entity.Transaction, int, error) {
	return nil, 0, nil
}

func (r *emptyTxRepo) ListByProduct(string) ([]*entity.Transaction, error) { return nil, nil }

func (r *emptyTxRepo) ListInRange(*time.Time, *time.Time, string) ([]*entity.Transaction, error) {
	return nil, nil
}

// buildReportApp monta los endpoints de reportes sin middleware de auth.
func buildReportApp() *fiber.App {
	uc := reports.NewReportUseCase(&emptyProductRepo{}, &emptyTxRepo{}, time.UTC)
	h := apphttp.NewReportHandler(uc, nil)

	app := fiber.New()
	app.Get("/api/reports/daily-sales", h.DailySales)
	app.Get("/api/reports/monthly-sales", h.MonthlySales)
	return app
}

func getReport(t *testing.T, app *fiber.App, path string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

// ──────────────────────────────────────────────────────────────────────────────
// Parámetros obligatorios: faltantes o inválidos → HTTP 400, nunca defaults
// ──────────────────────────────────────────────────────────────────────────────

func TestDailySales_SinDate_Retorna400(t *testing.T) {
	app := buildReportApp()
	resp, body := getReport(t, app, "/api/reports/daily-sales")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
		"date faltante no debe asumir el día actual")
	assert.Contains(t, body, "VALIDATION")
}

func TestDailySales_DateInvalida_Retorna400(t *testing.T) {
	app := buildReportApp()
	resp, body := getReport(t, app, "/api/reports/daily-sales?date=02-03-2026")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "VALIDATION")
}

func TestDailySales_DateValida_Retorna200(t *testing.T) {
	app := buildReportApp()
	resp, body := getReport(t, app, "/api/reports/daily-sales?date=2026-03-02")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "2026-03-02")
}

func TestMonthlySales_SinMonthNiYear_Retorna400(t *testing.T) {
	app := buildReportApp()
	resp, body := getReport(t, app, "/api/reports/monthly-sales")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
		"month/year faltantes no deben asumir el mes actual")
	assert.Contains(t, body, "VALIDATION")
}

func TestMonthlySales_SinYear_Retorna400(t *testing.T) {
	app := buildReportApp()
	resp, _ := getReport(t, app, "/api/reports/monthly-sales?month=3")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMonthlySales_MonthFueraDeRango_Retorna400(t *testing.T) {
	app := buildReportApp()
	resp, _ := getReport(t, app, "/api/reports/monthly-sales?month=13&year=2026")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMonthlySales_ParametrosValidos_Retorna200(t *testing.T) {
	app := buildReportApp()
	resp, _ := getReport(t, app, "/api/reports/monthly-sales?month=3&year=2026")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

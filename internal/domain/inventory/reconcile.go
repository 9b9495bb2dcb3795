// Package inventory contiene el motor de reconciliación: funciones puras que
// derivan stock inicial, stock actual, estado y agregados de ventas a partir
// del ledger de transacciones. Sin efectos secundarios; toda consulta de
// reportes y toda reconstrucción de stock pasa por aquí.
package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpos-api/internal/domain/entity"
)

// Status clasifica el nivel de stock de un producto.
type Status string

const (
	StatusOK  Status = "OK"
	StatusLow Status = "LOW"
	StatusOut Status = "OUT"
)

// InOut acumula cantidades de entrada y salida de un producto.
type InOut struct {
	In  int
	Out int
}

// DayBucket es el agregado de ventas de un día calendario.
type DayBucket struct {
	Day          string // YYYY-MM-DD
	Sales        decimal.Decimal
	Transactions int
}

// DeriveInitialStock devuelve el stock base del producto. Si InitialStock es
// explícito se usa tal cual; si no, se reconstruye desde el historial:
// initial = quantity - (Σin - Σout). Es una reconstrucción, no un hecho almacenado.
func DeriveInitialStock(p *entity.Product, inQty, outQty int) int {
	if p.InitialStock != nil {
		return *p.InitialStock
	}
	return p.Quantity - inQty + outQty
}

// DeriveCurrentStock devuelve el stock actual consistente con el ledger.
// Con InitialStock explícito es un recálculo real (initial + Σin - Σout),
// útil para detectar deriva respecto a Quantity. Sin inicial explícito,
// Quantity es la verdad (el inicial se derivó de ella) y se devuelve directo.
func DeriveCurrentStock(p *entity.Product, inQty, outQty int) int {
	if p.InitialStock != nil {
		return *p.InitialStock + inQty - outQty
	}
	return p.Quantity
}

// ClassifyStatus clasifica el stock actual contra el inicial:
//
//	OUT  si current <= 0
//	LOW  si current <= 50% del inicial (límite inclusive: 50/100 es LOW)
//	OK   en el resto
//
// Con initial <= 0 el umbral nunca supera a un current positivo, así que
// cualquier stock positivo queda OK. Se compara con 2*current <= initial para
// no perder el medio punto de los iniciales impares en aritmética entera.
func ClassifyStatus(current, initial int) Status {
	if current <= 0 {
		return StatusOut
	}
	if 2*current <= initial {
		return StatusLow
	}
	return StatusOK
}

// AggregateByProduct suma cantidades por producto y tipo sobre un conjunto
// arbitrario de transacciones. Lo usan igual el estado de inventario y el
// reporte de stock.
func AggregateByProduct(txs []*entity.Transaction) map[string]InOut {
	totals := make(map[string]InOut, len(txs))
	for _, tx := range txs {
		t := totals[tx.ProductID]
		switch tx.Type {
		case entity.TxTypeIn:
			t.In += tx.Quantity
		case entity.TxTypeOut:
			t.Out += tx.Quantity
		}
		totals[tx.ProductID] = t
	}
	return totals
}

// BucketByDay agrupa las ventas (transacciones out) por día calendario en la
// zona horaria dada, ordenadas ascendente por día. El monto de cada venta es
// quantity × precio actual del producto; producto sin precio cuenta como 0.
// La zona es un parámetro explícito: el límite de día nunca depende de la
// zona horaria del proceso.
func BucketByDay(txs []*entity.Transaction, prices map[string]decimal.Decimal, loc *time.Location) []DayBucket {
	byDay := make(map[string]*DayBucket)
	for _, tx := range txs {
		if tx.Type != entity.TxTypeOut {
			continue
		}
		day := tx.Date.In(loc).Format("2006-01-02")
		b, ok := byDay[day]
		if !ok {
			b = &DayBucket{Day: day, Sales: decimal.Zero}
			byDay[day] = b
		}
		price := prices[tx.ProductID] // zero value = decimal.Zero
		b.Sales = b.Sales.Add(price.Mul(decimal.NewFromInt(int64(tx.Quantity))))
		b.Transactions++
	}

	buckets := make([]DayBucket, 0, len(byDay))
	for _, b := range byDay {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Day < buckets[j].Day })
	return buckets
}

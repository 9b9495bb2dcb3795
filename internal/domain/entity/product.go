package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto (SKU) del catálogo.
//
// Quantity es una vista materializada del ledger de transacciones: solo la muta
// el procesador de transacciones, siempre en la misma transacción de BD que
// crea o elimina el registro de Transaction correspondiente.
//
// InitialStock es el stock base al iniciar el seguimiento. Puede ser nil
// (desconocido); en ese caso se reconstruye desde el historial:
// initial = quantity - (Σin - Σout).
type Product struct {
	ID           string
	Name         string
	SKU          string // código único, búsqueda case-insensitive
	Category     string
	Quantity     int
	InitialStock *int
	Price        decimal.Decimal // precio de venta vigente
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

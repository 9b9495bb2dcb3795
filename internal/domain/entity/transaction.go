package entity

import "time"

// Tipos de transacción de stock.
const (
	TxTypeIn  = "in"  // entrada (reposición de proveedor)
	TxTypeOut = "out" // salida (venta)
)

// Transaction es un registro del ledger de stock. Inmutable una vez creado;
// la única mutación permitida es la eliminación completa vía reversa, que
// restaura exactamente el delta de stock que aplicó.
type Transaction struct {
	ID         string
	ProductID  string
	SupplierID *string // solo con sentido en entradas
	Type       string  // in | out
	Quantity   int     // siempre positivo; el signo lo da Type
	Date       time.Time
	UserID     string
	Notes      string // texto libre, ej. medio de pago de la venta
	CreatedAt  time.Time

	// Campos resueltos para presentación (JOIN en lecturas, al estilo populate).
	ProductName  string
	ProductSKU   string
	UserName     string
	UserEmail    string
	SupplierName string
}

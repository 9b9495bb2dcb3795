package repository

import (
	"time"

	"github.com/jhoicas/stockpos-api/internal/domain/entity"
)

// TransactionFilter filtros opcionales para listar el ledger.
type TransactionFilter struct {
	ProductID string
	Type      string // in | out | vacío
}

// TransactionRepository define el puerto de persistencia del ledger.
// El ledger es append-only: no hay Update; Delete existe únicamente para la
// reversa, que restaura el stock antes de borrar.
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	// GetByID devuelve la transacción con los campos de presentación resueltos
	// (producto, usuario, proveedor). (nil, nil) si no existe.
	GetByID(id string) (*entity.Transaction, error)
	Delete(id string) error
	// List devuelve una página ordenada por fecha descendente y el total de
	// registros que cumplen el filtro.
	List(filter TransactionFilter, limit, offset int) ([]*entity.Transaction, int, error)
	// ListByProduct devuelve el historial completo de un producto (para
	// reconstrucción de stock), orden cronológico.
	ListByProduct(productID string) ([]*entity.Transaction, error)
	// ListInRange devuelve transacciones en la ventana [from, to); cualquiera
	// de los límites puede ser nil (abierto). txType filtra por tipo, vacío = todos.
	ListInRange(from, to *time.Time, txType string) ([]*entity.Transaction, error)
}

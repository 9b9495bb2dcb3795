package repository

import "github.com/jhoicas/stockpos-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get* devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	// Usar solo dentro de una transacción de BD.
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateQuantity actualiza solo la cantidad materializada (usada por el
	// procesador de transacciones, nunca de forma independiente al ledger).
	UpdateQuantity(productID string, quantity int) error
	// List devuelve el catálogo; search filtra por substring de nombre o SKU
	// (case-insensitive). Vacío = todos.
	List(search string) ([]*entity.Product, error)
}

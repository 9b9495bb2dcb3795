package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpos-api/internal/domain/entity"
)

// CreateTransactionRequest body para POST /api/transactions.
// Date es opcional; vacío = momento de creación.
type CreateTransactionRequest struct {
	ProductID  string     `json:"product_id" validate:"required,uuid4"`
	SupplierID *string    `json:"supplier_id,omitempty" validate:"omitempty,uuid4"`
	Type       string     `json:"type" validate:"required,oneof=in out"`
	Quantity   int        `json:"quantity" validate:"required,gt=0"`
	Date       *time.Time `json:"date,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// SaleItem un renglón de venta multi-ítem.
type SaleItem struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CreateSaleRequest body para POST /api/sales. Los campos monetarios
// (total, tax, grand_total) son passthrough opaco hacia el resumen de la
// respuesta; el core no los valida ni los recalcula.
type CreateSaleRequest struct {
	Items         []SaleItem       `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string           `json:"payment_method,omitempty"`
	Total         *decimal.Decimal `json:"total,omitempty"`
	Tax           *decimal.Decimal `json:"tax,omitempty"`
	GrandTotal    *decimal.Decimal `json:"grand_total,omitempty"`
}

// ListTransactionsQuery filtros de GET /api/transactions.
type ListTransactionsQuery struct {
	PageRequest
	ProductID string `query:"product_id" validate:"omitempty,uuid4"`
	Type      string `query:"type" validate:"omitempty,oneof=in out"`
}

// TransactionDTO una transacción del ledger con referencias resueltas.
type TransactionDTO struct {
	ID        string       `json:"id"`
	Product   ProductRef   `json:"product"`
	Supplier  *SupplierRef `json:"supplier,omitempty"`
	User      UserRef      `json:"user"`
	Type      string       `json:"type"`
	Quantity  int          `json:"quantity"`
	Date      time.Time    `json:"date"`
	Notes     string       `json:"notes,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// ProductRef referencia mínima de producto para presentación.
type ProductRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// SupplierRef referencia mínima de proveedor.
type SupplierRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserRef referencia mínima del usuario actuante.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TransactionPage respuesta paginada de GET /api/transactions.
type TransactionPage struct {
	Count int              `json:"count"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Pages int              `json:"pages"`
	Data  []TransactionDTO `json:"data"`
}

// SaleResponse respuesta de POST /api/sales.
type SaleResponse struct {
	Transactions []TransactionDTO `json:"transactions"`
	Summary      SaleSummary      `json:"summary"`
}

// SaleSummary passthrough del contexto de pago de la venta.
type SaleSummary struct {
	PaymentMethod string           `json:"payment_method,omitempty"`
	Total         *decimal.Decimal `json:"total,omitempty"`
	Tax           *decimal.Decimal `json:"tax,omitempty"`
	GrandTotal    *decimal.Decimal `json:"grand_total,omitempty"`
}

// FromTransaction mapea la entidad (con campos resueltos) al DTO.
func FromTransaction(tx *entity.Transaction) TransactionDTO {
	d := TransactionDTO{
		ID:        tx.ID,
		Product:   ProductRef{ID: tx.ProductID, Name: tx.ProductName, SKU: tx.ProductSKU},
		User:      UserRef{ID: tx.UserID, Username: tx.UserName, Email: tx.UserEmail},
		Type:      tx.Type,
		Quantity:  tx.Quantity,
		Date:      tx.Date,
		Notes:     tx.Notes,
		CreatedAt: tx.CreatedAt,
	}
	if tx.SupplierID != nil {
		d.Supplier = &SupplierRef{ID: *tx.SupplierID, Name: tx.SupplierName}
	}
	return d
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockpos-api/internal/domain/entity"
	"github.com/jhoicas/stockpos-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// Columnas del ledger más las referencias resueltas (producto, usuario,
// proveedor), al estilo populate del resto de la API.
const txSelect = `
	SELECT t.id, t.product_id, t.supplier_id, t.type, t.quantity, t.date, t.user_id, t.notes, t.created_at,
	       COALESCE(p.name, ''), COALESCE(p.sku, ''),
	       COALESCE(u.username, ''), COALESCE(u.email, ''),
	       COALESCE(s.name, '')
	FROM transactions t
	LEFT JOIN products p ON p.id = t.product_id
	LEFT JOIN users u ON u.id = t.user_id
	LEFT JOIN suppliers s ON s.id = t.supplier_id`

// TransactionRepo implementación del puerto del ledger sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste una transacción del ledger.
func (r *TransactionRepo) Create(tx *entity.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}
	query := `
		INSERT INTO transactions (id, product_id, supplier_id, type, quantity, date, user_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.ProductID, tx.SupplierID, tx.Type, tx.Quantity, tx.Date, tx.UserID, tx.Notes,
	)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción con referencias resueltas. (nil, nil) si no existe.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	row := r.q.QueryRow(context.Background(), txSelect+` WHERE t.id = $1`, id)
	tx, err := scanTx(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

// Delete elimina una transacción. Solo lo invoca la reversa, después de
// restaurar la cantidad del producto dentro de la misma transacción de BD.
func (r *TransactionRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// List devuelve una página del ledger por fecha descendente y el total que
// cumple el filtro.
func (r *TransactionRepo) List(filter repository.TransactionFilter, limit, offset int) ([]*entity.Transaction, int, error) {
	where := ""
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		where += fmt.Sprintf(" AND t.product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.Type != "" {
		where += fmt.Sprintf(" AND t.type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM transactions t WHERE 1=1` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	query := txSelect + ` WHERE 1=1` + where +
		fmt.Sprintf(" ORDER BY t.date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	list, err := r.queryMany(query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByProduct devuelve el historial completo de un producto, orden cronológico.
func (r *TransactionRepo) ListByProduct(productID string) ([]*entity.Transaction, error) {
	return r.queryMany(txSelect+` WHERE t.product_id = $1 ORDER BY t.date ASC`, productID)
}

// ListInRange devuelve transacciones en la ventana [from, to); límites nil =
// abiertos. txType filtra por tipo, vacío = todos.
func (r *TransactionRepo) ListInRange(from, to *time.Time, txType string) ([]*entity.Transaction, error) {
	query := txSelect + ` WHERE 1=1`
	args := []any{}
	pos := 1
	if txType != "" {
		query += fmt.Sprintf(" AND t.type = $%d", pos)
		args = append(args, txType)
		pos++
	}
	if from != nil {
		query += fmt.Sprintf(" AND t.date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND t.date < $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += ` ORDER BY t.date ASC`
	return r.queryMany(query, args...)
}

func (r *TransactionRepo) queryMany(query string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transaction
	for rows.Next() {
		tx, err := scanTx(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, tx)
	}
	return list, rows.Err()
}

func scanTx(row pgx.Row) (*entity.Transaction, error) {
	var tx entity.Transaction
	err := row.Scan(
		&tx.ID, &tx.ProductID, &tx.SupplierID, &tx.Type, &tx.Quantity, &tx.Date,
		&tx.UserID, &tx.Notes, &tx.CreatedAt,
		&tx.ProductName, &tx.ProductSKU,
		&tx.UserName, &tx.UserEmail,
		&tx.SupplierName,
	)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

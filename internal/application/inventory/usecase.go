// Package inventory contiene el procesador de transacciones: el único
// escritor del estado de stock. Toda operación que afecta stock (transacción
// suelta, venta multi-ítem, reversa, reconstrucción) corre dentro de una
// transacción de BD vía TxRunner, con la fila del producto bloqueada
// (SELECT FOR UPDATE), de modo que la cantidad materializada y el ledger
// nunca queden desalineados.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockpos-api/internal/application/dto"
	"github.com/jhoicas/stockpos-api/internal/domain"
	"github.com/jhoicas/stockpos-api/internal/domain/entity"
	domaininv "github.com/jhoicas/stockpos-api/internal/domain/inventory"
	"github.com/jhoicas/stockpos-api/internal/domain/repository"
	"github.com/jhoicas/stockpos-api/pkg/validator"
)

// TransactionUseCase aplica operaciones de stock de forma validada y atómica.
type TransactionUseCase struct {
	txRunner TxRunner
	txRepo   repository.TransactionRepository // atado al pool; solo lecturas post-commit
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(txRunner TxRunner, txRepo repository.TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{txRunner: txRunner, txRepo: txRepo}
}

// Create registra una transacción suelta (entrada o salida) y ajusta la
// cantidad del producto en la misma transacción de BD.
//
// Precondiciones: quantity > 0, producto existente; para salidas,
// product.quantity >= quantity (si no, ErrInsufficientStock sin efectos).
func (uc *TransactionUseCase) Create(ctx context.Context, userID string, in dto.CreateTransactionRequest) (*dto.TransactionDTO, error) {
	if err := validator.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}
	txID := uuid.New().String()

	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, txRepo repository.TransactionRepository) error {
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
		}

		newQty := product.Quantity
		switch in.Type {
		case entity.TxTypeIn:
			newQty += in.Quantity
		case entity.TxTypeOut:
			if product.Quantity < in.Quantity {
				return fmt.Errorf("%w: producto %s (disponible %d, solicitado %d)",
					domain.ErrInsufficientStock, in.ProductID, product.Quantity, in.Quantity)
			}
			newQty -= in.Quantity
		}

		if err := productRepo.UpdateQuantity(product.ID, newQty); err != nil {
			return err
		}
		return txRepo.Create(&entity.Transaction{
			ID:         txID,
			ProductID:  in.ProductID,
			SupplierID: in.SupplierID,
			Type:       in.Type,
			Quantity:   in.Quantity,
			Date:       date,
			UserID:     userID,
			Notes:      in.Notes,
		})
	})
	if err != nil {
		return nil, err
	}

	return uc.resolve(txID)
}

// CreateSale procesa una venta multi-ítem con semántica todo-o-nada.
//
// Conserva la estructura validar-luego-confirmar, pero ambas fases corren en
// una sola transacción de BD con los productos bloqueados en orden de ID
// (evita deadlocks entre ventas concurrentes): o todos los ítems pasan y se
// descuenta stock creando una transacción out por ítem, o no se muta nada y
// el error nombra el primer ítem que falló.
func (uc *TransactionUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	notes := "Sale - unknown"
	if in.PaymentMethod != "" {
		notes = "Sale - " + in.PaymentMethod
	}
	now := time.Now()

	txIDs := make([]string, len(in.Items))
	for i := range in.Items {
		txIDs[i] = uuid.New().String()
	}

	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, txRepo repository.TransactionRepository) error {
		// Bloquear cada producto una sola vez, en orden de ID.
		ids := make([]string, 0, len(in.Items))
		seen := make(map[string]bool, len(in.Items))
		for _, it := range in.Items {
			if !seen[it.ProductID] {
				seen[it.ProductID] = true
				ids = append(ids, it.ProductID)
			}
		}
		sort.Strings(ids)

		remaining := make(map[string]int, len(ids))
		for _, id := range ids {
			product, err := productRepo.GetForUpdate(id)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
			}
			remaining[id] = product.Quantity
		}

		// Fase 1: validar todos los ítems contra el stock bloqueado. Ítems
		// repetidos del mismo producto consumen el mismo saldo.
		for i, it := range in.Items {
			if remaining[it.ProductID] < it.Quantity {
				return fmt.Errorf("%w: ítem %d, producto %s (disponible %d, solicitado %d)",
					domain.ErrInsufficientStock, i, it.ProductID, remaining[it.ProductID], it.Quantity)
			}
			remaining[it.ProductID] -= it.Quantity
		}

		// Fase 2: descontar stock y registrar una transacción out por ítem.
		for _, id := range ids {
			if err := productRepo.UpdateQuantity(id, remaining[id]); err != nil {
				return err
			}
		}
		for i, it := range in.Items {
			err := txRepo.Create(&entity.Transaction{
				ID:        txIDs[i],
				ProductID: it.ProductID,
				Type:      entity.TxTypeOut,
				Quantity:  it.Quantity,
				Date:      now,
				UserID:    userID,
				Notes:     notes,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.SaleResponse{
		Transactions: make([]dto.TransactionDTO, 0, len(txIDs)),
		Summary: dto.SaleSummary{
			PaymentMethod: in.PaymentMethod,
			Total:         in.Total,
			Tax:           in.Tax,
			GrandTotal:    in.GrandTotal,
		},
	}
	for _, id := range txIDs {
		d, err := uc.resolve(id)
		if err != nil {
			return nil, err
		}
		resp.Transactions = append(resp.Transactions, *d)
	}
	return resp, nil
}

// Delete revierte una transacción: aplica el delta inverso sobre la cantidad
// del producto y elimina el registro del ledger, todo en una transacción de BD.
//
// Si el producto ya no existe, el registro se elimina igualmente pero el
// stock no puede corregirse: la operación devuelve ErrInconsistent con el
// producto huérfano para que el llamador lo vea (nunca se silencia).
func (uc *TransactionUseCase) Delete(ctx context.Context, id string) error {
	var orphanedProduct string

	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, txRepo repository.TransactionRepository) error {
		tx, err := txRepo.GetByID(id)
		if err != nil {
			return err
		}
		if tx == nil {
			return fmt.Errorf("%w: transacción %s", domain.ErrNotFound, id)
		}

		product, err := productRepo.GetForUpdate(tx.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			// El delete sí debe confirmarse; el error se reporta tras el commit.
			orphanedProduct = tx.ProductID
			return txRepo.Delete(id)
		}

		newQty := product.Quantity
		if tx.Type == entity.TxTypeIn {
			newQty -= tx.Quantity
		} else {
			newQty += tx.Quantity
		}
		if err := productRepo.UpdateQuantity(product.ID, newQty); err != nil {
			return err
		}
		return txRepo.Delete(id)
	})
	if err != nil {
		return err
	}
	if orphanedProduct != "" {
		return fmt.Errorf("%w: la reversa de %s no pudo ajustar stock, el producto %s ya no existe",
			domain.ErrInconsistent, id, orphanedProduct)
	}
	return nil
}

// List devuelve una página del ledger ordenada por fecha descendente,
// opcionalmente filtrada por producto y/o tipo.
func (uc *TransactionUseCase) List(ctx context.Context, q dto.ListTransactionsQuery) (*dto.TransactionPage, error) {
	if err := validator.Struct(q); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	q.DefaultPage()

	filter := repository.TransactionFilter{ProductID: q.ProductID, Type: q.Type}
	txs, total, err := uc.txRepo.List(filter, q.Limit, q.Offset())
	if err != nil {
		return nil, err
	}

	page := &dto.TransactionPage{
		Count: len(txs),
		Total: total,
		Page:  q.Page,
		Pages: (total + q.Limit - 1) / q.Limit,
		Data:  make([]dto.TransactionDTO, 0, len(txs)),
	}
	for _, tx := range txs {
		page.Data = append(page.Data, dto.FromTransaction(tx))
	}
	return page, nil
}

// Get devuelve una transacción con sus referencias resueltas.
func (uc *TransactionUseCase) Get(ctx context.Context, id string) (*dto.TransactionDTO, error) {
	return uc.resolve(id)
}

// RebuildStock recalcula la cantidad materializada del producto desde el
// historial completo del ledger (initial + Σin - Σout) y la persiste. Es la
// operación de recuperación ante deriva por carrera o corrupción de
// almacenamiento: después de ejecutarla, la conservación vuelve a cerrar.
func (uc *TransactionUseCase) RebuildStock(ctx context.Context, productID string) (*dto.RebuildStockResult, error) {
	var result dto.RebuildStockResult

	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, txRepo repository.TransactionRepository) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
		}

		txs, err := txRepo.ListByProduct(productID)
		if err != nil {
			return err
		}
		totals := domaininv.AggregateByProduct(txs)[productID]
		initial := domaininv.DeriveInitialStock(product, totals.In, totals.Out)
		newQty := initial + totals.In - totals.Out

		result = dto.RebuildStockResult{
			ProductID:   productID,
			OldQuantity: product.Quantity,
			NewQuantity: newQty,
			Drift:       newQty - product.Quantity,
		}
		if newQty == product.Quantity {
			return nil
		}
		return productRepo.UpdateQuantity(productID, newQty)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// resolve relee una transacción con producto/usuario/proveedor resueltos.
func (uc *TransactionUseCase) resolve(id string) (*dto.TransactionDTO, error) {
	tx, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: transacción %s", domain.ErrNotFound, id)
	}
	d := dto.FromTransaction(tx)
	return &d, nil
}

// IsDomainError distingue fallas de dominio de fallas de infraestructura,
// para que la capa de transporte decida el mapeo de estado.
func IsDomainError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrInsufficientStock) ||
		errors.Is(err, domain.ErrInconsistent)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/lavadero-api/internal/application/billing"
	"github.com/jhoicas/lavadero-api/internal/application/inventory"
	"github.com/jhoicas/lavadero-api/internal/application/workorder"
	"github.com/jhoicas/lavadero-api/internal/domain/repository"
)

var (
	_ billing.SaleTxRunner        = (*TxRunner)(nil)
	_ inventory.TxRunner          = (*TxRunner)(nil)
	_ workorder.WorkOrderTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale transacción de emisión de factura: ventas, órdenes de trabajo e inventario.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	workOrderRepo repository.WorkOrderRepository,
	inventoryRepo repository.InventoryItemRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewSaleRepository(tx), NewWorkOrderRepository(tx), NewInventoryItemRepository(tx))
	})
}

// RunInventory transacción para ajustes de stock.
func (r *TxRunner) RunInventory(ctx context.Context, fn func(repo repository.InventoryItemRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewInventoryItemRepository(tx))
	})
}

// RunWorkOrder transacción para cambios de estado de órdenes de trabajo.
func (r *TxRunner) RunWorkOrder(ctx context.Context, fn func(repo repository.WorkOrderRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewWorkOrderRepository(tx))
	})
}

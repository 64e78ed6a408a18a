package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lavadero-api/internal/domain/entity"
	"github.com/jhoicas/lavadero-api/internal/domain/money"
	"github.com/jhoicas/lavadero-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación de InventoryItemRepository (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const inventoryColumns = `id, name, description, stock, min_stock, unit, supplier, sale_price,
	alert_status, active, created_at, updated_at`

func scanInventoryItem(s pgxScanner) (*entity.InventoryItem, error) {
	var (
		it    entity.InventoryItem
		price decimal.Decimal
	)
	if err := s.Scan(&it.ID, &it.Name, &it.Description, &it.Stock, &it.MinStock, &it.Unit, &it.Supplier,
		&price, &it.AlertStatus, &it.Active, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	it.SalePrice = money.FromDecimal(price)
	return &it, nil
}

func (r *InventoryItemRepo) Create(ctx context.Context, it *entity.InventoryItem) error {
	_, err := r.q.Exec(ctx, `INSERT INTO inventory_items (`+inventoryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		it.ID, it.Name, it.Description, it.Stock, it.MinStock, it.Unit, it.Supplier,
		it.SalePrice.Decimal(), it.AlertStatus, it.Active, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		return wrapWriteErr("insert inventory_item", err)
	}
	return nil
}

func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.get(ctx, `SELECT `+inventoryColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetForUpdate obtiene el ítem y bloquea la fila para update (SELECT FOR UPDATE).
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.get(ctx, `SELECT `+inventoryColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

func (r *InventoryItemRepo) get(ctx context.Context, query, id string) (*entity.InventoryItem, error) {
	it, err := scanInventoryItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory_item: %w", err)
	}
	return it, nil
}

// List devuelve los ítems activos; con alertOnly solo los que están en bajo o crítico.
func (r *InventoryItemRepo) List(ctx context.Context, alertOnly bool) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+inventoryColumns+` FROM inventory_items
		WHERE active AND (NOT $1 OR alert_status <> 'normal') ORDER BY name`, alertOnly)
	if err != nil {
		return nil, fmt.Errorf("list inventory_items: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory_item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func (r *InventoryItemRepo) Update(ctx context.Context, it *entity.InventoryItem) error {
	_, err := r.q.Exec(ctx, `
		UPDATE inventory_items SET name = $2, description = $3, min_stock = $4, unit = $5, supplier = $6,
			sale_price = $7, alert_status = $8, active = $9, updated_at = $10
		WHERE id = $1`,
		it.ID, it.Name, it.Description, it.MinStock, it.Unit, it.Supplier,
		it.SalePrice.Decimal(), it.AlertStatus, it.Active, it.UpdatedAt)
	if err != nil {
		return wrapWriteErr("update inventory_item", err)
	}
	return nil
}

// UpdateStock persiste stock y estado de alerta.
func (r *InventoryItemRepo) UpdateStock(ctx context.Context, it *entity.InventoryItem) error {
	_, err := r.q.Exec(ctx, `UPDATE inventory_items SET stock = $2, alert_status = $3, updated_at = $4 WHERE id = $1`,
		it.ID, it.Stock, it.AlertStatus, it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

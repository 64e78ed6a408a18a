package repository

import (
	"context"

	"github.com/jhoicas/lavadero-api/internal/domain/entity"
)

// InventoryItemRepository persistencia de insumos y productos.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE). Solo dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	List(ctx context.Context, alertOnly bool) ([]*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	UpdateStock(ctx context.Context, item *entity.InventoryItem) error
}

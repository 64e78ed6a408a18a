package inventory

import (
	"context"

	"github.com/jhoicas/lavadero-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el repositorio atado a esa tx.
// Garantiza que lectura con bloqueo y actualización de stock sean atómicas.
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(repo repository.InventoryItemRepository) error) error
}

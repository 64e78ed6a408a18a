package repository

import (
	"context"

	"github.com/jhoicas/lavadero-api/internal/domain/entity"
)

// SaleRepository persistencia de facturas y sus líneas.
type SaleRepository interface {
	// LockSequence serializa la numeración del par establecimiento/punto de expedición
	// hasta el fin de la transacción en curso.
	LockSequence(ctx context.Context, establishment, pointOfSale string) error
	// LastInvoiceNumber último número emitido para el par; "" si no hay facturas.
	LastInvoiceNumber(ctx context.Context, establishment, pointOfSale string) (string, error)
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	// GetByID incluye los ítems. nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetByInvoiceNumber(ctx context.Context, number string) (*entity.Sale, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Sale, error)
}

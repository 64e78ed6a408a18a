package billing

import (
	"context"
	"time"

	"github.com/jhoicas/lavadero-api/internal/domain/entity"
	"github.com/jhoicas/lavadero-api/internal/domain/repository"
)

// SaleTxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn retorna error se hace rollback: ninguna escritura queda visible.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		workOrderRepo repository.WorkOrderRepository,
		inventoryRepo repository.InventoryItemRepository,
	) error) error
}

// Clock fuente de la hora actual; inyectable en tests.
type Clock func() time.Time

// InvoicePDFGenerator genera la representación impresa de una factura emitida.
// customer puede ser nil (consumidor final).
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, sale *entity.Sale, company *entity.CompanyConfig, customer *entity.Customer) ([]byte, error)
}

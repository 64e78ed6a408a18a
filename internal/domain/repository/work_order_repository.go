package repository

import (
	"context"

	"github.com/jhoicas/lavadero-api/internal/domain/entity"
)

// WorkOrderRepository persistencia de órdenes de trabajo.
type WorkOrderRepository interface {
	// Create asigna Number desde la secuencia de la base.
	Create(ctx context.Context, wo *entity.WorkOrder) error
	GetByID(ctx context.Context, id string) (*entity.WorkOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.WorkOrder, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.WorkOrder, error)
	UpdateStatus(ctx context.Context, wo *entity.WorkOrder) error
}

package repository

import (
	"context"

	"github.com/jhoicas/lavadero-api/internal/domain/entity"
)

// ServiceComboRepository combos de servicios. Create y Update persisten también
// la composición (ServiceIDs) reemplazándola por completo.
type ServiceComboRepository interface {
	Create(ctx context.Context, c *entity.ServiceCombo) error
	GetByID(ctx context.Context, id string) (*entity.ServiceCombo, error)
	List(ctx context.Context, onlyActive bool) ([]*entity.ServiceCombo, error)
	Update(ctx context.Context, c *entity.ServiceCombo) error
}

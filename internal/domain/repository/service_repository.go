package repository

import (
	"context"

	"github.com/jhoicas/lavadero-api/internal/domain/entity"
)

// ServiceRepository catálogo de servicios de lavado.
type ServiceRepository interface {
	Create(ctx context.Context, s *entity.Service) error
	GetByID(ctx context.Context, id string) (*entity.Service, error)
	List(ctx context.Context, onlyActive bool) ([]*entity.Service, error)
	Update(ctx context.Context, s *entity.Service) error
}

package repository

import (
	"context"

	"github.com/jhoicas/lavadero-api/internal/domain/entity"
)

// CompanyConfigRepository puerto de persistencia de la configuración fiscal (registro único).
type CompanyConfigRepository interface {
	// Get devuelve nil, nil si todavía no hay configuración.
	Get(ctx context.Context) (*entity.CompanyConfig, error)
	Upsert(ctx context.Context, cfg *entity.CompanyConfig) error
}

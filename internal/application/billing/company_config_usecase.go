package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/lavadero-api/internal/application/dto"
	"github.com/jhoicas/lavadero-api/internal/domain"
	"github.com/jhoicas/lavadero-api/internal/domain/entity"
	"github.com/jhoicas/lavadero-api/internal/domain/fiscal"
	"github.com/jhoicas/lavadero-api/internal/domain/repository"
	"github.com/jhoicas/lavadero-api/pkg/ruc"
)

// CompanyConfigUseCase lectura y carga de los datos fiscales de la empresa y su timbrado.
type CompanyConfigUseCase struct {
	repo  repository.CompanyConfigRepository
	clock Clock
}

// NewCompanyConfigUseCase construye el caso de uso.
func NewCompanyConfigUseCase(repo repository.CompanyConfigRepository, clock Clock) *CompanyConfigUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &CompanyConfigUseCase{repo: repo, clock: clock}
}

// Get configuración actual. domain.ErrNotConfigured si no existe.
func (uc *CompanyConfigUseCase) Get(ctx context.Context) (*dto.CompanyConfigResponse, error) {
	cfg, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, domain.ErrNotConfigured
	}
	return toCompanyConfigResponse(cfg), nil
}

// Update reemplaza la configuración. Renovar el timbrado es cargar un nuevo número y vigencia.
func (uc *CompanyConfigUseCase) Update(ctx context.Context, in dto.UpdateCompanyConfigRequest) (*dto.CompanyConfigResponse, error) {
	if err := ruc.Validate(strings.TrimSpace(in.RUC)); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	from, err := time.Parse(dto.DateLayout, in.TimbradoFrom)
	if err != nil {
		return nil, fmt.Errorf("%w: timbrado_from: %w", domain.ErrInvalidInput, err)
	}
	until, err := time.Parse(dto.DateLayout, in.TimbradoUntil)
	if err != nil {
		return nil, fmt.Errorf("%w: timbrado_until: %w", domain.ErrInvalidInput, err)
	}

	current, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.clock()
	cfg := &entity.CompanyConfig{
		ID:        uuid.NewString(),
		Currency:  entity.DefaultCurrency,
		CreatedAt: now,
	}
	if current != nil {
		cfg.ID = current.ID
		cfg.CreatedAt = current.CreatedAt
	}
	cfg.RUC = strings.TrimSpace(in.RUC)
	cfg.LegalName = in.LegalName
	cfg.TradeName = in.TradeName
	cfg.TimbradoNumber = in.TimbradoNumber
	cfg.TimbradoFrom = from
	cfg.TimbradoUntil = until
	cfg.Establishment = nonEmpty(in.Establishment, entity.DefaultEstablishment)
	cfg.PointOfSale = nonEmpty(in.PointOfSale, entity.DefaultPointOfSale)
	cfg.Address = in.Address
	cfg.City = nonEmpty(in.City, entity.DefaultCity)
	cfg.Phone = in.Phone
	cfg.Email = in.Email
	cfg.UpdatedAt = now

	if err := fiscal.ValidateAuthorization(*cfg.Authorization()); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, cfg); err != nil {
		return nil, err
	}
	return toCompanyConfigResponse(cfg), nil
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

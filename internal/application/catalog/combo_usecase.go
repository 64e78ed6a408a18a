package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/lavadero-api/internal/application/dto"
	"github.com/jhoicas/lavadero-api/internal/domain"
	"github.com/jhoicas/lavadero-api/internal/domain/entity"
	"github.com/jhoicas/lavadero-api/internal/domain/money"
	"github.com/jhoicas/lavadero-api/internal/domain/repository"
)

// ComboUseCase casos de uso de los combos de servicios.
type ComboUseCase struct {
	repo        repository.ServiceComboRepository
	serviceRepo repository.ServiceRepository
	clock       func() time.Time
}

// NewComboUseCase construye el caso de uso.
func NewComboUseCase(repo repository.ServiceComboRepository, serviceRepo repository.ServiceRepository, clock func() time.Time) *ComboUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &ComboUseCase{repo: repo, serviceRepo: serviceRepo, clock: clock}
}

// Create alta de un combo (activo por defecto). Requiere al menos dos servicios activos distintos.
func (uc *ComboUseCase) Create(ctx context.Context, in dto.ServiceComboRequest) (*dto.ServiceComboResponse, error) {
	now := uc.clock()
	c := &entity.ServiceCombo{ID: uuid.NewString(), Active: true, CreatedAt: now, UpdatedAt: now}
	if err := uc.apply(ctx, c, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toComboResponse(c), nil
}

// Get combo con el detalle de sus servicios y el precio que sumarían por separado.
func (uc *ComboUseCase) Get(ctx context.Context, id string) (*dto.ServiceComboResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toComboResponse(c)
	regular := money.Zero
	for _, sid := range c.ServiceIDs {
		s, err := uc.serviceRepo.GetByID(ctx, sid)
		if err != nil {
			return nil, err
		}
		if s == nil {
			continue
		}
		regular = regular.Add(s.Price)
		out.Services = append(out.Services, toServiceResponse(s))
	}
	out.RegularPrice = &regular
	return out, nil
}

// List combos; onlyActive filtra los dados de baja.
func (uc *ComboUseCase) List(ctx context.Context, onlyActive bool) ([]*dto.ServiceComboResponse, error) {
	list, err := uc.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ServiceComboResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toComboResponse(c))
	}
	return out, nil
}

// Update reemplaza datos y composición del combo. Las facturas emitidas conservan su precio.
func (uc *ComboUseCase) Update(ctx context.Context, id string, in dto.ServiceComboRequest) (*dto.ServiceComboResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.apply(ctx, c, in); err != nil {
		return nil, err
	}
	c.UpdatedAt = uc.clock()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toComboResponse(c), nil
}

// Deactivate baja lógica: el combo deja de poder facturarse.
func (uc *ComboUseCase) Deactivate(ctx context.Context, id string) error {
	c, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if !c.Active {
		return nil
	}
	c.Active = false
	c.UpdatedAt = uc.clock()
	return uc.repo.Update(ctx, c)
}

func (uc *ComboUseCase) get(ctx context.Context, id string) (*entity.ServiceCombo, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (uc *ComboUseCase) apply(ctx context.Context, c *entity.ServiceCombo, in dto.ServiceComboRequest) error {
	var errs []error
	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs = append(errs, errors.New("nombre requerido"))
	}
	if !in.Price.IsPositive() {
		errs = append(errs, errors.New("el precio debe ser mayor a cero"))
	}

	seen := make(map[string]bool, len(in.ServiceIDs))
	ids := make([]string, 0, len(in.ServiceIDs))
	for _, sid := range in.ServiceIDs {
		if seen[sid] {
			errs = append(errs, fmt.Errorf("servicio %s repetido", sid))
			continue
		}
		seen[sid] = true
		s, err := uc.serviceRepo.GetByID(ctx, sid)
		if err != nil {
			return err
		}
		if s == nil || !s.Active {
			errs = append(errs, fmt.Errorf("servicio %s inexistente o inactivo", sid))
			continue
		}
		ids = append(ids, sid)
	}
	if len(seen) < entity.MinComboServices {
		errs = append(errs, fmt.Errorf("un combo debe incluir al menos %d servicios", entity.MinComboServices))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}

	c.Name = name
	c.Description = in.Description
	c.Price = in.Price
	c.ServiceIDs = ids
	if in.Active != nil {
		c.Active = *in.Active
	}
	return nil
}

func toComboResponse(c *entity.ServiceCombo) *dto.ServiceComboResponse {
	ids := c.ServiceIDs
	if ids == nil {
		ids = []string{}
	}
	return &dto.ServiceComboResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price,
		ServiceIDs:  ids,
		Active:      c.Active,
	}
}

// Package catalog administra el catálogo de servicios de lavado y sus combos.
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
	"github.com/jhoicas/lavadero-api/internal/domain/repository"
)

const defaultDurationMin = 30

// ServiceUseCase casos de uso del catálogo de servicios.
type ServiceUseCase struct {
	repo  repository.ServiceRepository
	clock func() time.Time
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(repo repository.ServiceRepository, clock func() time.Time) *ServiceUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &ServiceUseCase{repo: repo, clock: clock}
}

// Create alta de un servicio (activo por defecto).
func (uc *ServiceUseCase) Create(ctx context.Context, in dto.ServiceRequest) (*dto.ServiceResponse, error) {
	now := uc.clock()
	s := &entity.Service{ID: uuid.NewString(), Active: true, CreatedAt: now, UpdatedAt: now}
	if err := applyService(s, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toServiceResponse(s), nil
}

// Get servicio por ID.
func (uc *ServiceUseCase) Get(ctx context.Context, id string) (*dto.ServiceResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toServiceResponse(s), nil
}

// List servicios; onlyActive filtra los dados de baja.
func (uc *ServiceUseCase) List(ctx context.Context, onlyActive bool) ([]*dto.ServiceResponse, error) {
	list, err := uc.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toServiceResponse(s))
	}
	return out, nil
}

// Update reemplaza los datos del servicio. Las facturas emitidas conservan su precio.
func (uc *ServiceUseCase) Update(ctx context.Context, id string, in dto.ServiceRequest) (*dto.ServiceResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyService(s, in); err != nil {
		return nil, err
	}
	s.UpdatedAt = uc.clock()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toServiceResponse(s), nil
}

// Deactivate baja lógica: el servicio deja de poder facturarse.
func (uc *ServiceUseCase) Deactivate(ctx context.Context, id string) error {
	s, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if !s.Active {
		return nil
	}
	s.Active = false
	s.UpdatedAt = uc.clock()
	return uc.repo.Update(ctx, s)
}

func (uc *ServiceUseCase) get(ctx context.Context, id string) (*entity.Service, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func applyService(s *entity.Service, in dto.ServiceRequest) error {
	var errs []error
	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs = append(errs, errors.New("nombre requerido"))
	}
	if !in.Price.IsPositive() {
		errs = append(errs, errors.New("el precio debe ser mayor a cero"))
	}
	duration := in.DurationMin
	if duration == 0 {
		duration = defaultDurationMin
	}
	if duration < 5 || duration > 480 {
		errs = append(errs, fmt.Errorf("duración %d fuera de rango (5-480 minutos)", duration))
	}
	if !entity.IsValidServiceCategory(in.Category) {
		errs = append(errs, fmt.Errorf("categoría %q", in.Category))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	s.Name = name
	s.Description = in.Description
	s.Price = in.Price
	s.DurationMin = duration
	s.Category = in.Category
	if in.Active != nil {
		s.Active = *in.Active
	}
	return nil
}

func toServiceResponse(s *entity.Service) *dto.ServiceResponse {
	return &dto.ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		DurationMin: s.DurationMin,
		Category:    s.Category,
		Active:      s.Active,
	}
}

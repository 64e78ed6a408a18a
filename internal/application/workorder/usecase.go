// Package workorder gestiona las órdenes de trabajo del lavadero: recepción del
// vehículo y avance de estado hasta que la facturación la marca como entregada.
package workorder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/lavadero-api/internal/application/dto"
	"github.com/jhoicas/lavadero-api/internal/domain"
	"github.com/jhoicas/lavadero-api/internal/domain/entity"
	"github.com/jhoicas/lavadero-api/internal/domain/money"
	"github.com/jhoicas/lavadero-api/internal/domain/repository"
	"github.com/jhoicas/lavadero-api/pkg/logger"
)

// WorkOrderTxRunner transacción con el repositorio de órdenes atado a ella.
type WorkOrderTxRunner interface {
	RunWorkOrder(ctx context.Context, fn func(repo repository.WorkOrderRepository) error) error
}

// UseCase casos de uso de órdenes de trabajo.
type UseCase struct {
	repo         repository.WorkOrderRepository
	customerRepo repository.CustomerRepository
	txRunner     WorkOrderTxRunner
	clock        func() time.Time
	log          *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	repo repository.WorkOrderRepository,
	customerRepo repository.CustomerRepository,
	txRunner WorkOrderTxRunner,
	clock func() time.Time,
	log *logger.Logger,
) *UseCase {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{repo: repo, customerRepo: customerRepo, txRunner: txRunner, clock: clock, log: log}
}

// Create recibe un vehículo. La orden nace en estado recibido.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	plate := strings.ToUpper(strings.TrimSpace(in.VehiclePlate))
	if in.CustomerID == "" || plate == "" {
		return nil, fmt.Errorf("%w: cliente y chapa requeridos", domain.ErrInvalidInput)
	}
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
	}
	now := uc.clock()
	wo := &entity.WorkOrder{
		ID:           uuid.NewString(),
		CustomerID:   customer.ID,
		VehiclePlate: plate,
		Vehicle:      in.Vehicle,
		Status:       entity.WorkOrderReceived,
		Notes:        in.Notes,
		Total:        money.Zero,
		ReceivedAt:   now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, wo); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("number", wo.Number).Str("plate", wo.VehiclePlate).Msg("orden de trabajo recibida")
	return toResponse(wo), nil
}

// Get orden por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.WorkOrderResponse, error) {
	wo, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(wo), nil
}

// List órdenes, opcionalmente filtradas por estado.
func (uc *UseCase) List(ctx context.Context, status string, page dto.PageRequest) ([]*dto.WorkOrderResponse, error) {
	if status != "" && !entity.IsValidWorkOrderStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.WorkOrderResponse, 0, len(list))
	for _, wo := range list {
		out = append(out, toResponse(wo))
	}
	return out, nil
}

// UpdateStatus avanza la orden. Solo hacia adelante; entregado se alcanza únicamente al facturar.
func (uc *UseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateWorkOrderStatusRequest) (*dto.WorkOrderResponse, error) {
	switch in.Status {
	case entity.WorkOrderInProgress, entity.WorkOrderReady:
	case entity.WorkOrderDelivered:
		return nil, fmt.Errorf("%w: la orden se entrega al facturarla", domain.ErrInvalidInput)
	default:
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}

	var out *entity.WorkOrder
	err := uc.txRunner.RunWorkOrder(ctx, func(repo repository.WorkOrderRepository) error {
		wo, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if wo == nil {
			return domain.ErrNotFound
		}
		if wo.Status == entity.WorkOrderDelivered {
			return domain.ErrWorkOrderDelivered
		}
		if !wo.Transition(in.Status, uc.clock()) {
			return fmt.Errorf("%w: no se puede pasar de %s a %s", domain.ErrConflict, wo.Status, in.Status)
		}
		if err := repo.UpdateStatus(ctx, wo); err != nil {
			return err
		}
		out = wo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(out), nil
}

func toResponse(wo *entity.WorkOrder) *dto.WorkOrderResponse {
	out := &dto.WorkOrderResponse{
		ID:           wo.ID,
		Number:       wo.Number,
		CustomerID:   wo.CustomerID,
		VehiclePlate: wo.VehiclePlate,
		Vehicle:      wo.Vehicle,
		Status:       wo.Status,
		Notes:        wo.Notes,
		Total:        wo.Total,
		ReceivedAt:   wo.ReceivedAt.Format(time.RFC3339),
	}
	out.StartedAt = formatTime(wo.StartedAt)
	out.FinishedAt = formatTime(wo.FinishedAt)
	out.DeliveredAt = formatTime(wo.DeliveredAt)
	return out
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

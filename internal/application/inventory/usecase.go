package inventory

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
	"github.com/jhoicas/lavadero-api/pkg/logger"
)

var validUnits = map[string]bool{"UN": true, "LT": true, "KG": true}

// UseCase alta, consulta y ajuste de stock de insumos y productos de reventa.
type UseCase struct {
	repo     repository.InventoryItemRepository
	txRunner TxRunner
	clock    func() time.Time
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.InventoryItemRepository, txRunner TxRunner, clock func() time.Time, log *logger.Logger) *UseCase {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{repo: repo, txRunner: txRunner, clock: clock, log: log}
}

// Create da de alta un ítem; la alerta se calcula a partir del stock inicial.
func (uc *UseCase) Create(ctx context.Context, in dto.InventoryItemRequest) (*dto.InventoryItemResponse, error) {
	now := uc.clock()
	it := &entity.InventoryItem{ID: uuid.NewString(), Active: true, CreatedAt: now}
	if err := apply(it, in); err != nil {
		return nil, err
	}
	it.SetStock(in.Stock, now)
	if err := uc.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return toResponse(it), nil
}

// Get ítem por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.InventoryItemResponse, error) {
	it, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(it), nil
}

// List todos los ítems, o solo los que están en alerta (bajo o crítico).
func (uc *UseCase) List(ctx context.Context, alertOnly bool) ([]*dto.InventoryItemResponse, error) {
	list, err := uc.repo.List(ctx, alertOnly)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InventoryItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, toResponse(it))
	}
	return out, nil
}

// Update modifica datos del ítem. El stock solo cambia con Adjust o al facturar;
// cambiar el mínimo recalcula la alerta.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.InventoryItemRequest) (*dto.InventoryItemResponse, error) {
	it, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.ErrNotFound
	}
	if err := apply(it, in); err != nil {
		return nil, err
	}
	now := uc.clock()
	it.AlertStatus = entity.StockAlert(it.Stock, it.MinStock)
	it.UpdatedAt = now
	if err := uc.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return toResponse(it), nil
}

// Adjust suma delta al stock (negativo para bajas) dentro de una transacción con bloqueo de fila.
// El stock resultante no puede ser negativo.
func (uc *UseCase) Adjust(ctx context.Context, id string, in dto.StockAdjustmentRequest) (*dto.InventoryItemResponse, error) {
	if in.Delta == 0 {
		return nil, fmt.Errorf("%w: delta no puede ser cero", domain.ErrInvalidInput)
	}
	var out *entity.InventoryItem
	err := uc.txRunner.RunInventory(ctx, func(repo repository.InventoryItemRepository) error {
		it, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if it == nil {
			return domain.ErrNotFound
		}
		next := it.Stock + in.Delta
		if next < 0 {
			return fmt.Errorf("%w: %s (disponible %d)", domain.ErrInsufficientStock, it.Name, it.Stock)
		}
		it.SetStock(next, uc.clock())
		if err := repo.UpdateStock(ctx, it); err != nil {
			return err
		}
		out = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("item_id", out.ID).
		Int("delta", in.Delta).
		Int("stock", out.Stock).
		Str("alert", out.AlertStatus).
		Str("reason", in.Reason).
		Msg("ajuste de stock")
	return toResponse(out), nil
}

func apply(it *entity.InventoryItem, in dto.InventoryItemRequest) error {
	var errs []error
	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs = append(errs, errors.New("nombre requerido"))
	}
	if in.MinStock < 0 || in.Stock < 0 {
		errs = append(errs, errors.New("stock y stock mínimo no pueden ser negativos"))
	}
	unit := strings.ToUpper(in.Unit)
	if unit == "" {
		unit = "UN"
	}
	if !validUnits[unit] {
		errs = append(errs, fmt.Errorf("unidad %q", in.Unit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	it.Name = name
	it.Description = in.Description
	it.MinStock = in.MinStock
	it.Unit = unit
	it.Supplier = in.Supplier
	it.SalePrice = in.SalePrice
	if in.Active != nil {
		it.Active = *in.Active
	}
	return nil
}

func toResponse(it *entity.InventoryItem) *dto.InventoryItemResponse {
	return &dto.InventoryItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Stock:       it.Stock,
		MinStock:    it.MinStock,
		Unit:        it.Unit,
		Supplier:    it.Supplier,
		SalePrice:   it.SalePrice,
		AlertStatus: it.AlertStatus,
		Active:      it.Active,
	}
}

package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/lavadero-api/internal/application/dto"
	"github.com/jhoicas/lavadero-api/internal/domain"
	"github.com/jhoicas/lavadero-api/internal/domain/entity"
	"github.com/jhoicas/lavadero-api/internal/domain/fiscal"
	"github.com/jhoicas/lavadero-api/internal/domain/money"
	"github.com/jhoicas/lavadero-api/internal/domain/repository"
	"github.com/jhoicas/lavadero-api/pkg/logger"
)

// CreateSaleUseCase arma la factura a partir del carrito: valida líneas, liquida IVA,
// verifica el timbrado y persiste cabecera, líneas, stock y orden de trabajo en una transacción.
type CreateSaleUseCase struct {
	txRunner      SaleTxRunner
	checker       *TimbradoChecker
	customerRepo  repository.CustomerRepository
	serviceRepo   repository.ServiceRepository
	comboRepo     repository.ServiceComboRepository
	inventoryRepo repository.InventoryItemRepository
	workOrderRepo repository.WorkOrderRepository
	log           *logger.Logger
	newID         func() string
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner SaleTxRunner,
	checker *TimbradoChecker,
	customerRepo repository.CustomerRepository,
	serviceRepo repository.ServiceRepository,
	comboRepo repository.ServiceComboRepository,
	inventoryRepo repository.InventoryItemRepository,
	workOrderRepo repository.WorkOrderRepository,
	log *logger.Logger,
) *CreateSaleUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CreateSaleUseCase{
		txRunner:      txRunner,
		checker:       checker,
		customerRepo:  customerRepo,
		serviceRepo:   serviceRepo,
		comboRepo:     comboRepo,
		inventoryRepo: inventoryRepo,
		workOrderRepo: workOrderRepo,
		log:           log,
		newID:         uuid.NewString,
	}
}

// CreateSale emite una factura. Errores: domain.ErrEmptyCart, domain.ErrInvalidInput,
// domain.ErrNotFound, *TimbradoError, domain.ErrWorkOrderDelivered, domain.ErrInsufficientStock,
// fiscal.ErrSequenceExhausted y domain.ErrPersistence (reintentable).
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if !entity.IsValidPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: medio de pago %q", domain.ErrInvalidInput, in.PaymentMethod)
	}

	lines, err := uc.buildLines(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	subtotal := money.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Detail().Subtotal())
	}

	var workOrder *entity.WorkOrder
	if in.WorkOrderID != "" {
		workOrder, err = uc.workOrderRepo.GetByID(ctx, in.WorkOrderID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
		if workOrder == nil {
			return nil, fmt.Errorf("%w: orden de trabajo %s", domain.ErrNotFound, in.WorkOrderID)
		}
		if workOrder.Status == entity.WorkOrderDelivered {
			return nil, domain.ErrWorkOrderDelivered
		}
	}

	customerID := in.CustomerID
	if customerID == "" && workOrder != nil {
		customerID = workOrder.CustomerID
	}
	var customer *entity.Customer
	if customerID != "" {
		customer, err = uc.customerRepo.GetByID(ctx, customerID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
		if customer == nil {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, customerID)
		}
	}
	tourism := customer != nil && customer.TourismRegime
	totals := fiscal.ComputeTotals(subtotal, tourism)

	cfg, err := uc.checker.configRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: leer configuración: %w", domain.ErrPersistence, err)
	}

	sale, err := Guard(cfg.Authorization(), uc.checker.Today(), func(auth *fiscal.Authorization) (*entity.Sale, error) {
		sale := &entity.Sale{
			ID:             uc.newID(),
			Establishment:  auth.Establishment,
			PointOfSale:    auth.PointOfSale,
			TimbradoNumber: auth.Number,
			IssuedAt:       uc.checker.Now(),
			Subtotal:       totals.Subtotal,
			Tax:            totals.Tax,
			Total:          totals.Total,
			PaymentMethod:  in.PaymentMethod,
			TourismRegime:  tourism,
			CreatedBy:      userID,
		}
		sale.CreatedAt = sale.IssuedAt
		if customer != nil {
			sale.CustomerID = &customer.ID
		}
		if workOrder != nil {
			sale.WorkOrderID = &workOrder.ID
		}
		for _, l := range lines {
			sale.Items = append(sale.Items, entity.NewSaleItem(uc.newID(), sale.ID, l))
		}
		if err := uc.persist(ctx, sale, lines); err != nil {
			return nil, err
		}
		return sale, nil
	})
	if err != nil {
		var te *TimbradoError
		if errors.As(err, &te) {
			uc.log.Warn().
				Str("status", string(te.Verdict.Status)).
				Int("days_left", te.Verdict.DaysLeft).
				Msg("facturación bloqueada por timbrado")
		}
		return nil, err
	}

	uc.log.Info().
		Str("invoice_number", sale.InvoiceNumber).
		Str("sale_id", sale.ID).
		Str("total", sale.Total.String()).
		Bool("tourism_regime", sale.TourismRegime).
		Msg("factura emitida")
	resp := toSaleResponse(sale)
	return &resp, nil
}

// persist numera y guarda la venta en una sola transacción.
func (uc *CreateSaleUseCase) persist(ctx context.Context, sale *entity.Sale, lines []entity.LineItem) error {
	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		workOrderRepo repository.WorkOrderRepository,
		inventoryRepo repository.InventoryItemRepository,
	) error {
		if err := saleRepo.LockSequence(ctx, sale.Establishment, sale.PointOfSale); err != nil {
			return err
		}
		last, err := saleRepo.LastInvoiceNumber(ctx, sale.Establishment, sale.PointOfSale)
		if err != nil {
			return err
		}
		number, err := fiscal.NextInvoiceNumber(last, sale.Establishment, sale.PointOfSale)
		if err != nil {
			return err
		}
		sale.InvoiceNumber = number

		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for _, item := range sale.Items {
			if err := saleRepo.CreateItem(ctx, item); err != nil {
				return err
			}
		}

		for _, l := range lines {
			p, ok := l.(entity.ProductLine)
			if !ok {
				continue
			}
			item, err := inventoryRepo.GetForUpdate(ctx, p.InventoryItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("%w: ítem de inventario %s", domain.ErrNotFound, p.InventoryItemID)
			}
			if item.Stock < p.Quantity {
				return fmt.Errorf("%w: %s (disponible %d, solicitado %d)", domain.ErrInsufficientStock, item.Name, item.Stock, p.Quantity)
			}
			item.SetStock(item.Stock-p.Quantity, sale.IssuedAt)
			if err := inventoryRepo.UpdateStock(ctx, item); err != nil {
				return err
			}
		}

		if sale.WorkOrderID != nil {
			wo, err := workOrderRepo.GetForUpdate(ctx, *sale.WorkOrderID)
			if err != nil {
				return err
			}
			if wo == nil {
				return fmt.Errorf("%w: orden de trabajo %s", domain.ErrNotFound, *sale.WorkOrderID)
			}
			wo.Total = sale.Total
			if !wo.Transition(entity.WorkOrderDelivered, sale.IssuedAt) {
				return domain.ErrWorkOrderDelivered
			}
			if err := workOrderRepo.UpdateStatus(ctx, wo); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		sale.InvoiceNumber = ""
		return classifyTxErr(err)
	}
	return nil
}

// classifyTxErr conserva los errores de negocio y marca el resto como falla de persistencia.
// Un choque con UNIQUE(invoice_number) es reintentable: se informa como persistencia
// sin exponer domain.ErrDuplicate.
func classifyTxErr(err error) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return fmt.Errorf("%w: número de factura en uso, reintente: %v", domain.ErrPersistence, err)
	}
	for _, known := range []error{
		domain.ErrInsufficientStock,
		domain.ErrWorkOrderDelivered,
		domain.ErrNotFound,
		domain.ErrInvalidInput,
		domain.ErrPersistence,
		fiscal.ErrSequenceExhausted,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}

// buildLines convierte el carrito en líneas tipadas. Los nombres y precios omitidos
// se toman del catálogo.
func (uc *CreateSaleUseCase) buildLines(ctx context.Context, items []dto.LineItemRequest) ([]entity.LineItem, error) {
	lines := make([]entity.LineItem, 0, len(items))
	for i, it := range items {
		line, err := uc.buildLine(ctx, it)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", i+1, err)
		}
		if err := entity.ValidateLine(line); err != nil {
			return nil, fmt.Errorf("%w: línea %d: %w", domain.ErrInvalidInput, i+1, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (uc *CreateSaleUseCase) buildLine(ctx context.Context, it dto.LineItemRequest) (entity.LineItem, error) {
	detail := entity.LineDetail{Name: it.Name, Quantity: it.Quantity}
	if it.UnitPrice != nil {
		detail.UnitPrice = *it.UnitPrice
	}

	switch entity.LineKind(it.Type) {
	case entity.LineService:
		if it.ServiceID == "" {
			return nil, fmt.Errorf("%w: service_id requerido", domain.ErrInvalidInput)
		}
		svc, err := uc.serviceRepo.GetByID(ctx, it.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
		if svc == nil || !svc.Active {
			return nil, fmt.Errorf("%w: servicio %s", domain.ErrNotFound, it.ServiceID)
		}
		if detail.Name == "" {
			detail.Name = svc.Name
		}
		if it.UnitPrice == nil {
			detail.UnitPrice = svc.Price
		}
		return entity.ServiceLine{ServiceID: svc.ID, LineDetail: detail}, nil

	case entity.LineCombo:
		if it.ComboID == "" {
			return nil, fmt.Errorf("%w: combo_id requerido", domain.ErrInvalidInput)
		}
		combo, err := uc.comboRepo.GetByID(ctx, it.ComboID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
		if combo == nil || !combo.Active {
			return nil, fmt.Errorf("%w: combo %s", domain.ErrNotFound, it.ComboID)
		}
		if detail.Name == "" {
			detail.Name = combo.Name
		}
		if it.UnitPrice == nil {
			detail.UnitPrice = combo.Price
		}
		return entity.ComboLine{ComboID: combo.ID, LineDetail: detail}, nil

	case entity.LineProduct:
		if it.InventoryItemID == "" {
			return nil, fmt.Errorf("%w: inventory_item_id requerido", domain.ErrInvalidInput)
		}
		item, err := uc.inventoryRepo.GetByID(ctx, it.InventoryItemID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
		if item == nil || !item.Active {
			return nil, fmt.Errorf("%w: ítem de inventario %s", domain.ErrNotFound, it.InventoryItemID)
		}
		if detail.Name == "" {
			detail.Name = item.Name
		}
		if it.UnitPrice == nil {
			detail.UnitPrice = item.SalePrice
		}
		return entity.ProductLine{InventoryItemID: item.ID, LineDetail: detail}, nil

	case entity.LineAdHoc:
		if it.UnitPrice == nil {
			return nil, fmt.Errorf("%w: unit_price requerido", domain.ErrInvalidInput)
		}
		return entity.AdHocLine{LineDetail: detail}, nil
	}
	return nil, fmt.Errorf("%w: tipo de línea %q", domain.ErrInvalidInput, it.Type)
}

//go:build integration

package postgres_test

// Tests contra PostgreSQL real levantado con testcontainers.
// Ejecutar con: go test -tags integration ./internal/infrastructure/postgres/... -v

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jhoicas/lavadero-api/internal/application/billing"
	"github.com/jhoicas/lavadero-api/internal/application/dto"
	"github.com/jhoicas/lavadero-api/internal/domain"
	"github.com/jhoicas/lavadero-api/internal/domain/entity"
	"github.com/jhoicas/lavadero-api/internal/domain/money"
	"github.com/jhoicas/lavadero-api/internal/domain/repository"
	"github.com/jhoicas/lavadero-api/internal/infrastructure/postgres"
	"github.com/jhoicas/lavadero-api/pkg/logger"
)

// ── Setup ────────────────────────────────────────────────────────────────────

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:15-alpine",
		tcPostgres.WithDatabase("lavadero_test"),
		tcPostgres.WithUsername("lavadero"),
		tcPostgres.WithPassword("lavadero"),
		tcPostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, pgC)
	require.NoError(t, err)

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPoolFromDSN(ctx, dsn, 60)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	applied, err := postgres.Migrate(ctx, pool)
	require.NoError(t, err)
	require.NotEmpty(t, applied)

	// Una segunda ejecución no reaplica nada.
	applied, err = postgres.Migrate(ctx, pool)
	require.NoError(t, err)
	require.Empty(t, applied)
	return pool
}

type seed struct {
	customerID  string
	serviceID   string
	waxID       string
	comboID     string
	itemID      string
	workOrderID string
}

func seedData(t *testing.T, pool *pgxpool.Pool) seed {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	require.NoError(t, postgres.NewCompanyConfigRepository(pool).Upsert(ctx, &entity.CompanyConfig{
		ID:             uuid.NewString(),
		RUC:            "80000519-8",
		LegalName:      "Lavadero Test S.A.",
		TimbradoNumber: "12345678",
		TimbradoFrom:   today.AddDate(-1, 0, 0),
		TimbradoUntil:  today.AddDate(0, 0, 45),
		Establishment:  "001",
		PointOfSale:    "001",
		City:           entity.DefaultCity,
		Currency:       entity.DefaultCurrency,
		CreatedAt:      now,
		UpdatedAt:      now,
	}))

	s := seed{
		customerID: uuid.NewString(), serviceID: uuid.NewString(), waxID: uuid.NewString(), comboID: uuid.NewString(),
		itemID: uuid.NewString(), workOrderID: uuid.NewString(),
	}
	require.NoError(t, postgres.NewCustomerRepository(pool).Create(ctx, &entity.Customer{
		ID: s.customerID, Name: "Juan Pérez", DocType: entity.DocTypeCI, DocNumber: "1234567", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, postgres.NewServiceRepository(pool).Create(ctx, &entity.Service{
		ID: s.serviceID, Name: "Lavado básico", Price: money.New(35000), DurationMin: 30, Category: "basico", Active: true, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, postgres.NewServiceRepository(pool).Create(ctx, &entity.Service{
		ID: s.waxID, Name: "Encerado", Price: money.New(40000), DurationMin: 45, Category: "encerado", Active: true, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, postgres.NewServiceComboRepository(pool).Create(ctx, &entity.ServiceCombo{
		ID: s.comboID, Name: "Combo brillo", Price: money.New(65000), ServiceIDs: []string{s.serviceID, s.waxID}, Active: true, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, postgres.NewInventoryItemRepository(pool).Create(ctx, &entity.InventoryItem{
		ID: s.itemID, Name: "Cera", Stock: 100, MinStock: 5, Unit: "UN", SalePrice: money.New(20000), AlertStatus: entity.AlertNormal, Active: true, CreatedAt: now, UpdatedAt: now,
	}))
	wo := &entity.WorkOrder{
		ID: s.workOrderID, CustomerID: s.customerID, VehiclePlate: "ABC 123", Status: entity.WorkOrderReady,
		ReceivedAt: now, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, postgres.NewWorkOrderRepository(pool).Create(ctx, wo))
	require.Positive(t, wo.Number)
	return s
}

func newSaleUseCase(pool *pgxpool.Pool, runner billing.SaleTxRunner) *billing.CreateSaleUseCase {
	checker := billing.NewTimbradoChecker(postgres.NewCompanyConfigRepository(pool), time.Now, time.UTC)
	return billing.NewCreateSaleUseCase(
		runner,
		checker,
		postgres.NewCustomerRepository(pool),
		postgres.NewServiceRepository(pool),
		postgres.NewServiceComboRepository(pool),
		postgres.NewInventoryItemRepository(pool),
		postgres.NewWorkOrderRepository(pool),
		logger.Nop(),
	)
}

// ── Inyección de fallas ──────────────────────────────────────────────────────

// failingRunner envuelve el TxRunner real y hace fallar la inserción de líneas.
type failingRunner struct {
	inner *postgres.TxRunner
}

type failingSaleRepo struct {
	repository.SaleRepository
}

func (failingSaleRepo) CreateItem(context.Context, *entity.SaleItem) error {
	return errors.New("falla inyectada en sale_items")
}

func (r failingRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	workOrderRepo repository.WorkOrderRepository,
	inventoryRepo repository.InventoryItemRepository,
) error) error {
	return r.inner.RunSale(ctx, func(s repository.SaleRepository, w repository.WorkOrderRepository, i repository.InventoryItemRepository) error {
		return fn(failingSaleRepo{SaleRepository: s}, w, i)
	})
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestIntegration_EmisionCompleta(t *testing.T) {
	pool := setupPool(t)
	s := seedData(t, pool)
	uc := newSaleUseCase(pool, postgres.NewTxRunner(pool))
	ctx := context.Background()

	resp, err := uc.CreateSale(ctx, "cajero-1", dto.CreateSaleRequest{
		WorkOrderID:   s.workOrderID,
		PaymentMethod: entity.PaymentCash,
		Items: []dto.LineItemRequest{
			{Type: "service", ServiceID: s.serviceID, Quantity: 1},
			{Type: "product", InventoryItemID: s.itemID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "001-001-0000001", resp.InvoiceNumber)
	assert.Equal(t, "75000", resp.Subtotal.String())
	assert.Equal(t, "7500", resp.Tax.String())
	assert.Equal(t, "82500", resp.Total.String())

	sale, err := postgres.NewSaleRepository(pool).GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.NotNil(t, sale)
	require.Len(t, sale.Items, 2)
	assert.Equal(t, "82500", sale.Total.String())

	wo, err := postgres.NewWorkOrderRepository(pool).GetByID(ctx, s.workOrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.WorkOrderDelivered, wo.Status)
	assert.NotNil(t, wo.DeliveredAt)
	assert.Equal(t, "82500", wo.Total.String())

	item, err := postgres.NewInventoryItemRepository(pool).GetByID(ctx, s.itemID)
	require.NoError(t, err)
	assert.Equal(t, 98, item.Stock)
}

func TestIntegration_ComboRepository(t *testing.T) {
	pool := setupPool(t)
	s := seedData(t, pool)
	ctx := context.Background()
	repo := postgres.NewServiceComboRepository(pool)

	combo, err := repo.GetByID(ctx, s.comboID)
	require.NoError(t, err)
	require.NotNil(t, combo)
	assert.Equal(t, []string{s.serviceID, s.waxID}, combo.ServiceIDs)
	assert.Equal(t, "65000", combo.Price.String())

	// Update reemplaza la composición completa.
	combo.ServiceIDs = []string{s.waxID, s.serviceID}
	combo.Active = false
	combo.UpdatedAt = time.Now()
	require.NoError(t, repo.Update(ctx, combo))

	got, err := repo.GetByID(ctx, s.comboID)
	require.NoError(t, err)
	assert.Equal(t, []string{s.waxID, s.serviceID}, got.ServiceIDs)
	assert.False(t, got.Active)

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	missing, err := repo.GetByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIntegration_FacturaConCombo(t *testing.T) {
	pool := setupPool(t)
	s := seedData(t, pool)
	ctx := context.Background()

	resp, err := newSaleUseCase(pool, postgres.NewTxRunner(pool)).CreateSale(ctx, "cajero-1", dto.CreateSaleRequest{
		CustomerID:    s.customerID,
		PaymentMethod: entity.PaymentCard,
		Items:         []dto.LineItemRequest{{Type: "combo", ComboID: s.comboID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "71500", resp.Total.String())

	sale, err := postgres.NewSaleRepository(pool).GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, entity.LineCombo, sale.Items[0].Kind)
	require.NotNil(t, sale.Items[0].ComboID)
	assert.Equal(t, s.comboID, *sale.Items[0].ComboID)
	assert.Nil(t, sale.Items[0].ServiceID)
	assert.Equal(t, "Combo brillo", sale.Items[0].Name)
}

func TestIntegration_FallaEnLineasNoDejaFacturaVisible(t *testing.T) {
	pool := setupPool(t)
	s := seedData(t, pool)
	ctx := context.Background()
	runner := postgres.NewTxRunner(pool)

	_, err := newSaleUseCase(pool, failingRunner{inner: runner}).CreateSale(ctx, "cajero-1", dto.CreateSaleRequest{
		WorkOrderID:   s.workOrderID,
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.LineItemRequest{{Type: "service", ServiceID: s.serviceID, Quantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrPersistence)

	saleRepo := postgres.NewSaleRepository(pool)
	got, err := saleRepo.GetByInvoiceNumber(ctx, "001-001-0000001")
	require.NoError(t, err)
	assert.Nil(t, got, "la cabecera no debe quedar visible")
	list, err := saleRepo.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	wo, err := postgres.NewWorkOrderRepository(pool).GetByID(ctx, s.workOrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.WorkOrderReady, wo.Status)

	// El reintento obtiene el mismo número.
	resp, err := newSaleUseCase(pool, runner).CreateSale(ctx, "cajero-1", dto.CreateSaleRequest{
		WorkOrderID:   s.workOrderID,
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.LineItemRequest{{Type: "service", ServiceID: s.serviceID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "001-001-0000001", resp.InvoiceNumber)
}

func TestIntegration_CincuentaVentasConcurrentes(t *testing.T) {
	pool := setupPool(t)
	s := seedData(t, pool)
	uc := newSaleUseCase(pool, postgres.NewTxRunner(pool))
	ctx := context.Background()
	const n = 50

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CreateSale(ctx, "cajero-1", dto.CreateSaleRequest{
				CustomerID:    s.customerID,
				PaymentMethod: entity.PaymentCash,
				Items:         []dto.LineItemRequest{{Type: "service", ServiceID: s.serviceID, Quantity: 1}},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	list, err := postgres.NewSaleRepository(pool).List(ctx, 100, 0)
	require.NoError(t, err)
	require.Len(t, list, n)
	numbers := make([]string, 0, n)
	for _, sale := range list {
		numbers = append(numbers, sale.InvoiceNumber)
	}
	sort.Strings(numbers)
	for i, got := range numbers {
		assert.Equal(t, fmt.Sprintf("001-001-%07d", i+1), got)
	}
}

func TestIntegration_NumeroDuplicadoRechazado(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := postgres.NewSaleRepository(pool)
	newSale := func() *entity.Sale {
		now := time.Now()
		return &entity.Sale{
			ID: uuid.NewString(), InvoiceNumber: "001-001-0000007", Establishment: "001", PointOfSale: "001",
			TimbradoNumber: "1", IssuedAt: now, Subtotal: money.New(1000), Total: money.New(1100), Tax: money.New(100),
			PaymentMethod: entity.PaymentCash, CreatedAt: now,
		}
	}
	require.NoError(t, repo.Create(ctx, newSale()))
	assert.ErrorIs(t, repo.Create(ctx, newSale()), domain.ErrDuplicate)

	last, err := repo.LastInvoiceNumber(ctx, "001", "001")
	require.NoError(t, err)
	assert.Equal(t, "001-001-0000007", last)

	last, err = repo.LastInvoiceNumber(ctx, "001", "002")
	require.NoError(t, err)
	assert.Empty(t, last)
}

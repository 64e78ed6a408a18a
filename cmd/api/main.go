package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/lavadero-api/internal/application/auth"
	"github.com/jhoicas/lavadero-api/internal/application/billing"
	"github.com/jhoicas/lavadero-api/internal/application/catalog"
	"github.com/jhoicas/lavadero-api/internal/application/inventory"
	"github.com/jhoicas/lavadero-api/internal/application/workorder"
	infrapdf "github.com/jhoicas/lavadero-api/internal/infrastructure/pdf"
	"github.com/jhoicas/lavadero-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/lavadero-api/internal/interfaces/http"
	"github.com/jhoicas/lavadero-api/pkg/config"
	"github.com/jhoicas/lavadero-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	loc := cfg.App.Location()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("tz", loc.String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones al día")
	}

	configRepo := postgres.NewCompanyConfigRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	comboRepo := postgres.NewServiceComboRepository(pool)
	inventoryRepo := postgres.NewInventoryItemRepository(pool)
	workOrderRepo := postgres.NewWorkOrderRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	checker := billing.NewTimbradoChecker(configRepo, time.Now, loc)
	companyConfigUC := billing.NewCompanyConfigUseCase(configRepo, time.Now)
	customerUC := billing.NewCustomerUseCase(customerRepo, time.Now)
	createSaleUC := billing.NewCreateSaleUseCase(
		txRunner, checker,
		customerRepo, serviceRepo, comboRepo, inventoryRepo, workOrderRepo,
		log,
	)
	saleQueryUC := billing.NewSaleQueryUseCase(saleRepo, customerRepo, configRepo)

	// PDF: factura impresa con los datos del timbrado
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	salePDFUC := billing.NewPDFUseCase(saleQueryUC, pdfGenerator)

	serviceUC := catalog.NewServiceUseCase(serviceRepo, time.Now)
	comboUC := catalog.NewComboUseCase(comboRepo, serviceRepo, time.Now)
	inventoryUC := inventory.NewUseCase(inventoryRepo, txRunner, time.Now, log)
	workOrderUC := workorder.NewUseCase(workOrderRepo, customerRepo, txRunner, time.Now, log)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Lavadero API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		CompanyConfigUC: companyConfigUC,
		Checker:         checker,
		CustomerUC:      customerUC,
		CreateSale:      createSaleUC,
		SaleQuery:       saleQueryUC,
		SalePDF:         salePDFUC,
		ServiceUC:       serviceUC,
		ComboUC:         comboUC,
		InventoryUC:     inventoryUC,
		WorkOrderUC:     workOrderUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

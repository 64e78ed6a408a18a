package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lavadero-api/internal/application/auth"
	"github.com/jhoicas/lavadero-api/internal/application/billing"
	"github.com/jhoicas/lavadero-api/internal/application/catalog"
	"github.com/jhoicas/lavadero-api/internal/application/inventory"
	"github.com/jhoicas/lavadero-api/internal/application/workorder"
	"github.com/jhoicas/lavadero-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	CompanyConfigUC *billing.CompanyConfigUseCase
	Checker         *billing.TimbradoChecker
	CustomerUC      *billing.CustomerUseCase
	CreateSale      *billing.CreateSaleUseCase
	SaleQuery       *billing.SaleQueryUseCase
	SalePDF         *billing.PDFUseCase
	ServiceUC       *catalog.ServiceUseCase
	ComboUC         *catalog.ComboUseCase
	InventoryUC     *inventory.UseCase
	WorkOrderUC     *workorder.UseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	adminOnly := RequireRole(entity.RoleAdmin)
	staff := RequireRole(entity.RoleAdmin, entity.RoleCashier)

	// Auth: login público, alta de usuarios solo admin
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), staff)
	protected.Post("/auth/users", adminOnly, authHandler.Register)

	// Configuración fiscal y timbrado
	companyHandler := NewCompanyConfigHandler(deps.CompanyConfigUC, deps.Checker)
	protected.Get("/company-config", companyHandler.Get)
	protected.Put("/company-config", adminOnly, companyHandler.Update)
	protected.Get("/timbrado/status", companyHandler.TimbradoStatus)

	// Clientes
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	// Catálogo de servicios (escritura solo admin)
	services := protected.Group("/services")
	serviceHandler := NewServiceHandler(deps.ServiceUC)
	services.Get("/", serviceHandler.List)
	services.Get("/:id", serviceHandler.GetByID)
	services.Post("/", adminOnly, serviceHandler.Create)
	services.Put("/:id", adminOnly, serviceHandler.Update)
	services.Delete("/:id", adminOnly, serviceHandler.Deactivate)

	// Combos de servicios (escritura solo admin)
	combos := protected.Group("/service-combos")
	comboHandler := NewServiceComboHandler(deps.ComboUC)
	combos.Get("/", comboHandler.List)
	combos.Get("/:id", comboHandler.GetByID)
	combos.Post("/", adminOnly, comboHandler.Create)
	combos.Put("/:id", adminOnly, comboHandler.Update)
	combos.Delete("/:id", adminOnly, comboHandler.Deactivate)

	// Inventario
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Get("/", inventoryHandler.List)
	inv.Get("/:id", inventoryHandler.GetByID)
	inv.Post("/", adminOnly, inventoryHandler.Create)
	inv.Put("/:id", adminOnly, inventoryHandler.Update)
	inv.Post("/:id/adjust", inventoryHandler.Adjust)

	// Órdenes de trabajo
	workOrders := protected.Group("/work-orders")
	workOrderHandler := NewWorkOrderHandler(deps.WorkOrderUC)
	workOrders.Post("/", workOrderHandler.Create)
	workOrders.Get("/", workOrderHandler.List)
	workOrders.Get("/:id", workOrderHandler.GetByID)
	workOrders.Patch("/:id/status", workOrderHandler.UpdateStatus)

	// Facturación: la emisión exige timbrado vigente
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleQuery, deps.SalePDF)
	sales.Post("/", RequireActiveTimbrado(deps.Checker), saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/print", saleHandler.Print)
	sales.Get("/:id/pdf", saleHandler.PDF)
}

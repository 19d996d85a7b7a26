package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/atp-api/internal/application/auth"
	"github.com/jhoicas/atp-api/internal/application/availability"
	"github.com/jhoicas/atp-api/internal/application/inventory"
	"github.com/jhoicas/atp-api/internal/application/marketing"
	"github.com/jhoicas/atp-api/internal/application/usecase"
	"github.com/jhoicas/atp-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC      *usecase.CompanyUseCase
	ModuleService  *usecase.ModuleService
	WarehouseUC    *usecase.WarehouseUseCase
	ProductUC      *usecase.ProductUseCase
	HandlingUnitUC *usecase.HandlingUnitUseCase
	UserUC         *usecase.UserUseCase
	StockChange    *inventory.StockChangeUseCase
	StockOverview  *inventory.StockOverviewUseCase
	Count          *inventory.CountUseCase
	Availability   *availability.UseCase
	CampaignUC     *marketing.CampaignUseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
	Log            zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies: alta y consulta públicas; modificar y activar módulos requiere admin de la propia empresa
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.ModuleService)
	companyAdmin := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin)}
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", append(companyAdmin, companyHandler.Update)...)
	companies.Post("/:id/modules", append(companyAdmin, companyHandler.ActivateModule)...)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	warehouseStaff := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Warehouses + locators
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseStaff, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseStaff, warehouseHandler.Update)
	warehouses.Delete("/:id", RequireRole(entity.RoleAdmin), warehouseHandler.Delete)
	warehouses.Post("/:id/locators", warehouseStaff, warehouseHandler.CreateLocator)
	warehouses.Get("/:id/locators", warehouseHandler.ListLocators)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Handling units
	hus := protected.Group("/handling-units")
	huHandler := NewHandlingUnitHandler(deps.HandlingUnitUC)
	hus.Post("/", warehouseStaff, huHandler.Create)
	hus.Get("/", huHandler.List)
	hus.Patch("/:id/status", warehouseStaff, huHandler.UpdateStatus)
	hus.Put("/:id/storage", warehouseStaff, huHandler.SetStorage)

	// Stock: libro, disponibilidad y existencias actuales
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockChange, deps.Availability, deps.StockOverview)
	stock.Post("/changes", warehouseStaff, stockHandler.RecordChange)
	stock.Post("/availability", stockHandler.Availability)
	stock.Get("/latest", stockHandler.Latest)

	// Inventories (módulo inventory)
	inventories := protected.Group("/inventories", RequireModule(entity.ModuleInventory, deps.ModuleService, deps.Log))
	inventoryHandler := NewInventoryHandler(deps.Count)
	inventories.Post("/", warehouseStaff, inventoryHandler.Create)
	inventories.Get("/:id", inventoryHandler.GetByID)
	inventories.Post("/:id/count-lines-from-hu", warehouseStaff, inventoryHandler.CountLinesFromHU)
	inventories.Patch("/:id/lines/:lineId", warehouseStaff, inventoryHandler.UpdateLine)
	inventories.Post("/:id/process", warehouseStaff, inventoryHandler.Process)
	inventories.Get("/:id/count-sheet", inventoryHandler.CountSheet)

	// Users
	marketingModule := RequireModule(entity.ModuleMarketing, deps.ModuleService, deps.Log)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id/newsletter", marketingModule, userHandler.SetNewsletter)

	// Campaigns (módulo marketing)
	campaigns := protected.Group("/campaigns", marketingModule)
	campaignHandler := NewCampaignHandler(deps.CampaignUC)
	campaigns.Post("/", RequireRole(entity.RoleAdmin), campaignHandler.Create)
	campaigns.Get("/:id/contacts", campaignHandler.ListContacts)
}

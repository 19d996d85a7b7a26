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

	_ "github.com/jhoicas/atp-api/docs"
	"github.com/jhoicas/atp-api/internal/application/auth"
	"github.com/jhoicas/atp-api/internal/application/availability"
	"github.com/jhoicas/atp-api/internal/application/inventory"
	"github.com/jhoicas/atp-api/internal/application/marketing"
	"github.com/jhoicas/atp-api/internal/application/usecase"
	inframarketing "github.com/jhoicas/atp-api/internal/infrastructure/marketing"
	infrapdf "github.com/jhoicas/atp-api/internal/infrastructure/pdf"
	"github.com/jhoicas/atp-api/internal/infrastructure/postgres"
	"github.com/jhoicas/atp-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/atp-api/internal/interfaces/http"
	"github.com/jhoicas/atp-api/pkg/config"
	"github.com/jhoicas/atp-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	locatorRepo := postgres.NewLocatorRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	huRepo := postgres.NewHandlingUnitRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	campaignRepo := postgres.NewCampaignRepository(pool)
	snapshotReader := postgres.NewStockSnapshotReader(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Sin MARKETING_BASE_URL la suscripción solo se registra localmente.
	var platform marketing.PlatformSync
	if cfg.Marketing.Enabled() {
		platform = inframarketing.NewPlatformClient(cfg.Marketing)
	}
	newsletter := marketing.NewNewsletterHandler(campaignRepo, companyRepo, platform, log.Component("newsletter"))

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	moduleSvc := usecase.NewModuleService(companyRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, locatorRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	huUC := usecase.NewHandlingUnitUseCase(huRepo, warehouseRepo, locatorRepo, productRepo)
	userUC := usecase.NewUserUseCase(userRepo, newsletter)
	campaignUC := marketing.NewCampaignUseCase(campaignRepo)

	stockChangeUC := inventory.NewStockChangeUseCase(txRunner, productRepo, warehouseRepo, log.Component("stock"))
	stockOverviewUC := inventory.NewStockOverviewUseCase(snapshotReader, warehouseRepo)
	countUC := inventory.NewCountUseCase(
		txRunner, inventoryRepo, warehouseRepo, locatorRepo, productRepo, huRepo, companyRepo,
		infrapdf.NewCountSheetGenerator(), log.Component("inventory"),
	)
	availabilityUC := availability.NewUseCase(snapshotReader, productRepo, log.Component("availability"))

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, newsletter, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Refresco periódico de la vista de existencias actuales.
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(cfg.Scheduler, snapshotReader, log.Component("scheduler"))
		if err := sched.Start(); err != nil {
			log.Fatal().Err(err).Msg("iniciar scheduler")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ATP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:      companyUC,
		ModuleService:  moduleSvc,
		WarehouseUC:    warehouseUC,
		ProductUC:      productUC,
		HandlingUnitUC: huUC,
		UserUC:         userUC,
		StockChange:    stockChangeUC,
		StockOverview:  stockOverviewUC,
		Count:          countUC,
		Availability:   availabilityUC,
		CampaignUC:     campaignUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
		Log:            log.Component("http"),
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

	if sched != nil {
		sched.Stop(shutdownCtx)
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

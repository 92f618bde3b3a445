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

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/purchasing"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	appxml "github.com/jhoicas/almacen-api/internal/application/xmlport"
	"github.com/jhoicas/almacen-api/internal/infrastructure/docstore"
	infrapdf "github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	infraxml "github.com/jhoicas/almacen-api/internal/infrastructure/xmlport"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	// Repositorios
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	categoryRepo := docstore.NewCategoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	registerTransactionUC := inventory.NewRegisterTransactionUseCase(txRunner, productRepo, warehouseRepo)
	returnUC := inventory.NewReturnUseCase(txRunner, productRepo, warehouseRepo, returnRepo)
	alertUC := inventory.NewAlertUseCase(stockRepo, alertRepo, cfg.Alert.DefaultThreshold)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, supplierRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	stockUC := usecase.NewStockUseCase(stockRepo, txnRepo, productRepo, warehouseRepo, registerTransactionUC)
	purchasingUC := purchasing.NewUseCase(txRunner, poRepo, supplierRepo, productRepo)
	poPDFGenerator := infrapdf.NewMarotoPOPDFGenerator(cfg.App.Name)
	poPDFUC := purchasing.NewPDFUseCase(poRepo, supplierRepo, productRepo, warehouseRepo, poPDFGenerator)
	catalogUC := catalog.NewUseCase(categoryRepo)
	reportsUC := reports.NewUseCase(reportRepo)
	xmlUC := appxml.NewUseCase(
		infraxml.NewCodec(),
		productRepo, categoryRepo, poRepo, supplierRepo, warehouseRepo,
		purchasingUC,
	)

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
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     productUC,
		SupplierUC:    supplierUC,
		WarehouseUC:   warehouseUC,
		StockUC:       stockUC,
		TransactionUC: registerTransactionUC,
		ReturnUC:      returnUC,
		AlertUC:       alertUC,
		PurchasingUC:  purchasingUC,
		POPDFUC:       poPDFUC,
		CatalogUC:     catalogUC,
		ReportsUC:     reportsUC,
		XMLUC:         xmlUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor HTTP")
	}
	log.Info().Msg("servidor detenido")
}

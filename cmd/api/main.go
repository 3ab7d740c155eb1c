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
	"github.com/tu-usuario/pos-ventas/internal/application/billing"
	"github.com/tu-usuario/pos-ventas/internal/application/catalog"
	"github.com/tu-usuario/pos-ventas/internal/application/ledger"
	"github.com/tu-usuario/pos-ventas/internal/application/sales"
	infrapdf "github.com/tu-usuario/pos-ventas/internal/infrastructure/pdf"
	"github.com/tu-usuario/pos-ventas/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/pos-ventas/internal/interfaces/http"
	"github.com/tu-usuario/pos-ventas/pkg/config"
	"github.com/tu-usuario/pos-ventas/pkg/logger"
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

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockLedger := ledger.New(txRunner, productRepo, movementRepo)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo)
	createSaleUC := sales.NewCreateSaleUseCase(
		txRunner, stockLedger, sales.NewSequencer(), invoiceUC, log,
	)
	saleQueryUC := sales.NewQueryUseCase(saleRepo)

	productUC := catalog.NewProductUseCase(productRepo)
	categoryUC := catalog.NewCategoryUseCase(categoryRepo)
	supplierUC := catalog.NewSupplierUseCase(supplierRepo)
	customerUC := catalog.NewCustomerUseCase(customerRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, saleRepo, pdfGenerator)

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
		Title:    "POS Ventas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		JWTSecret:  cfg.JWT.Secret,
		Products:   httpRouter.NewProductHandler(productUC, log),
		Categories: httpRouter.NewCategoryHandler(categoryUC, log),
		Suppliers:  httpRouter.NewSupplierHandler(supplierUC, log),
		Customers:  httpRouter.NewCustomerHandler(customerUC, log),
		Inventory:  httpRouter.NewInventoryHandler(stockLedger, log),
		Sales:      httpRouter.NewSaleHandler(createSaleUC, saleQueryUC, log),
		Invoices:   httpRouter.NewInvoiceHandler(invoicePDFUC, log),
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

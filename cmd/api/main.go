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
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/catalog"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/inventory"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/purchaseorder"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/shipment"
	"github.com/tomolostboard-sys/moana-logistics/internal/infrastructure/postgres"
	httpRouter "github.com/tomolostboard-sys/moana-logistics/internal/interfaces/http"
	"github.com/tomolostboard-sys/moana-logistics/pkg/config"
	"github.com/tomolostboard-sys/moana-logistics/pkg/logger"
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

	inventory.DefaultDockName = cfg.Dock.DefaultDockName

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)

	catalogUC := catalog.NewUseCase(
		postgres.NewSiteRepository(pool),
		postgres.NewLocationRepository(pool),
		postgres.NewProductRepository(pool),
		postgres.NewSupplierRepository(pool),
		postgres.NewActorRepository(pool),
	)

	poUC := purchaseorder.NewUseCase(postgres.PurchaseOrderTxRunner{TxRunner: txRunner}, inventoryRebuilder{})

	engine := inventory.NewEngine(postgres.InventoryTxRunner{TxRunner: txRunner}).WithPOAdvancer(poUC)

	shipmentUC := shipment.NewUseCase(postgres.ShipmentTxRunner{TxRunner: txRunner})

	pos := postgres.NewPurchaseOrderRepository(pool)
	shipments := postgres.NewShipmentRepository(pool)
	levels := postgres.NewStockLevelRepository(pool)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.NewString() },
	}))
	app.Use(func(c *fiber.Ctx) error {
		reqLog := log.With().Str("request_id", c.Locals(requestid.ConfigDefault.ContextKey.(string)).(string)).Logger()
		c.Locals("logger", &reqLog)
		err := c.Next()
		reqLog.Info().Str("method", c.Method()).Str("path", c.Path()).Int("status", c.Response().StatusCode()).Msg("request")
		return err
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Moana Logistics API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Catalog:       httpRouter.NewCatalogHandler(catalogUC),
		Stock:         httpRouter.NewStockHandler(levels, engine),
		PurchaseOrder: httpRouter.NewPurchaseOrderHandler(poUC, engine, pos),
		Shipment:      httpRouter.NewShipmentHandler(shipmentUC, shipments),
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

// inventoryRebuilder adapts inventory.RebuildQtyOnOrder to
// purchaseorder.Rebuilder without the two usecase packages importing each
// other (inventory.Engine already depends on purchaseorder for
// POAdvancer, so the reverse edge would be a cycle).
type inventoryRebuilder struct{}

func (inventoryRebuilder) RebuildQtyOnOrder(ctx context.Context, r purchaseorder.Repos, siteID int64, productIDs []int64) error {
	return inventory.RebuildQtyOnOrder(ctx, inventory.Repos{
		StockLevels:        r.StockLevels,
		PurchaseOrders:     r.PurchaseOrders,
		PurchaseOrderLines: r.PurchaseOrderLines,
		GoodsReceiptLines:  r.GoodsReceiptLines,
		Locations:          r.Locations,
	}, siteID, productIDs)
}

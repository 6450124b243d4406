// @title           Repuestos API
// @version         1.0
// @description     Catálogo de repuestos, asignación de stock y ciclo de vida de pedidos.
// @BasePath        /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "github.com/jhoicas/Repuestos-api/docs"
	"github.com/jhoicas/Repuestos-api/internal/application/bulk"
	"github.com/jhoicas/Repuestos-api/internal/application/cart"
	"github.com/jhoicas/Repuestos-api/internal/application/catalog"
	"github.com/jhoicas/Repuestos-api/internal/application/orders"
	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
	"github.com/jhoicas/Repuestos-api/internal/domain/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Repuestos-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Repuestos-api/internal/interfaces/http"
	"github.com/jhoicas/Repuestos-api/pkg/config"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
	"github.com/jhoicas/Repuestos-api/pkg/metrics"
)

// txRunner unidad de trabajo de pedidos y de stock; la implementan postgres.TxRunner y memory.Store.
type txRunner interface {
	orders.TxRunner
	catalog.StockTxRunner
}

// storage repositorios fuera de transacción más el runner del backend elegido.
type storage struct {
	tx       txRunner
	stock    repository.StockRepository
	orders   repository.OrderRepository
	items    repository.OrderItemRepository
	cart     repository.CartRepository
	profiles repository.CustomerProfileRepository
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Strs("pools", cfg.Stock.Pools).
		Msg("iniciando aplicación")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	engineMetrics := metrics.NewEngineMetrics(reg)

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, engineMetrics, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	// Idempotencia de pedidos: solo con Redis configurado.
	var idem ports.IdempotencyGuard
	if cfg.Redis.Enabled() {
		idemStore, err := infraredis.New(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer idemStore.Close()
		idem = idemStore
		log.Info().Dur("ttl", cfg.Redis.IdempotencyTTL).Msg("idempotencia de pedidos activa")
	}

	pools := inventory.NewPoolSet(cfg.Stock.Pools...)
	customerUC := usecase.NewCustomerUseCase(store.profiles, pools, cfg.Stock.DefaultPool, log)
	createOrderUC := orders.NewCreateOrderUseCase(store.tx, pools, idem, engineMetrics, log)
	catalogUC := catalog.NewUseCase(store.tx, store.stock, customerUC, pools, log)
	cartUC := cart.NewUseCase(store.cart, store.stock, customerUC, createOrderUC, log)
	bulkUC := bulk.NewUseCase(store.stock, customerUC, createOrderUC, log)
	queryUC := orders.NewQueryUseCase(store.orders, store.items)
	lifecycleUC := orders.NewLifecycleUseCase(store.tx, engineMetrics, log)

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
		Title:    "Repuestos API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:   catalogUC,
		CartUC:      cartUC,
		BulkUC:      bulkUC,
		OrderQuery:  queryUC,
		Lifecycle:   lifecycleUC,
		CustomerUC:  customerUC,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
		ServiceName: cfg.App.Name,
		Gatherer:    reg,
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

func openStorage(ctx context.Context, cfg *config.Config, m *metrics.EngineMetrics, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			tx:       s,
			stock:    s.Stock(),
			orders:   s.Orders(),
			items:    s.OrderItems(),
			cart:     s.Cart(),
			profiles: s.Profiles(),
			close:    func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, "up"); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &storage{
		tx:       postgres.NewTxRunner(pool, cfg.DB, m, log),
		stock:    postgres.NewStockRepository(pool),
		orders:   postgres.NewOrderRepository(pool),
		items:    postgres.NewOrderItemRepository(pool),
		cart:     postgres.NewCartRepository(pool),
		profiles: postgres.NewCustomerProfileRepository(pool),
		close:    pool.Close,
	}, nil
}

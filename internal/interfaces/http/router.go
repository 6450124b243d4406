package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Repuestos-api/internal/application/bulk"
	"github.com/jhoicas/Repuestos-api/internal/application/cart"
	"github.com/jhoicas/Repuestos-api/internal/application/catalog"
	"github.com/jhoicas/Repuestos-api/internal/application/orders"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC   *catalog.UseCase
	CartUC      *cart.UseCase
	BulkUC      *bulk.UseCase
	OrderQuery  *orders.QueryUseCase
	Lifecycle   *orders.LifecycleUseCase
	CustomerUC  *usecase.CustomerUseCase
	JWTSecret   string
	JWTIssuer   string
	ServiceName string
	// Gatherer expone /metrics; nil lo desactiva.
	Gatherer prometheus.Gatherer
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// Todo /api requiere Bearer Token
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	parts := api.Group("/catalog/parts")
	parts.Get("/", catalogHandler.Search)
	parts.Get("/:part", catalogHandler.GetPart)

	cartHandler := NewCartHandler(deps.CartUC)
	cartGroup := api.Group("/cart")
	cartGroup.Get("/", cartHandler.List)
	cartGroup.Post("/", cartHandler.Add)
	cartGroup.Delete("/", cartHandler.Clear)
	cartGroup.Post("/checkout", cartHandler.Checkout)
	cartGroup.Put("/:id", cartHandler.Update)
	cartGroup.Delete("/:id", cartHandler.Remove)

	bulkHandler := NewBulkHandler(deps.BulkUC)
	bulkGroup := api.Group("/bulk")
	bulkGroup.Post("/enquiry", bulkHandler.Enquiry)
	bulkGroup.Post("/orders", bulkHandler.Submit)

	orderHandler := NewOrderHandler(deps.OrderQuery, deps.Lifecycle)
	ordersGroup := api.Group("/orders")
	ordersGroup.Get("/", orderHandler.ListMine)
	ordersGroup.Get("/:id", orderHandler.GetMine)

	// Administración (rol admin)
	admin := api.Group("/admin", RequireRole(entity.RoleAdmin))
	admin.Put("/pools/:pool/stock", catalogHandler.ReplacePool)
	admin.Delete("/pools/:pool/stock", catalogHandler.WipePool)
	admin.Delete("/pools/:pool/orders", orderHandler.DeleteByPool)

	admin.Get("/orders", orderHandler.ListAll)
	admin.Delete("/orders", orderHandler.DeleteHistory)
	admin.Get("/orders/:id", orderHandler.Get)
	admin.Patch("/orders/:id/status", orderHandler.SetStatus)
	admin.Delete("/orders/:id", orderHandler.Delete)

	customerHandler := NewCustomerHandler(deps.CustomerUC)
	admin.Get("/customers", customerHandler.List)
	admin.Get("/customers/:id", customerHandler.Get)
	admin.Put("/customers/:id/pool", customerHandler.SetPool)
	admin.Put("/customers/:id/price-adjustment", customerHandler.SetPriceAdjustment)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Compras-api/internal/application/inventory"
	"github.com/jhoicas/Compras-api/internal/application/purchasing"
	"github.com/jhoicas/Compras-api/internal/application/replenish"
	"github.com/jhoicas/Compras-api/internal/application/rule"
	"github.com/jhoicas/Compras-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	ProviderUC       *usecase.ProviderUseCase
	RuleUC           *rule.UseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementQuery    *inventory.MovementQueryUseCase
	OrderUC          *purchasing.UseCase
	SweepUC          *replenish.SweepUseCase
}

// Router registra las rutas de la API. Todas exigen el header X-Company-ID.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", TenantMiddleware())

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Providers
	providers := api.Group("/providers")
	providerHandler := NewProviderHandler(deps.ProviderUC)
	providers.Post("/", providerHandler.Create)
	providers.Get("/", providerHandler.List)
	providers.Get("/:id", providerHandler.GetByID)
	providers.Put("/:id", providerHandler.Update)

	// Reorder rules
	rules := api.Group("/reorder-rules")
	ruleHandler := NewRuleHandler(deps.RuleUC)
	rules.Post("/", ruleHandler.Create)
	rules.Get("/", ruleHandler.List)
	rules.Get("/product/:productId", ruleHandler.GetByProduct)
	rules.Get("/:id", ruleHandler.GetByID)
	rules.Put("/:id", ruleHandler.Update)
	rules.Patch("/:id/toggle", ruleHandler.Toggle)
	rules.Delete("/:id", ruleHandler.Delete)

	// Inventory movements
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.MovementQuery)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements/:productId", inventoryHandler.ListByProduct)

	// Purchase orders
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/submit", orderHandler.Submit)
	orders.Post("/:id/approve", orderHandler.Approve)
	orders.Post("/:id/cancel", orderHandler.Cancel)
	orders.Post("/:id/send", orderHandler.Send)
	orders.Post("/:id/receive", orderHandler.Receive)

	// Replenishment sweep (bajo demanda)
	replenishment := api.Group("/replenishment")
	replenishHandler := NewReplenishHandler(deps.SweepUC)
	replenishment.Post("/sweep", replenishHandler.RunSweep)
}

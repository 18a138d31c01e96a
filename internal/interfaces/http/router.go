package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps are the handlers the router wires onto the /v1 surface
// (spec.md §6).
type RouterDeps struct {
	Catalog       *CatalogHandler
	Stock         *StockHandler
	PurchaseOrder *PurchaseOrderHandler
	Shipment      *ShipmentHandler
}

// Router registers every /v1 route.
func Router(app *fiber.App, deps RouterDeps) {
	v1 := app.Group("/v1", ActorMiddleware)

	sites := v1.Group("/sites")
	sites.Post("/", deps.Catalog.CreateSite)
	sites.Get("/", deps.Catalog.ListSites)

	locations := v1.Group("/locations")
	locations.Post("/", deps.Catalog.CreateLocation)
	locations.Get("/", deps.Catalog.ListLocations)

	products := v1.Group("/products")
	products.Post("/", deps.Catalog.CreateProduct)
	products.Get("/", deps.Catalog.ListProducts)

	suppliers := v1.Group("/suppliers")
	suppliers.Post("/", deps.Catalog.CreateSupplier)
	suppliers.Get("/", deps.Catalog.ListSuppliers)

	actors := v1.Group("/actors")
	actors.Post("/", deps.Catalog.CreateActor)
	actors.Get("/", deps.Catalog.ListActors)

	stock := v1.Group("/stock")
	stock.Get("/", deps.Stock.List)

	movements := v1.Group("/stock-movements")
	movements.Post("/transfer", deps.Stock.Transfer)
	movements.Post("/reserve", deps.Stock.Reserve)
	movements.Post("/unreserve", deps.Stock.Unreserve)
	movements.Post("/issue", deps.Stock.Issue)

	purchaseOrders := v1.Group("/purchase-orders")
	purchaseOrders.Post("/", deps.PurchaseOrder.Create)
	purchaseOrders.Get("/", deps.PurchaseOrder.List)
	purchaseOrders.Post("/:id/transition", deps.PurchaseOrder.Transition)

	v1.Post("/goods-receipts", deps.PurchaseOrder.ReceiveGoods)

	shipments := v1.Group("/shipments")
	shipments.Post("/", deps.Shipment.Create)
	shipments.Get("/", deps.Shipment.List)
	shipments.Post("/:id/events", deps.Shipment.AppendEvent)
	shipments.Post("/:id/containers", deps.Shipment.RegisterContainer)
}

package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps handlers y configuración que el router necesita.
type RouterDeps struct {
	JWTSecret string

	Products   *ProductHandler
	Categories *CategoryHandler
	Suppliers  *SupplierHandler
	Customers  *CustomerHandler
	Inventory  *InventoryHandler
	Sales      *SaleHandler
	Invoices   *InvoiceHandler
}

// Router monta todas las rutas de la API bajo /api, protegidas con JWT.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	products := api.Group("/products")
	products.Post("/", deps.Products.Create)
	products.Get("/", deps.Products.List)
	products.Get("/:id", deps.Products.GetByID)
	products.Put("/:id", deps.Products.Update)
	products.Delete("/:id", deps.Products.Retire)
	products.Get("/:id/stock", deps.Inventory.GetStock)
	products.Get("/:id/movements", deps.Inventory.ListMovements)

	categories := api.Group("/categories")
	categories.Post("/", deps.Categories.Create)
	categories.Get("/", deps.Categories.List)
	categories.Get("/:id", deps.Categories.GetByID)
	categories.Delete("/:id", deps.Categories.Retire)

	suppliers := api.Group("/suppliers")
	suppliers.Post("/", deps.Suppliers.Create)
	suppliers.Get("/", deps.Suppliers.List)
	suppliers.Get("/:id", deps.Suppliers.GetByID)
	suppliers.Delete("/:id", deps.Suppliers.Retire)

	customers := api.Group("/customers")
	customers.Post("/", deps.Customers.Create)
	customers.Get("/", deps.Customers.List)
	customers.Get("/:id", deps.Customers.GetByID)
	customers.Delete("/:id", deps.Customers.Retire)

	inventory := api.Group("/inventory")
	inventory.Post("/movements", deps.Inventory.RegisterMovement)

	salesGroup := api.Group("/sales")
	salesGroup.Post("/", deps.Sales.Create)
	salesGroup.Get("/", deps.Sales.List)
	salesGroup.Get("/:id", deps.Sales.GetByID)
	salesGroup.Post("/:id/void", deps.Sales.Void)

	invoices := api.Group("/invoices")
	invoices.Get("/:id/pdf", deps.Invoices.DownloadPDF)
}

package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Inventory *InventoryHandler
}

// Router registra las rutas de la API bajo /api/v1.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	inv := api.Group("/inventory")
	// La ruta estática debe registrarse antes que /:product_id
	inv.Get("/products-with-stock", deps.Inventory.GetProductsWithStock)
	inv.Post("/", deps.Inventory.CreateInventory)
	inv.Get("/:product_id", deps.Inventory.GetInventory)
	inv.Put("/:product_id/stock", deps.Inventory.UpdateStock)
	inv.Delete("/:product_id", deps.Inventory.DeleteInventory)
}

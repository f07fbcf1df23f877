package routes

import (
	"parttrack/controllers"
	"parttrack/services"

	"github.com/gofiber/fiber/v2"
)

func SetupInventoryRoutes(api fiber.Router, svc *services.Services) {
	controller := &controllers.InventoryController{Boms: svc.Boms}
	group := api.Group("/inventory")

	group.Get("/", controller.Inventory)
	group.Get("/locations", controller.Locations)
	group.Get("/locations/export", controller.ExportLocations)
}

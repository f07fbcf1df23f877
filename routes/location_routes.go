package routes

import (
	"parttrack/controllers"
	"parttrack/middleware"
	"parttrack/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLocationRoutes(api fiber.Router, svc *services.Services) {
	controller := &controllers.LocationController{Locations: svc.Locations}
	group := api.Group("/locations")

	group.Get("/", controller.List)
	group.Get("/occupancy", controller.Occupancy)
	group.Post("/eligible", controller.Eligible)
	group.Post("/", middleware.RequireAdmin, controller.Create)
	group.Post("/import", middleware.RequireAdmin, controller.Import)
	group.Delete("/:id", middleware.RequireAdmin, controller.Delete)
}

package routes

import (
	"parttrack/controllers"
	"parttrack/middleware"
	"parttrack/services"

	"github.com/gofiber/fiber/v2"
)

func SetupContainerRoutes(api fiber.Router, svc *services.Services) {
	controller := &controllers.ContainerController{Containers: svc.Containers, Shipping: svc.Shipping}
	group := api.Group("/containers")

	group.Get("/", controller.List)
	group.Get("/:id", controller.Get)
	group.Post("/:id/ship", controller.Ship)
	group.Put("/:id/move", controller.Move)
	group.Delete("/:id", middleware.RequireAdmin, controller.Delete)
}

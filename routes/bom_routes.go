package routes

import (
	"parttrack/controllers"
	"parttrack/middleware"
	"parttrack/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBomRoutes(api fiber.Router, svc *services.Services) {
	controller := &controllers.BomController{Boms: svc.Boms}
	group := api.Group("/boms")

	group.Post("/import", controller.Import)
	group.Post("/import/upload", controller.ImportUpload)
	group.Post("/import/commit", controller.CommitImport)
	group.Get("/", controller.List)
	group.Get("/history/:job", controller.History)
	group.Get("/:id", controller.Get)
	group.Put("/:id", controller.Update)
	group.Delete("/:id", middleware.RequireAdmin, controller.Delete)
}

package routes

import (
	"parttrack/controllers"
	"parttrack/services"

	"github.com/gofiber/fiber/v2"
)

func SetupReceivingRoutes(api fiber.Router, svc *services.Services) {
	controller := &controllers.ReceivingController{Receiving: svc.Receiving}
	api.Post("/receive", controller.Receive)
}

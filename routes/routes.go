package routes

import (
	"parttrack/config"
	"parttrack/database"
	"parttrack/logger"
	"parttrack/middleware"
	"parttrack/services"
	"parttrack/wms/master/category"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup mounts the whole API under cfg.MainRoutes.
func Setup(app *fiber.App, cfg config.Config, db *gorm.DB, svc *services.Services, log *logger.Logger) {
	app.Use(middleware.RequestLogger(log))
	config.SetupCORS(app, cfg.AllowedOrigins)

	app.Get("/health", healthHandler(db))

	api := app.Group(cfg.MainRoutes, middleware.Auth(cfg.JWTSecret, !cfg.IsProduction()))
	SetupReceivingRoutes(api, svc)
	SetupContainerRoutes(api, svc)
	SetupBomRoutes(api, svc)
	SetupInventoryRoutes(api, svc)
	SetupLocationRoutes(api, svc)
	category.SetupCategoryRoutes(api, svc.Categories)
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := database.Ping(db); err != nil {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"success": false,
				"message": "database unreachable",
			})
		}
		return ctx.JSON(fiber.Map{"success": true, "message": "ok"})
	}
}

package category

import (
	"parttrack/middleware"
	"parttrack/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCategoryRoutes(api fiber.Router, svc *services.CategoryService) {
	handler := NewCategoryHandler(svc)
	group := api.Group("/categories")

	group.Get("/", handler.GetAllCategories)
	group.Post("/", middleware.RequireAdmin, handler.CreateCategory)
	group.Delete("/:id", middleware.RequireAdmin, handler.DeleteCategory)
}

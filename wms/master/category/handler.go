package category

import (
	"parttrack/controllers"
	"parttrack/models"
	"parttrack/services"
	"parttrack/types"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Categories *services.CategoryService
}

func NewCategoryHandler(svc *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{Categories: svc}
}

func (h *CategoryHandler) GetAllCategories(ctx *fiber.Ctx) error {
	categories, err := h.Categories.ListCategories(ctx.UserContext())
	if err != nil {
		return controllers.RespondError(ctx, err)
	}
	return controllers.Respond(ctx, fiber.StatusOK, "Categories retrieved successfully", categories)
}

func (h *CategoryHandler) CreateCategory(ctx *fiber.Ctx) error {
	var input models.Category
	if err := ctx.BodyParser(&input); err != nil {
		return controllers.RespondError(ctx, fiber.NewError(fiber.StatusBadRequest, "Invalid request body"))
	}
	category, err := h.Categories.CreateCategory(ctx.UserContext(), models.Category{Name: input.Name, Description: input.Description})
	if err != nil {
		return controllers.RespondError(ctx, err)
	}
	return controllers.Respond(ctx, fiber.StatusCreated, "Category created successfully", category)
}

func (h *CategoryHandler) DeleteCategory(ctx *fiber.Ctx) error {
	id, err := types.ParseSnowflakeID(ctx.Params("id"))
	if err != nil {
		return controllers.RespondError(ctx, fiber.NewError(fiber.StatusBadRequest, "Invalid category id"))
	}
	if err := h.Categories.DeleteCategory(ctx.UserContext(), id); err != nil {
		return controllers.RespondError(ctx, err)
	}
	return controllers.Respond(ctx, fiber.StatusOK, "Category deleted successfully", nil)
}

package controllers

import (
	"parttrack/middleware"
	"parttrack/services"

	"github.com/gofiber/fiber/v2"
)

type ContainerController struct {
	Containers *services.ContainerService
	Shipping   *services.ShippingService
}

func (c *ContainerController) List(ctx *fiber.Ctx) error {
	containers, err := c.Containers.ListContainers(ctx.UserContext(), ctx.Query("job"))
	if err != nil {
		return RespondError(ctx, err)
	}
	return Respond(ctx, fiber.StatusOK, "Containers retrieved successfully", containers)
}

func (c *ContainerController) Get(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return RespondError(ctx, err)
	}
	container, err := c.Containers.GetContainer(ctx.UserContext(), id)
	if err != nil {
		return RespondError(ctx, err)
	}
	return Respond(ctx, fiber.StatusOK, "Container retrieved successfully", container)
}

func (c *ContainerController) Ship(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return RespondError(ctx, err)
	}
	result, err := c.Shipping.ShipContainer(ctx.UserContext(), id, middleware.UserName(ctx))
	if err != nil {
		return RespondError(ctx, err)
	}

	message := "Container shipped"
	if len(result.OverShipments) > 0 {
		message = "Container shipped, some lines exceeded the stock on hand"
	}
	return Respond(ctx, fiber.StatusOK, message, result)
}

type moveRequest struct {
	ShelfLocation string `json:"shelf_location"`
}

func (c *ContainerController) Move(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return RespondError(ctx, err)
	}
	var req moveRequest
	if err := parseBody(ctx, &req); err != nil {
		return RespondError(ctx, err)
	}
	container, err := c.Containers.MoveContainer(ctx.UserContext(), id, req.ShelfLocation, middleware.UserName(ctx))
	if err != nil {
		return RespondError(ctx, err)
	}
	return Respond(ctx, fiber.StatusOK, "Container moved", container)
}

func (c *ContainerController) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return RespondError(ctx, err)
	}
	if err := c.Containers.DeleteContainer(ctx.UserContext(), id, middleware.UserName(ctx)); err != nil {
		return RespondError(ctx, err)
	}
	return Respond(ctx, fiber.StatusOK, "Container deleted", nil)
}

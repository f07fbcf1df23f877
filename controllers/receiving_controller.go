package controllers

import (
	"parttrack/middleware"
	"parttrack/services"

	"github.com/gofiber/fiber/v2"
)

type ReceivingController struct {
	Receiving *services.ReceivingService
}

func (c *ReceivingController) Receive(ctx *fiber.Ctx) error {
	var req services.ReceiveRequest
	if err := parseBody(ctx, &req); err != nil {
		return RespondError(ctx, err)
	}
	req.ReceivedBy = middleware.UserName(ctx)

	result, err := c.Receiving.ReceiveContainers(ctx.UserContext(), req)
	if err != nil {
		return RespondError(ctx, err)
	}

	message := "Containers received"
	if !result.BomUpdated {
		message = "Containers received, no BOM found for the job"
	}
	return Respond(ctx, fiber.StatusCreated, message, result)
}

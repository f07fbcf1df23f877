package controllers

import (
	"parttrack/middleware"
	"parttrack/services"

	"github.com/gofiber/fiber/v2"
)

type LocationController struct {
	Locations *services.LocationService
}

func (c *LocationController) List(ctx *fiber.Ctx) error {
	locations, err := c.Locations.ListLocations(ctx.UserContext())
	if err != nil {
		return RespondError(ctx, err)
	}
	return Respond(ctx, fiber.StatusOK, "Locations retrieved successfully", locations)
}

type createLocationRequest struct {
	Name string `json:"name"`
}

func (c *LocationController) Create(ctx *fiber.Ctx) error {
	var req createLocationRequest
	if err := parseBody(ctx, &req); err != nil {
		return RespondError(ctx, err)
	}
	location, err := c.Locations.CreateLocation(ctx.UserContext(), req.Name, middleware.UserName(ctx))
	if err != nil {
		return RespondError(ctx, err)
	}
	return Respond(ctx, fiber.StatusCreated, "Location created", location)
}

func (c *LocationController) Import(ctx *fiber.Ctx) error {
	rows, err := readUpload(ctx)
	if err != nil {
		return RespondError(ctx, err)
	}
	result, err := c.Locations.ImportLocations(ctx.UserContext(), rows, middleware.UserName(ctx))
	if err != nil {
		return RespondError(ctx, err)
	}
	return Respond(ctx, fiber.StatusCreated, "Locations imported", result)
}

type eligibleRequest struct {
	InFlight []string `json:"in_flight"`
	Current  string   `json:"current"`
}

func (c *LocationController) Eligible(ctx *fiber.Ctx) error {
	var req eligibleRequest
	if err := parseBody(ctx, &req); err != nil {
		return RespondError(ctx, err)
	}
	locations, err := c.Locations.EligibleShelves(ctx.UserContext(), req.InFlight, req.Current)
	if err != nil {
		return RespondError(ctx, err)
	}
	return Respond(ctx, fiber.StatusOK, "Eligible shelves retrieved successfully", locations)
}

func (c *LocationController) Occupancy(ctx *fiber.Ctx) error {
	occupancy, err := c.Locations.Occupancy(ctx.UserContext())
	if err != nil {
		return RespondError(ctx, err)
	}
	return Respond(ctx, fiber.StatusOK, "Shelf occupancy retrieved successfully", occupancy)
}

func (c *LocationController) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return RespondError(ctx, err)
	}
	if err := c.Locations.DeleteLocation(ctx.UserContext(), id, middleware.UserName(ctx)); err != nil {
		return RespondError(ctx, err)
	}
	return Respond(ctx, fiber.StatusOK, "Location deleted", nil)
}

package controllers

import (
	"strconv"

	"parttrack/inventory"
	"parttrack/middleware"
	"parttrack/models"
	"parttrack/services"

	"github.com/gofiber/fiber/v2"
)

type BomController struct {
	Boms *services.BomService
}

func (c *BomController) Import(ctx *fiber.Ctx) error {
	var req services.ImportRequest
	if err := parseBody(ctx, &req); err != nil {
		return RespondError(ctx, err)
	}
	return c.runImport(ctx, req)
}

// ImportUpload takes a multipart .xlsx or .csv in "file" with the "type"
// and "confirmed" form fields.
func (c *BomController) ImportUpload(ctx *fiber.Ctx) error {
	rows, err := readUpload(ctx)
	if err != nil {
		return RespondError(ctx, err)
	}
	confirmed, _ := strconv.ParseBool(ctx.FormValue("confirmed"))
	return c.runImport(ctx, services.ImportRequest{
		Rows:      rows,
		Type:      models.BomType(ctx.FormValue("type", string(models.BomTypeOrder))),
		Confirmed: confirmed,
	})
}

func (c *BomController) runImport(ctx *fiber.Ctx, req services.ImportRequest) error {
	req.ImportedBy = middleware.UserName(ctx)
	result, err := c.Boms.ImportBom(ctx.UserContext(), req)
	if err != nil {
		return RespondError(ctx, err)
	}
	if !result.Committed {
		return Respond(ctx, fiber.StatusOK, "BOM preview, confirm to import", result)
	}
	return Respond(ctx, fiber.StatusCreated, "BOM imported", result)
}

// CommitImport stores a preview the user reviewed and possibly edited.
func (c *BomController) CommitImport(ctx *fiber.Ctx) error {
	var parsed inventory.ParsedBom
	if err := parseBody(ctx, &parsed); err != nil {
		return RespondError(ctx, err)
	}
	bom, err := c.Boms.CommitImport(ctx.UserContext(), &parsed, middleware.UserName(ctx))
	if err != nil {
		return RespondError(ctx, err)
	}
	return Respond(ctx, fiber.StatusCreated, "BOM imported", services.ImportResult{
		Preview:   &parsed,
		Committed: true,
		BomID:     &bom.ID,
	})
}

func (c *BomController) List(ctx *fiber.Ctx) error {
	boms, err := c.Boms.ListBoms(ctx.UserContext(), ctx.Query("job"))
	if err != nil {
		return RespondError(ctx, err)
	}
	return Respond(ctx, fiber.StatusOK, "BOMs retrieved successfully", boms)
}

func (c *BomController) Get(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return RespondError(ctx, err)
	}
	bom, err := c.Boms.GetBom(ctx.UserContext(), id)
	if err != nil {
		return RespondError(ctx, err)
	}
	return Respond(ctx, fiber.StatusOK, "BOM retrieved successfully", bom)
}

func (c *BomController) Update(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return RespondError(ctx, err)
	}
	var req services.UpdateBomRequest
	if err := parseBody(ctx, &req); err != nil {
		return RespondError(ctx, err)
	}
	req.UpdatedBy = middleware.UserName(ctx)

	bom, err := c.Boms.UpdateBom(ctx.UserContext(), id, req)
	if err != nil {
		return RespondError(ctx, err)
	}
	return Respond(ctx, fiber.StatusOK, "BOM updated", bom)
}

func (c *BomController) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return RespondError(ctx, err)
	}
	if err := c.Boms.DeleteBom(ctx.UserContext(), id, middleware.UserName(ctx)); err != nil {
		return RespondError(ctx, err)
	}
	return Respond(ctx, fiber.StatusOK, "BOM deleted", nil)
}

func (c *BomController) History(ctx *fiber.Ctx) error {
	rows, err := c.Boms.History(ctx.UserContext(), ctx.Params("job"))
	if err != nil {
		return RespondError(ctx, err)
	}
	return Respond(ctx, fiber.StatusOK, "History retrieved successfully", rows)
}

package controllers

import (
	"strings"

	"parttrack/middleware"
	"parttrack/services"
	"parttrack/spreadsheet"

	"github.com/gofiber/fiber/v2"
)

type InventoryController struct {
	Boms *services.BomService
}

func filterFrom(ctx *fiber.Ctx) services.InventoryFilter {
	return services.InventoryFilter{
		Search: ctx.Query("search"),
		Mine:   ctx.QueryBool("mine"),
		User:   middleware.UserName(ctx),
	}
}

func sortFrom(ctx *fiber.Ctx) services.LocationSort {
	return services.LocationSort{
		Column: ctx.Query("sort", services.SortLocation),
		Desc:   strings.EqualFold(ctx.Query("dir"), "desc"),
	}
}

func (c *InventoryController) Inventory(ctx *fiber.Ctx) error {
	rows, err := c.Boms.Inventory(ctx.UserContext(), filterFrom(ctx))
	if err != nil {
		return RespondError(ctx, err)
	}
	return Respond(ctx, fiber.StatusOK, "Inventory retrieved successfully", rows)
}

func (c *InventoryController) Locations(ctx *fiber.Ctx) error {
	rows, err := c.Boms.LocationReport(ctx.UserContext(), filterFrom(ctx), sortFrom(ctx))
	if err != nil {
		return RespondError(ctx, err)
	}
	return Respond(ctx, fiber.StatusOK, "Location report retrieved successfully", rows)
}

var locationReportHeaders = []string{
	"Location", "Job Number", "Job Name", "Project Manager", "Primary Field Leader",
	"Description", "Order BOM Qty", "Design BOM Qty", "On Hand", "Shipped", "Last Updated",
}

// ExportLocations sends the location report, filtered and sorted like the
// JSON endpoint, as an .xlsx download.
func (c *InventoryController) ExportLocations(ctx *fiber.Ctx) error {
	rows, err := c.Boms.LocationReport(ctx.UserContext(), filterFrom(ctx), sortFrom(ctx))
	if err != nil {
		return RespondError(ctx, err)
	}

	data := make([][]interface{}, len(rows))
	for i, r := range rows {
		data[i] = []interface{}{
			r.Location, r.JobNumber, r.JobName, r.ProjectManager, r.PrimaryFieldLeader,
			r.Description, r.OrderBomQuantity, r.DesignBomQuantity, r.OnHandQuantity, r.ShippedQuantity,
			r.LastUpdated.Format("2006-01-02 15:04"),
		}
	}

	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory-by-location.xlsx"`)
	if err := spreadsheet.WriteXLSX(ctx.Response().BodyWriter(), "Locations", locationReportHeaders, data); err != nil {
		return RespondError(ctx, err)
	}
	return nil
}

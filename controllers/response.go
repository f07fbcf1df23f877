package controllers

import (
	"errors"

	"parttrack/apperror"
	"parttrack/types"

	"github.com/gofiber/fiber/v2"
)

func Respond(ctx *fiber.Ctx, status int, message string, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// RespondError writes err in the common envelope. Service errors map to a
// status by kind; anything else is a 500 with a generic message.
func RespondError(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"
	var fields map[string]string

	var ae *apperror.Error
	if errors.As(err, &ae) {
		message = ae.Message
		fields = ae.Fields
		switch ae.Kind {
		case apperror.KindValidation:
			status = fiber.StatusBadRequest
		case apperror.KindNotFound:
			status = fiber.StatusNotFound
		case apperror.KindConflict:
			status = fiber.StatusConflict
		case apperror.KindStoreUnavailable:
			status = fiber.StatusServiceUnavailable
		}
	} else {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			message = fe.Message
		}
	}

	body := fiber.Map{
		"success": false,
		"message": message,
	}
	if len(fields) > 0 {
		body["errors"] = fields
	}
	return ctx.Status(status).JSON(body)
}

func paramID(ctx *fiber.Ctx) (types.SnowflakeID, error) {
	id, err := types.ParseSnowflakeID(ctx.Params("id"))
	if err != nil {
		return 0, apperror.Validation("invalid id %q", ctx.Params("id"))
	}
	return id, nil
}

func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return apperror.Validation("invalid request body")
	}
	return nil
}

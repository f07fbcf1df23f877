package middleware

import (
	"time"

	"parttrack/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// RequestLogger tags every request with an ID, reusing the caller's
// X-Request-ID when present, and writes one access log line per request.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		requestID := ctx.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Set(HeaderRequestID, requestID)
		ctx.Locals("requestID", requestID)

		err := ctx.Next()
		if err != nil {
			// let the app's error handler write the response before we read the status
			if handlerErr := ctx.App().ErrorHandler(ctx, err); handlerErr != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := ctx.Response().StatusCode()
		fields := []interface{}{
			"request_id", requestID,
			"method", ctx.Method(),
			"path", ctx.Path(),
			"status", status,
			"latency", time.Since(start),
		}
		if user := UserName(ctx); user != "" {
			fields = append(fields, "user", user)
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= fiber.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
		return nil
	}
}

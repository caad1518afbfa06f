package serverutils

import (
	"errors"

	"parish-portal-be/internal/pkg/apperror"
	"parish-portal-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler renders any handler error as the JSON envelope.
// Typed service errors keep their status; anything else becomes a 500 and is logged.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		if appErr, ok := apperror.As(err); ok {
			status := appErr.Status()
			message := appErr.Message
			if status >= fiber.StatusInternalServerError {
				log.Error("HTTP", message, map[string]interface{}{
					"error":  appErr.Error(),
					"path":   ctx.Path(),
					"method": ctx.Method(),
				})
			}
			return ctx.Status(status).JSON(ErrorResponse(status, message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("HTTP", "unhandled error", map[string]interface{}{
			"error":  err.Error(),
			"path":   ctx.Path(),
			"method": ctx.Method(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}

// ErrorHandlerMiddleware converts errors returned further down the chain before
// fiber's own handler sees them, so groups mounted on sub-apps render the same envelope.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	handle := NewErrorHandler(log)
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			return handle(ctx, err)
		}
		return nil
	}
}

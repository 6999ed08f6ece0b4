package serverutils

import (
	"errors"

	"docgentor-be/internal/pkg/logger"
	"docgentor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type errorMapping struct {
	target  error
	status  int
	message string // empty means the error text is safe to show
}

// Upstream and configuration failures reach the client only as a generic
// message; the detail stays in the server log.
var errorMappings = []errorMapping{
	{service.ErrValidation, fiber.StatusBadRequest, ""},
	{service.ErrInvalidPlan, fiber.StatusBadRequest, ""},
	{service.ErrLoginRequired, fiber.StatusUnauthorized, "Sign in to continue"},
	{service.ErrForbidden, fiber.StatusForbidden, "Forbidden"},
	{service.ErrPaymentAlreadyRedeemed, fiber.StatusConflict, "Payment has already been redeemed"},
	{service.ErrPaymentNotConfigured, fiber.StatusInternalServerError, "Payment service is not configured"},
	{service.ErrUpstream, fiber.StatusBadGateway, "Payment processor error"},
	{service.ErrServiceUnavailable, fiber.StatusServiceUnavailable, "Service temporarily unavailable"},
}

// StatusOf maps an error returned by a handler to its HTTP status and the
// message the client may see.
func StatusOf(err error) (int, string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fe.Message
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			if m.message == "" {
				return m.status, err.Error()
			}
			return m.status, m.message
		}
	}
	return fiber.StatusInternalServerError, "Internal server error"
}

func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		status, message := StatusOf(err)
		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"status": status,
				"error":  err.Error(),
			})
		}
		return ctx.Status(status).JSON(ErrorResponse(status, message))
	}
}

// ErrorHandlerMiddleware renders handler errors before they reach fiber's
// default handler.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	handle := ErrorHandler(log)
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			return handle(ctx, err)
		}
		return nil
	}
}

package utils

import (
	"errors"
	"log/slog"

	"github.com/carrybid/carrybid/backend/models"
	"github.com/carrybid/carrybid/internal/domain/fault"
	"github.com/gofiber/fiber/v2"
)

// SendDomainError maps a domain error onto the response envelope. Errors
// outside the known categories are logged and hidden behind a generic
// message.
func SendDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, fault.ErrValidation):
		return SendUnprocessableEntity(c, err.Error(), fault.Fields(err))
	case errors.Is(err, fault.ErrForbidden):
		return SendForbidden(c, err.Error())
	case errors.Is(err, fault.ErrNotFound):
		return SendNotFound(c, err.Error())
	case errors.Is(err, fault.ErrInvalidState):
		return SendError(c, fiber.StatusConflict, models.CodeInvalidState, err.Error(), nil)
	case errors.Is(err, fault.ErrConflict):
		return SendConflict(c, err.Error(), nil)
	}

	slog.Error("Request failed",
		slog.String("type", "error"),
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.Any("error", err))
	return SendInternalServerError(c, "Something went wrong")
}

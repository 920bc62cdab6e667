package utils

import (
	"net/http"
	"strings"

	"github.com/carrybid/carrybid/backend/models"
	"github.com/gofiber/fiber/v2"
)

func SendJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

func SendSuccess(c *fiber.Ctx, data interface{}, message string) error {
	return SendJSON(c, http.StatusOK, models.Ok(data, message))
}

func SendCreated(c *fiber.Ctx, data interface{}, message string) error {
	return SendJSON(c, http.StatusCreated, models.Ok(data, message))
}

// SendError answers with an error envelope. An empty code falls back to the
// status's default.
func SendError(c *fiber.Ctx, statusCode int, code, message string, details map[string]string) error {
	if code == "" {
		code = models.CodeFor(statusCode)
	}
	return SendJSON(c, statusCode, models.Fail(code, message, details))
}

func SendBadRequest(c *fiber.Ctx, message string, details map[string]string) error {
	return SendError(c, http.StatusBadRequest, models.CodeBadRequest, message, details)
}

func SendUnauthorized(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusUnauthorized, models.CodeUnauthorized, message, nil)
}

func SendForbidden(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusForbidden, models.CodeForbidden, message, nil)
}

func SendNotFound(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusNotFound, models.CodeNotFound, message, nil)
}

func SendConflict(c *fiber.Ctx, message string, details map[string]string) error {
	return SendError(c, http.StatusConflict, models.CodeConflict, message, details)
}

// SendInternalServerError never includes the underlying error; callers log it.
func SendInternalServerError(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusInternalServerError, models.CodeInternal, message, nil)
}

// SendUnprocessableEntity reports field validation failures in details.
func SendUnprocessableEntity(c *fiber.Ctx, message string, details map[string]string) error {
	return SendError(c, http.StatusUnprocessableEntity, models.CodeValidation, message, details)
}

func SendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(http.StatusNoContent)
}

// ExtractUserSession returns the caller set by the auth middleware.
func ExtractUserSession(c *fiber.Ctx) (*models.UserSession, bool) {
	session, ok := c.Locals("user").(*models.UserSession)
	return session, ok && session != nil
}

func IsAdmin(c *fiber.Ctx) bool {
	session, ok := ExtractUserSession(c)
	return ok && session.IsAdmin
}

// GetIPAddress prefers the first X-Forwarded-For hop, then X-Real-IP.
func GetIPAddress(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := c.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.IP()
}

func GetUserAgent(c *fiber.Ctx) string {
	return c.Get("User-Agent")
}

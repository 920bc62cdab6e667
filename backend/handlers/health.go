package handlers

import (
	"context"
	"time"

	webmodels "github.com/carrybid/carrybid/backend/models"
	"github.com/carrybid/carrybid/backend/utils"
	"github.com/gofiber/fiber/v2"
)

func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
		defer cancel()

		health := webmodels.NewHealthCheck(webApp.Version)
		if db := webApp.App.DB; db != nil {
			if err := db.Ping(ctx); err != nil {
				health.AddComponent("database", "unhealthy", err.Error())
			} else {
				health.AddComponent("database", "healthy", "")
			}
		} else {
			health.AddComponent("database", "healthy", "in-memory")
		}
		if client := webApp.App.Mongo; client != nil {
			if err := client.Ping(ctx, nil); err != nil {
				health.AddComponent("audit", "unhealthy", err.Error())
			} else {
				health.AddComponent("audit", "healthy", "")
			}
		}
		health.AddComponent("feed", "healthy", "")

		if health.Status != "healthy" {
			return utils.SendJSON(c, fiber.StatusServiceUnavailable, health)
		}
		return utils.SendSuccess(c, health, "Health check successful")
	}
}

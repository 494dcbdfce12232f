package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acadbridge/campus-api/database"
)

// HandleCheckHealth reports service liveness including a database ping.
func HandleCheckHealth(store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.HealthCheck(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
				"db":     "unreachable",
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

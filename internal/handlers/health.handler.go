package handlers

import (
	"musiclabel/internal/app"

	"github.com/gofiber/fiber/v2"
)

func HealthHandler(router fiber.Router, app app.App) {
	router.Get("/health", func(c *fiber.Ctx) error {
		database := "ok"
		if sqlDB, err := app.Database.SQL.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			database = "unavailable"
		}

		status, state := fiber.StatusOK, "ok"
		if database != "ok" {
			status, state = fiber.StatusServiceUnavailable, "degraded"
		}

		return respond(c, status, fiber.Map{
			"status":   state,
			"version":  app.Config.GeneralVersion,
			"service":  "musiclabel_api",
			"database": database,
		})
	})
}

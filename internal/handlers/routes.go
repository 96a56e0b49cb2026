package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Register mounts the browser pages and the JSON API on app.
func Register(app *fiber.App, screenings *ScreeningHandler, pages *PageHandler) {
	app.Get("/", pages.HandleIndex)
	app.Post("/screen", pages.HandleScreen)

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/screen", screenings.HandleScreen)
	api.Get("/screenings/:id", screenings.HandleGetScreening)
	api.Get("/screenings/:id/export", screenings.HandleExport)
}

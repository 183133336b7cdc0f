package api

import (
	"github.com/gofiber/fiber/v3"
)

func SetupRoutes(app *fiber.App, h *Handler) {
	app.Get("/health", h.Health)

	api := app.Group("/api")
	api.Get("/repositories", h.ListRepositories)
	api.Post("/index-repositories", h.IndexRepositories)
	api.Post("/generate-profile", h.GenerateProfile)
}

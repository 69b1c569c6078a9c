package api

import (
	"wm-assistant/internal/api/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	chatHandler *handlers.ChatHandler,
	healthHandler *handlers.HealthHandler,
	knowledgeHandler *handlers.KnowledgeHandler,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code == fiber.StatusInternalServerError {
				appLogger.Error("Unhandled request error", zap.Error(err))
				return c.Status(code).JSON(fiber.Map{
					"error":   "internal_server_error",
					"message": "An internal server error occurred",
				})
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "WM Assistant API",
			"version": "1.0.0",
		})
	})

	// API routes
	api := app.Group("/api")
	api.Post("/chat", chatHandler.SubmitMessage)
	api.Get("/knowledge/search", knowledgeHandler.Search)
	api.Get("/knowledge/categories", knowledgeHandler.Categories)
	api.Get("/knowledge/entries/:id", knowledgeHandler.GetEntry)
	api.Get("/health", healthHandler.Health)
	api.Get("/health/detailed", healthHandler.Detailed)
	api.Get("/health/ready", healthHandler.Ready)
	api.Get("/health/live", healthHandler.Live)

	return app
}

package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/katakuxiko/guidance/internal/logger"
)

func RegisterRoutes(app *fiber.App, agg Aggregator, frontend *Frontend, log *zap.Logger) {
	h := NewHandler(agg)

	app.Use(logger.Fiber(log))
	app.Use(recover.New())

	app.Get("/health", h.Health)
	app.Post("/api/query", h.Query)

	app.Get("/", frontend.Serve)
	app.Get("/*", frontend.Serve)
}

package config

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	mongodb "uas_backend/database/mongo"
	"uas_backend/helper"
	"uas_backend/route"
)

// NewFiberApp builds the Fiber application with the standard middleware chain
// and every route registered against the given store handle.
func NewFiberApp(db *mongodb.Mongo) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "University Backend API",

		// Anything a handler did not translate itself still leaves the
		// process as an envelope, never as an unstructured failure.
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(helper.Response{
				Success: false,
				Message: err.Error(),
				Error:   helper.CodeInternal,
			})
		},
	})

	app.Use(cors.New())
	app.Use(logger.New(NewLoggerConfig()))
	app.Use(recover.New())

	route.SetupRoutes(app, db)

	return app
}

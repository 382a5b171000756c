// Package server assembles the Fiber application: middleware, routes and
// error rendering.
package server

import (
	"context"

	"tokoadmin/internal/config"
	"tokoadmin/internal/handlers"
	"tokoadmin/internal/imagestore"
	"tokoadmin/internal/middleware"
	"tokoadmin/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// Deps are the services the HTTP surface is built on.
type Deps struct {
	Config  *config.Config
	Log     *logrus.Logger
	Auth    *services.AuthService
	Catalog *services.CatalogService
	// Ping checks the database. Nil when running on in-memory repositories.
	Ping func(ctx context.Context) error
}

// New returns a ready to listen Fiber app.
func New(d Deps) *fiber.App {
	cfg := d.Config
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		BodyLimit:    cfg.BodyLimit(),
		ErrorHandler: handlers.ErrorHandler(d.Log),
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.IsDevelopment()}))
	app.Use(logger.New(logger.Config{
		Output: d.Log.Writer(),
		Format: "${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	handlers.NewHealthHandler(d.Ping).RegisterRoutes(app)
	if cfg.ImageStorage == config.StorageDisk {
		app.Static(imagestore.URLPrefix, cfg.UploadDir)
	}

	api := app.Group("/api")
	handlers.NewAuthHandler(d.Auth, d.Log).RegisterRoutes(api)
	handlers.NewProductHandler(d.Catalog, d.Log).RegisterRoutes(api, middleware.AdminOnly(d.Auth.Tokens())...)

	app.Use(handlers.NotFound)
	return app
}

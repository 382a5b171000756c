// Package bootstrap wires configuration into repositories, stores and
// services. It is shared by the API server and the admin CLI.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"tokoadmin/internal/config"
	"tokoadmin/internal/database"
	"tokoadmin/internal/imagestore"
	"tokoadmin/internal/repositories"
	"tokoadmin/internal/server"
	"tokoadmin/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Runtime owns every long lived resource of the process.
type Runtime struct {
	Config *config.Config
	Log    *logrus.Logger

	// DB is nil when DB_DRIVER=memory.
	DB       *gorm.DB
	Users    repositories.UserRepository
	Products repositories.ProductRepository
	Images   imagestore.Store

	Auth    *services.AuthService
	Catalog *services.CatalogService
}

// Open connects to the configured database, migrates it and builds the
// services on top.
func Open(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*Runtime, error) {
	rt := &Runtime{Config: cfg, Log: log}

	if cfg.DBDriver == config.DriverMemory {
		log.Warn("using in-memory repositories, data is lost on exit")
		rt.Users = repositories.NewMemoryUserRepository()
		rt.Products = repositories.NewMemoryProductRepository()
	} else {
		db, err := database.Open(cfg.DBDriver, cfg.DBDSN, cfg.IsDevelopment())
		if err != nil {
			return nil, err
		}
		rt.DB = db
		if err := database.Migrate(db); err != nil {
			rt.Close()
			return nil, err
		}
		rt.Users = repositories.NewGORMUserRepository(db)
		rt.Products = repositories.NewGORMProductRepository(db)
		log.WithField("driver", cfg.DBDriver).Info("database ready")
	}

	images, err := imagestore.New(ctx, cfg)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("failed to initialize image store: %w", err)
	}
	rt.Images = images
	log.WithField("mode", cfg.ImageStorage).Info("image store ready")

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	rt.Auth = services.NewAuthService(rt.Users, tokens)
	rt.Catalog = services.NewCatalogService(rt.Products, rt.Images, imagestore.Limits{
		MaxFiles:    cfg.UploadMaxFiles,
		MaxFileSize: cfg.UploadMaxFileSize,
	})
	return rt, nil
}

// App builds the HTTP application on top of the runtime.
func (rt *Runtime) App() *fiber.App {
	deps := server.Deps{
		Config:  rt.Config,
		Log:     rt.Log,
		Auth:    rt.Auth,
		Catalog: rt.Catalog,
	}
	if rt.DB != nil {
		deps.Ping = func(ctx context.Context) error { return database.Ping(ctx, rt.DB) }
	}
	return server.New(deps)
}

// Close releases the image store and the database.
func (rt *Runtime) Close() error {
	var errs []error
	if rt.Images != nil {
		if err := rt.Images.Close(); err != nil {
			errs = append(errs, fmt.Errorf("image store: %w", err))
		}
	}
	if rt.DB != nil {
		if err := database.Close(rt.DB); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	return errors.Join(errs...)
}

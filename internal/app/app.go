// Package app provides application initialization and dependency injection.
package app

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/parceltrack/parcel-service/config"
	"github.com/parceltrack/parcel-service/internal/http"
	"github.com/parceltrack/parcel-service/internal/middleware"
)

// InitializeApp creates and wires all application dependencies.
// This is the main orchestration function that initializes all components.
func InitializeApp(cfg config.Config) (*gin.Engine, error) {
	// Initialize logger first (needed by other components)
	InitializeLogger()

	dbComponents, err := InitializeDatabase(cfg.Database, cfg.Storage)
	if err != nil {
		return nil, err
	}

	// Request logs go through a bounded worker pool instead of a
	// goroutine per request. Drained on shutdown by the server.
	middleware.InitAsyncLogger(dbComponents.LoggingService, middleware.DefaultAsyncLoggerConfig())

	if err := seedAdminUser(dbComponents.UserRepo, cfg.Auth, cfg.Storage.SeedHubID); err != nil {
		log.Warn().Err(err).Msg("Failed to seed admin account")
	}

	serviceComponents := InitializeServices(dbComponents, cfg)
	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	return http.NewRouter(routerComponents.Handlers, routerComponents.HealthHandler, routerComponents.Config), nil
}

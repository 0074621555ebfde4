// Package app provides router configuration.
package app

import (
	"context"

	"github.com/parceltrack/parcel-service/config"
	"github.com/parceltrack/parcel-service/internal/http"
)

// mongoChecker adapts the MongoDB ping to the health check interface.
type mongoChecker struct {
	db *DatabaseComponents
}

func (c mongoChecker) Check() error {
	return c.db.DB.HealthCheck(context.Background())
}

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handlers      *http.Handlers
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(
	services *ServiceComponents,
	dbComponents *DatabaseComponents,
	cfg config.Config,
) *RouterComponents {
	handlers := &http.Handlers{
		Parcels:    http.NewParcelHandler(services.CheckIn, services.CheckOut, services.Operator),
		Recipients: http.NewRecipientHandler(services.Recipients, dbComponents.UserRepo),
		Tracking:   http.NewTrackingHandler(services.Tracking),
		Admin:      http.NewAdminHandler(services.Operator, services.Pricing, dbComponents.LoggingService),
	}

	healthHandler := http.NewHealthHandler()
	healthHandler.RegisterChecker("mongodb", mongoChecker{db: dbComponents})
	if dbComponents.SettingsCircuitBreaker != nil {
		healthHandler.RegisterCircuitBreaker("mongodb_settings", dbComponents.SettingsCircuitBreaker)
	}
	if dbComponents.LogsCircuitBreaker != nil {
		healthHandler.RegisterCircuitBreaker("mongodb_logs", dbComponents.LogsCircuitBreaker)
	}

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		RequestTimeout:    cfg.Server.RequestTimeout,
		EnableIdempotency: true,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		LoggingService:    dbComponents.LoggingService,
		AuthService:       services.Auth,
	}

	return &RouterComponents{
		Handlers:      handlers,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
